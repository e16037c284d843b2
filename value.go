package packstream

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// BinaryFormat is the registry name of the built-in ValueEngine.
const BinaryFormat = "binary"

func init() {
	Register(BinaryFormat, ValueEngine{})
}

// Stream header: a format marker and a version byte, checked on decode.
const (
	valueMagic   byte = 'B'
	valueVersion byte = 1
)

// Value tags. Every value is a single tag byte followed by its payload.
const (
	tagNil byte = iota
	tagFalse
	tagTrue
	tagInt    // 8-byte big-endian two's complement
	tagFloat  // 8-byte IEEE 754
	tagString // uint32 length + bytes
	tagBytes  // uint32 length + bytes
	tagList   // uint32 count + elements
	tagMap    // uint32 count + sorted (string key, value) pairs
)

// ValueEngine is the built-in serialization engine: a self-describing tagged
// binary encoding for dynamic Go values (nil, bool, integers, float64,
// string, []byte, []any, map[string]any). It drives the Stream contract the
// way any external engine would: single tag bytes through the write-one path,
// payload runs through the write-many path.
//
// The encoding is canonical: all integer kinds decode as int64, floats as
// float64, and map pairs are emitted in sorted key order, so encoding the
// same value always produces the same bytes.
type ValueEngine struct{}

var _ Engine = ValueEngine{}

// Encode writes the header and then the tagged representation of v.
func (ValueEngine) Encode(s Stream, v any) error {
	if err := s.WriteByte(valueMagic); err != nil {
		return err
	}
	if err := s.WriteByte(valueVersion); err != nil {
		return err
	}
	return encodeValue(s, v)
}

// Decode checks the header and reconstructs a single value. How many bytes it
// consumes is its own business; trailing input is left untouched.
func (ValueEngine) Decode(s Stream) (any, error) {
	header, err := s.Next(2)
	if err != nil {
		return nil, err
	}
	if header[0] != valueMagic || header[1] != valueVersion {
		return nil, fmt.Errorf("%w: got % x", ErrBadHeader, header)
	}
	return decodeValue(s)
}

func encodeValue(s Stream, v any) error {
	switch v := v.(type) {
	case nil:
		return s.WriteByte(tagNil)
	case bool:
		if v {
			return s.WriteByte(tagTrue)
		}
		return s.WriteByte(tagFalse)
	case int:
		return encodeInt(s, v)
	case int8:
		return encodeInt(s, v)
	case int16:
		return encodeInt(s, v)
	case int32:
		return encodeInt(s, v)
	case int64:
		return encodeInt(s, v)
	case uint8:
		return encodeInt(s, int64(v))
	case uint16:
		return encodeInt(s, int64(v))
	case uint32:
		return encodeInt(s, int64(v))
	case uint:
		return encodeUint(s, uint64(v))
	case uint64:
		return encodeUint(s, v)
	case float32:
		return encodeFloat(s, float64(v))
	case float64:
		return encodeFloat(s, v)
	case string:
		return encodeBlob(s, tagString, []byte(v))
	case []byte:
		return encodeBlob(s, tagBytes, v)
	case []any:
		if err := encodeCount(s, tagList, len(v)); err != nil {
			return err
		}
		for _, item := range v {
			if err := encodeValue(s, item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if err := encodeCount(s, tagMap, len(v)); err != nil {
			return err
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := encodeBlob(s, tagString, []byte(k)); err != nil {
				return err
			}
			if err := encodeValue(s, v[k]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// encodeInt covers the whole signed integer family with one fixed-width
// canonical form.
func encodeInt[T constraints.Signed](s Stream, v T) error {
	if err := s.WriteByte(tagInt); err != nil {
		return err
	}
	var buf [8]byte
	Order.PutUint64(buf[:], uint64(int64(v)))
	_, err := s.Write(buf[:])
	return err
}

func encodeUint(s Stream, v uint64) error {
	if v > math.MaxInt64 {
		return fmt.Errorf("%w: uint64 %d overflows the canonical integer form", ErrUnsupportedType, v)
	}
	return encodeInt(s, int64(v))
}

func encodeFloat(s Stream, v float64) error {
	if err := s.WriteByte(tagFloat); err != nil {
		return err
	}
	var buf [8]byte
	Order.PutUint64(buf[:], math.Float64bits(v))
	_, err := s.Write(buf[:])
	return err
}

func encodeBlob(s Stream, tag byte, p []byte) error {
	if err := encodeCount(s, tag, len(p)); err != nil {
		return err
	}
	_, err := s.Write(p)
	return err
}

func encodeCount(s Stream, tag byte, n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d exceeds uint32", ErrUnsupportedType, n)
	}
	if err := s.WriteByte(tag); err != nil {
		return err
	}
	var buf [4]byte
	Order.PutUint32(buf[:], uint32(n))
	_, err := s.Write(buf[:])
	return err
}

func decodeValue(s Stream) (any, error) {
	tag, err := s.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil
	case tagInt:
		view, err := s.Next(8)
		if err != nil {
			return nil, err
		}
		return int64(Order.Uint64(view)), nil
	case tagFloat:
		view, err := s.Next(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(Order.Uint64(view)), nil
	case tagString:
		view, err := decodeBlob(s)
		if err != nil {
			return nil, err
		}
		return string(view), nil
	case tagBytes:
		view, err := decodeBlob(s)
		if err != nil {
			return nil, err
		}
		// The view aliases the caller's input; the decoded value must own
		// its bytes.
		return bytes.Clone(view), nil
	case tagList:
		n, err := decodeCount(s)
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, min(n, maxCountPrealloc))
		for i := 0; i < n; i++ {
			item, err := decodeValue(s)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case tagMap:
		n, err := decodeCount(s)
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, min(n, maxCountPrealloc))
		for range n {
			keyTag, err := s.ReadByte()
			if err != nil {
				return nil, err
			}
			if keyTag != tagString {
				return nil, fmt.Errorf("%w: map key has tag %d", ErrUnknownTag, keyTag)
			}
			key, err := decodeBlob(s)
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(s)
			if err != nil {
				return nil, err
			}
			m[string(key)] = value
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, tag)
	}
}

// maxCountPrealloc caps how many elements a list or map allocates up front.
// A wire count is untrusted until that many payload bytes actually decode;
// every element consumes at least one byte, so a bogus count fails with
// ErrBufferUnderrun before the container grows past the real input size.
const maxCountPrealloc = 4096

func decodeCount(s Stream) (int, error) {
	view, err := s.Next(4)
	if err != nil {
		return 0, err
	}
	n := int(Order.Uint32(view))
	if n < 0 { // uint32 overflows int on 32-bit platforms
		return 0, ErrBufferUnderrun
	}
	return n, nil
}

// decodeBlob reads a uint32 length and then that many bytes as a view.
func decodeBlob(s Stream) ([]byte, error) {
	n, err := decodeCount(s)
	if err != nil {
		return nil, err
	}
	return s.Next(n)
}
