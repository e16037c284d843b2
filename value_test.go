package packstream

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ValueEngineTestSuite struct {
	suite.Suite
	engine Engine
}

func (s *ValueEngineTestSuite) SetupTest() {
	s.engine = ValueEngine{}
}

// The encoding is canonical: every integer kind decodes as int64, every float
// kind as float64.
func (s *ValueEngineTestSuite) TestCanonicalScalars() {
	cases := map[string]struct {
		in   any
		want any
	}{
		"int":     {int(5), int64(5)},
		"int8":    {int8(-8), int64(-8)},
		"int16":   {int16(300), int64(300)},
		"int32":   {int32(-70000), int64(-70000)},
		"uint8":   {uint8(255), int64(255)},
		"uint16":  {uint16(65535), int64(65535)},
		"uint32":  {uint32(1 << 31), int64(1 << 31)},
		"uint":    {uint(12), int64(12)},
		"uint64":  {uint64(math.MaxInt64), int64(math.MaxInt64)},
		"float32": {float32(0.5), float64(0.5)},
	}
	for name, tc := range cases {
		s.T().Run(name, func(t *testing.T) {
			data, err := Pack(s.engine, tc.in)
			require.NoError(t, err)

			got, err := Unpack(s.engine, data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func (s *ValueEngineTestSuite) TestUnsupportedValues() {
	s.T().Run("StructValue", func(t *testing.T) {
		_, err := Pack(s.engine, struct{ X int }{1})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	s.T().Run("Uint64Overflow", func(t *testing.T) {
		_, err := Pack(s.engine, uint64(math.MaxInt64)+1)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	s.T().Run("MeasurePropagatesEngineError", func(t *testing.T) {
		_, err := Measure(s.engine, make(chan int))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	s.T().Run("NestedUnsupported", func(t *testing.T) {
		_, err := Pack(s.engine, []any{int64(1), struct{}{}})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func (s *ValueEngineTestSuite) TestDecodeErrors() {
	s.T().Run("BadMagic", func(t *testing.T) {
		data, err := Pack(s.engine, int64(1))
		require.NoError(t, err)
		data[0] = 'X'

		_, err = Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	s.T().Run("BadVersion", func(t *testing.T) {
		data, err := Pack(s.engine, int64(1))
		require.NoError(t, err)
		data[1] = valueVersion + 1

		_, err = Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	s.T().Run("UnknownTag", func(t *testing.T) {
		_, err := Unpack(s.engine, []byte{valueMagic, valueVersion, 0xEE})
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	s.T().Run("NonStringMapKey", func(t *testing.T) {
		data := []byte{
			valueMagic, valueVersion,
			tagMap, 0, 0, 0, 1, // one pair
			tagInt, 0, 0, 0, 0, 0, 0, 0, 1, // int key instead of string
		}
		_, err := Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	s.T().Run("LengthPastEnd", func(t *testing.T) {
		data := []byte{
			valueMagic, valueVersion,
			tagBytes, 0xFF, 0xFF, 0xFF, 0xFF, // claims 4GB of payload
		}
		_, err := Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBufferUnderrun)
	})

	// A container count is only a claim; it must not be believed — and in
	// particular must not size an allocation — before the payload backs it up.
	s.T().Run("HugeListCount", func(t *testing.T) {
		data := []byte{
			valueMagic, valueVersion,
			tagList, 0xFF, 0xFF, 0xFF, 0xFF, // claims 4G elements, zero payload
		}
		_, err := Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBufferUnderrun)
	})

	s.T().Run("HugeMapCount", func(t *testing.T) {
		data := []byte{
			valueMagic, valueVersion,
			tagMap, 0xFF, 0xFF, 0xFF, 0xFF,
		}
		_, err := Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBufferUnderrun)
	})

	s.T().Run("ShortListCount", func(t *testing.T) {
		data := []byte{
			valueMagic, valueVersion,
			tagList, 0, 0, 0, 4, // claims 4 elements
			tagTrue, // delivers 1
		}
		_, err := Unpack(s.engine, data)
		assert.ErrorIs(t, err, ErrBufferUnderrun)
	})
}

// Decoding a truncated container must not allocate anywhere near the claimed
// element count before the payload runs out.
func (s *ValueEngineTestSuite) TestTruncatedContainerAllocation() {
	data := []byte{
		valueMagic, valueVersion,
		tagList, 0x00, 0x04, 0x00, 0x00, // claims 256Ki elements, zero payload
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	for i := 0; i < 10; i++ {
		_, err := Unpack(s.engine, data)
		s.Require().ErrorIs(err, ErrBufferUnderrun)
	}
	runtime.ReadMemStats(&after)

	// Ten failed decodes of a 7-byte input stay within the capped prealloc
	// (64KB each); a count-sized backing array would cost 4MB per call.
	s.Assert().Less(after.TotalAlloc-before.TotalAlloc, uint64(4<<20))
}

// Decoded byte values must own their storage, not alias the input.
func (s *ValueEngineTestSuite) TestDecodedBytesDoNotAliasInput() {
	data, err := Pack(s.engine, []byte{1, 2, 3})
	s.Require().NoError(err)

	got, err := Unpack(s.engine, data)
	s.Require().NoError(err)

	for i := range data {
		data[i] = 0
	}
	s.Assert().Equal([]byte{1, 2, 3}, got.([]byte))
}

func (s *ValueEngineTestSuite) TestSpecialFloats() {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.SmallestNonzeroFloat64, -0.0} {
		data, err := Pack(s.engine, v)
		s.Require().NoError(err)
		got, err := Unpack(s.engine, data)
		s.Require().NoError(err)
		s.Assert().Equal(v, got)
	}

	data, err := Pack(s.engine, math.NaN())
	s.Require().NoError(err)
	got, err := Unpack(s.engine, data)
	s.Require().NoError(err)
	s.Assert().True(math.IsNaN(got.(float64)))
}

func TestValueEngine(t *testing.T) {
	suite.Run(t, new(ValueEngineTestSuite))
}
