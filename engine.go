package packstream

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// Engine is the external serialization engine boundary: the component that
// decides which byte sequence represents which value. It sees only the Stream
// contract, so it stays agnostic to whether the bytes land in memory, a
// counting sink, or come from a caller-supplied region.
//
// For encode, the engine calls the write half in the exact order the output
// format requires. For decode, it calls the read half in the exact order the
// input was produced, and must fail deterministically (never silently
// truncate or misread) when the stream is short or malformed. Decode decides
// internally how many bytes it consumes; trailing excess input is not an
// error. Any error an engine returns passes through Pack/Unpack/Measure
// unmodified.
type Engine interface {
	Encode(s Stream, v any) error
	Decode(s Stream) (any, error)
}

// engines maps format names to registered engines. Using a concurrent map
// makes Register/Lookup safe from any goroutine without a lock of our own.
var engines = xsync.NewMap[string, Engine]()

// Register makes an engine available under a format name, replacing any
// previous registration for that name.
func Register(format string, e Engine) {
	engines.Store(format, e)
}

// Lookup returns the engine registered under a format name.
func Lookup(format string) (Engine, bool) {
	return engines.Load(format)
}

func lookup(format string) (Engine, error) {
	e, ok := engines.Load(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return e, nil
}

// PackAs packs v with the engine registered under format.
func PackAs(format string, v any) ([]byte, error) {
	e, err := lookup(format)
	if err != nil {
		return nil, err
	}
	return Pack(e, v)
}

// UnpackAs unpacks data with the engine registered under format.
func UnpackAs(format string, data []byte) (any, error) {
	e, err := lookup(format)
	if err != nil {
		return nil, err
	}
	return Unpack(e, data)
}

// MeasureAs measures v with the engine registered under format.
func MeasureAs(format string, v any) (int64, error) {
	e, err := lookup(format)
	if err != nil {
		return 0, err
	}
	return Measure(e, v)
}
