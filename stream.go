package packstream

import "io"

// Stream is the transport contract handed to a serialization Engine. It moves
// bytes in exactly the order the engine issues calls and interprets none of
// them; value semantics, reference sharing, and the wire format itself are
// entirely the engine's business.
//
// Exactly three implementations exist: Buffer (growable write sink), Reader
// (bounded read source), and Counter (size-only write sink). A binding lives
// for exactly one Pack/Unpack/Measure call and is never shared across calls.
type Stream interface {
	// io.ByteWriter commits a single byte. Method: WriteByte(c byte) error
	io.ByteWriter
	// io.Writer commits a contiguous run. It is never a partial write: either
	// all of p is committed or the stream's error is returned. For large runs
	// it is cheaper than len(p) calls to WriteByte.
	io.Writer
	// io.ByteReader returns the next byte, or ErrBufferUnderrun when the
	// source is exhausted. Method: ReadByte() (byte, error)
	io.ByteReader

	// Next returns the next n bytes as a contiguous view without copying and
	// advances the cursor. It fails with ErrBufferUnderrun before any side
	// effect if fewer than n bytes remain; a partially filled view is never
	// returned. The view stays valid only as long as the underlying storage.
	Next(n int) ([]byte, error)

	// Err returns the first error encountered by the binding, or nil. After
	// any error every subsequent operation is a no-op returning that error.
	Err() error
}

var (
	_ Stream = (*Buffer)(nil)
	_ Stream = (*Reader)(nil)
	_ Stream = (*Counter)(nil)
)
