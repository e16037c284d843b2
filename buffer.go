package packstream

import "math"

// DefaultBufferSize is the initial capacity used when a Buffer is created
// without a hint. 16KB covers typical small-object serialized sizes, so most
// packs finish without a single growth step.
const DefaultBufferSize = 16 * 1024

// Buffer is a growable byte sink. It owns its storage exclusively, doubles
// capacity on demand, and tracks the first error that occurs. After an error,
// all subsequent operations become no-ops.
type Buffer struct {
	data []byte // backing storage, len(data) == capacity
	pos  int    // bytes committed, pos <= len(data)
	err  error  // first error encountered. Subsequent writes become no-ops.
}

// NewBuffer creates a Buffer with the given initial capacity.
// A capacity <= 0 selects DefaultBufferSize.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{data: make([]byte, capacity)}
}

// grow ensures room for n more bytes, doubling capacity as many times as
// needed. Committed bytes are always preserved across reallocation. The only
// checked failure is ErrCapacityExceeded, when doubling would overflow the
// platform's addressable size.
func (b *Buffer) grow(n int) error {
	if b.err != nil {
		return b.err
	}
	if n < 0 {
		return b.setError(ErrNegativeCount)
	}
	need := b.pos + n
	if need < 0 { // pos + n overflowed
		return b.setError(ErrCapacityExceeded)
	}
	if need <= len(b.data) {
		return nil
	}
	newCap := len(b.data)
	for newCap < need {
		if newCap > math.MaxInt/2 {
			return b.setError(ErrCapacityExceeded)
		}
		newCap *= 2
	}
	grown := make([]byte, newCap)
	copy(grown, b.data[:b.pos])
	b.data = grown
	return nil
}

// WriteByte implements the io.ByteWriter half of the Stream contract.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.grow(1); err != nil {
		return err
	}
	b.data[b.pos] = c
	b.pos++
	return nil
}

// Write implements the io.Writer half of the Stream contract. It is never a
// partial write: either all of p is committed or nothing is.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, b.err
	}
	if err := b.grow(len(p)); err != nil {
		return 0, err
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

// ReadByte rejects reads; a Buffer is the write half of the contract.
func (b *Buffer) ReadByte() (byte, error) {
	return 0, b.setError(ErrWriteOnlyStream)
}

// Next rejects reads; a Buffer is the write half of the contract.
func (b *Buffer) Next(n int) ([]byte, error) {
	return nil, b.setError(ErrWriteOnlyStream)
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (b *Buffer) setError(err error) error {
	if b.err == nil && err != nil {
		b.err = err
	}
	return b.err
}

// Bytes finalizes the buffer: it returns a copy of exactly the committed
// bytes, independent of the buffer's remaining slack or later reuse.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.pos)
	copy(out, b.data[:b.pos])
	return out
}

// Len returns the number of bytes committed so far.
func (b *Buffer) Len() int { return b.pos }

// Cap returns the current capacity of the backing storage.
func (b *Buffer) Cap() int { return len(b.data) }

// Err returns the first error encountered, or nil.
func (b *Buffer) Err() error { return b.err }

// Reset discards committed content and any latched error, keeping the
// backing storage for reuse.
func (b *Buffer) Reset() {
	b.pos = 0
	b.err = nil
}
