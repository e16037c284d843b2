package packstream

// Reader is a bounded, read-only view over caller-supplied bytes. It never
// reallocates, never mutates the underlying storage, and must not outlive it.
// The first error is latched; subsequent reads become no-ops.
type Reader struct {
	data []byte // non-owning view, fixed at construction
	pos  int    // bytes consumed, pos <= len(data)
	err  error  // first error encountered. Subsequent reads become no-ops.
}

// NewReader creates a Reader over an existing byte region. It never fails and
// performs no allocation; the caller retains ownership of data for the
// reader's whole lifetime.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadByte implements the io.ByteReader half of the Stream contract. It fails
// with ErrBufferUnderrun once the region is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.pos >= len(r.data) {
		return 0, r.setError(ErrBufferUnderrun)
	}
	c := r.data[r.pos]
	r.pos++
	return c, nil
}

// Read copies exactly len(p) bytes into p. The bound is checked before any
// side effect: on underrun the cursor does not move and no partial data is
// written. A zero-length read always succeeds.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, r.err
	}
	if r.err != nil {
		return 0, r.err
	}
	if r.pos+len(p) > len(r.data) {
		return 0, r.setError(ErrBufferUnderrun)
	}
	copy(p, r.data[r.pos:])
	r.pos += len(p)
	return len(p), nil
}

// Next returns the next n bytes as a view into the underlying storage without
// copying, and advances the cursor. On underrun the cursor does not move and
// no partial view is returned.
func (r *Reader) Next(n int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if n < 0 {
		return nil, r.setError(ErrNegativeCount)
	}
	if n == 0 {
		return nil, nil
	}
	if r.pos+n > len(r.data) {
		return nil, r.setError(ErrBufferUnderrun)
	}
	view := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return view, nil
}

// WriteByte rejects writes; a Reader is the read half of the contract.
func (r *Reader) WriteByte(c byte) error {
	return r.setError(ErrReadOnlyStream)
}

// Write rejects writes; a Reader is the read half of the contract.
func (r *Reader) Write(p []byte) (int, error) {
	return 0, r.setError(ErrReadOnlyStream)
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) error {
	if r.err == nil && err != nil {
		r.err = err
	}
	return r.err
}

// Len returns the number of bytes consumed so far.
func (r *Reader) Len() int { return r.pos }

// Size returns the fixed size of the underlying region.
func (r *Reader) Size() int { return len(r.data) }

// Available returns the number of bytes left to read.
func (r *Reader) Available() int { return len(r.data) - r.pos }

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error { return r.err }
