package packstream

// Counter is a degenerate write sink that only tracks how many bytes the
// engine would emit, never materializing or copying any of them. It lets the
// engine be driven through its normal write path to obtain an exact byte
// count for an arbitrary value at zero allocation cost.
type Counter struct {
	total int64 // monotonically non-decreasing for the life of the sink
	err   error
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// WriteByte counts a single byte.
func (c *Counter) WriteByte(_ byte) error {
	if c.err != nil {
		return c.err
	}
	c.total++
	return nil
}

// Write counts a contiguous run.
func (c *Counter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.total += int64(len(p))
	return len(p), nil
}

// ReadByte rejects reads; a Counter is the write half of the contract.
func (c *Counter) ReadByte() (byte, error) {
	return 0, c.setError(ErrWriteOnlyStream)
}

// Next rejects reads; a Counter is the write half of the contract.
func (c *Counter) Next(n int) ([]byte, error) {
	return nil, c.setError(ErrWriteOnlyStream)
}

func (c *Counter) setError(err error) error {
	if c.err == nil && err != nil {
		c.err = err
	}
	return c.err
}

// Count finalizes the sink and returns the running total.
func (c *Counter) Count() int64 { return c.total }

// Err returns the first error encountered, or nil.
func (c *Counter) Err() error { return c.err }
