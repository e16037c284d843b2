package packstream

// Pack serializes v through e into a freshly allocated byte slice.
//
// It binds a growable Buffer as the engine's Stream, runs the engine's encode
// pass, and copies out exactly the committed bytes. Any failure — from the
// engine or from buffer growth — aborts the call; partial output is discarded,
// never returned. Each call owns its buffer exclusively, so concurrent Pack
// calls need no coordination.
func Pack(e Engine, v any) ([]byte, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	buf := getBuffer()
	defer putBuffer(buf)

	if err := e.Encode(buf, v); err != nil {
		return nil, err
	}
	// An engine may ignore write errors; the latched buffer error is the
	// ground truth for whether every byte was committed.
	if err := buf.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack deserializes data through e back into a value.
//
// It wraps data in a bounded Reader and runs the engine's decode pass. The
// engine decides how many bytes it consumes; excess trailing bytes are not an
// error, but reading past the end fails with ErrBufferUnderrun, surfaced
// verbatim. A nil input is not a byte sequence and fails with ErrInvalidInput
// before any reader is constructed.
func Unpack(e Engine, data []byte) (any, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	if data == nil {
		return nil, ErrInvalidInput
	}
	r := NewReader(data)

	v, err := e.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// Measure reports exactly how many bytes Pack(e, v) would produce, without
// allocating or copying any of them. The engine is driven through its normal
// write path against a Counter, so the count is exact by construction:
// Measure(e, v) == len(Pack(e, v)) for every v the engine can encode.
func Measure(e Engine, v any) (int64, error) {
	if e == nil {
		return 0, ErrNilEngine
	}
	c := NewCounter()

	if err := e.Encode(c, v); err != nil {
		return 0, err
	}
	if err := c.Err(); err != nil {
		return 0, err
	}
	return c.Count(), nil
}
