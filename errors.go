package packstream

import "errors"

var (
	// ErrCapacityExceeded indicates that growing a Buffer would overflow the
	// platform's maximum addressable size. The pack operation is aborted;
	// there is no partial-buffer fallback.
	ErrCapacityExceeded = errors.New("packstream: buffer capacity exceeds addressable size")

	// ErrBufferUnderrun indicates a read past the end of the available bytes.
	// It signals malformed or truncated input and is surfaced to the caller
	// of Unpack verbatim, never retried.
	ErrBufferUnderrun = errors.New("packstream: read past end of buffer")

	// ErrInvalidInput indicates that Unpack was called with something that is
	// not a byte sequence.
	ErrInvalidInput = errors.New("packstream: input is not a byte sequence")

	// ErrReadOnlyStream indicates a write was attempted on a Stream backed by
	// a Reader, which only supports the read half of the contract.
	ErrReadOnlyStream = errors.New("packstream: write on read-only stream")

	// ErrWriteOnlyStream indicates a read was attempted on a Stream backed by
	// a Buffer or Counter, which only support the write half of the contract.
	ErrWriteOnlyStream = errors.New("packstream: read on write-only stream")

	// ErrNilEngine indicates that Pack/Unpack/Measure was called with a nil Engine.
	ErrNilEngine = errors.New("packstream: nil engine")

	// ErrUnknownFormat indicates that no engine is registered under the
	// requested format name.
	ErrUnknownFormat = errors.New("packstream: no engine registered for format")

	// ErrNegativeCount indicates a read or write was requested with a negative length.
	ErrNegativeCount = errors.New("packstream: negative byte count")

	// ErrUnsupportedType is returned by ValueEngine when asked to encode a
	// value kind it has no tag for.
	ErrUnsupportedType = errors.New("packstream: unsupported value type")

	// ErrUnknownTag is returned by ValueEngine when the byte stream contains
	// a tag it does not recognize.
	ErrUnknownTag = errors.New("packstream: unknown value tag")

	// ErrBadHeader is returned by ValueEngine when the stream does not start
	// with the expected magic and version bytes.
	ErrBadHeader = errors.New("packstream: bad or unsupported header")
)
