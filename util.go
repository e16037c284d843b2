package packstream

import "encoding/binary"

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the byte order of the canonical scalar encodings.
	Order = BE
)
