package packstream

import "sync"

// bufPool reuses Buffers across Pack calls. Pack finalizes by copying the
// committed bytes out, so a pooled Buffer never leaks content between calls.
// This reduces GC pressure by avoiding a fresh 16KB allocation per pack.
var bufPool = sync.Pool{
	New: func() any {
		return NewBuffer(DefaultBufferSize)
	},
}

func getBuffer() *Buffer {
	b := bufPool.Get().(*Buffer)
	b.Reset()
	return b
}

// maxPooledBufferCap bounds what goes back into the pool. A buffer that a
// large pack grew to hundreds of KB would pin that storage for the process
// lifetime if pooled; past this cap it is dropped and left to the GC.
const maxPooledBufferCap = 16 * DefaultBufferSize

func putBuffer(b *Buffer) {
	if b.Cap() > maxPooledBufferCap {
		return
	}
	bufPool.Put(b)
}
