package pool

import (
	"sync"
)

// BufferPool hands out reusable byte slices of one fixed size.
type BufferPool struct {
	size int
	pool sync.Pool
}

// NewBufferPool creates a pool of size-byte buffers. size must be positive.
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		panic("pool: buffer size must be positive")
	}
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, size)
				return &b
			},
		},
	}
}

// Size returns the length of the buffers handed out by Get.
func (bp *BufferPool) Size() int {
	return bp.size
}

// Get returns a buffer of exactly Size bytes.
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns b to the pool. Buffers of a foreign capacity are dropped.
func (bp *BufferPool) Put(b *[]byte) {
	if b == nil || cap(*b) != bp.size {
		return
	}
	*b = (*b)[:bp.size]
	bp.pool.Put(b)
}
