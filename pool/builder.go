package pool

import (
	"bytes"
	"sync"
)

// maxPooledBufferCap keeps oversized backing arrays out of the pool.
const maxPooledBufferCap = 64 * 1024

var buffers = sync.OnceValue(func() *Pool[*bytes.Buffer] {
	return MustNew("bytes.Buffer", Policy[*bytes.Buffer]{
		Create: func() *bytes.Buffer { return new(bytes.Buffer) },
		OnReturn: func(b *bytes.Buffer) {
			if b.Cap() > maxPooledBufferCap {
				*b = bytes.Buffer{}
				return
			}
			b.Reset()
		},
		MaxSize: DefaultMaxSize,
	})
})

// GetBuffer leases an empty buffer.
func GetBuffer() *bytes.Buffer {
	return buffers().Get()
}

// PutBuffer returns a buffer leased with GetBuffer. Buffers that grew past
// 64KiB give up their backing array.
func PutBuffer(b *bytes.Buffer) {
	if b == nil {
		return
	}
	if err := buffers().Return(b); err != nil {
		panic(err)
	}
}

// BufferStats returns the counters of the buffer pool.
func BufferStats() Stats {
	return buffers().Stats()
}
