package download

import "sync"

const blockSize = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, blockSize)
		return &buf
	},
}

func getBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

func putBuffer(b *[]byte) {
	bufferPool.Put(b)
}
