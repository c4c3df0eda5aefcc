package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers.
const (
	SectionBufferDefaultSize  = 1024 * 4   // 4KiB, a typical summary section is well below this
	SectionBufferMaxThreshold = 1024 * 256 // 256KiB
	StreamBufferDefaultSize   = 1024 * 8   // 8KiB
	StreamBufferMaxThreshold  = 1024 * 1024
)

// ByteBuffer is an append-only byte buffer used while serializing sections and streams.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// Clone returns a copy of the buffer contents that stays valid after the buffer is reused.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// PadLen returns the number of bytes needed to round n up to a multiple of 4.
func PadLen(n int) int {
	return (4 - n%4) % 4
}

// AppendPad appends the zero bytes that round a field of n bytes up to a multiple of 4.
func AppendPad(dst []byte, n int) []byte {
	for range PadLen(n) {
		dst = append(dst, 0)
	}

	return dst
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped instead of being
// returned to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	sectionDefaultPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
	streamDefaultPool  = NewByteBufferPool(StreamBufferDefaultSize, StreamBufferMaxThreshold)
)

// GetSectionBuffer retrieves a ByteBuffer from the section pool.
func GetSectionBuffer() *ByteBuffer {
	return sectionDefaultPool.Get()
}

// PutSectionBuffer returns a ByteBuffer to the section pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionDefaultPool.Put(bb)
}

// GetStreamBuffer retrieves a ByteBuffer from the stream pool.
func GetStreamBuffer() *ByteBuffer {
	return streamDefaultPool.Get()
}

// PutStreamBuffer returns a ByteBuffer to the stream pool.
func PutStreamBuffer(bb *ByteBuffer) {
	streamDefaultPool.Put(bb)
}
