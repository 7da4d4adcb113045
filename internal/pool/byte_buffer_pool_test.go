package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Resize_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte{1, 2, 3})

	b := bb.Resize(10)

	require.Len(t, b, 10)
	assert.Equal(t, 10, bb.Len())
	assert.Equal(t, []byte{1, 2, 3}, b[:3], "existing bytes are preserved")
	assert.Equal(t, 10, bb.Cap(), "grows to the exact size")
}

func TestByteBuffer_Resize_Shrink(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.Resize(16)
	originalCap := bb.Cap()

	b := bb.Resize(4)

	require.Len(t, b, 4)
	assert.Equal(t, originalCap, bb.Cap(), "shrinking keeps capacity")
}

func TestByteBuffer_Resize_Negative(t *testing.T) {
	bb := NewByteBuffer(4)
	require.Panics(t, func() { bb.Resize(-1) })
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("segment"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte{0xAA, 0x55})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []byte{0xAA, 0x55}, out.Bytes())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers are reset")
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.Resize(1024)
	p.Put(bb) // discarded, must not panic

	next := p.Get()
	assert.LessOrEqual(t, next.Cap(), 16)
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(8, 16)
	require.NotPanics(t, func() { p.Put(nil) })
}

func TestGetScratch(t *testing.T) {
	bb := GetScratch(100)
	defer PutScratch(bb)

	require.Len(t, bb.Bytes(), 100)
}

func TestGetScratch_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bb := GetScratch(n * 8)
			defer PutScratch(bb)
			for j := range bb.B {
				bb.B[j] = byte(n)
			}
			for _, b := range bb.B {
				assert.Equal(t, byte(n), b)
			}
		}(i + 1)
	}
	wg.Wait()
}
