package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowBuffer_ReuseIsEmpty(t *testing.T) {
	bb := GetRowBuffer()
	_, err := bb.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, bb.Len())
	PutRowBuffer(bb)

	bb2 := GetRowBuffer()
	require.Equal(t, 0, bb2.Len())
	PutRowBuffer(bb2)
}

func TestChunkBuffer_WriteAppends(t *testing.T) {
	bb := GetChunkBuffer()
	defer PutChunkBuffer(bb)

	n, err := bb.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = bb.Write([]byte("def"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte("abcdef"), bb.Bytes())
}

func TestPutRowBuffer_DropsOversized(t *testing.T) {
	bb := &ByteBuffer{B: make([]byte, 0, RowBufferMaxThreshold+1)}
	// Must not panic; the buffer is simply discarded.
	PutRowBuffer(bb)
}
