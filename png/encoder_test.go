package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	stdpng "image/png"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/number0/btrfs-heatmap/errs"
)

func rowSeq(rows [][]byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	rows := [][]byte{
		{0xff, 0x00, 0x33, 0x00, 0x00, 0xff},
		{0xff, 0xff, 0xff, 0x00, 0x00, 0x00},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, 2, 2, rowSeq(rows)))

	img, err := stdpng.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	// Compression is lossless, so every channel must match exactly.
	for y, row := range rows {
		for x := 0; x < 2; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			require.Equal(t, uint32(row[x*3])*0x101, r, "pixel (%d,%d)", x, y)
			require.Equal(t, uint32(row[x*3+1])*0x101, g, "pixel (%d,%d)", x, y)
			require.Equal(t, uint32(row[x*3+2])*0x101, b, "pixel (%d,%d)", x, y)
			require.Equal(t, uint32(0xffff), a)
		}
	}
}

func TestEncode_FileStructure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, 1, 1, rowSeq([][]byte{{0x12, 0x34, 0x56}})))

	data := buf.Bytes()
	require.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, data[:8])

	// IHDR directly after the signature, 13 bytes of data.
	require.Equal(t, uint32(13), binary.BigEndian.Uint32(data[8:12]))
	require.Equal(t, "IHDR", string(data[12:16]))
	require.Equal(t, uint32(1), binary.BigEndian.Uint32(data[16:20]))  // width
	require.Equal(t, uint32(1), binary.BigEndian.Uint32(data[20:24]))  // height
	require.Equal(t, []byte{8, 2, 0, 0, 0}, data[24:29])               // depth, color, comp, filter, interlace

	// File ends with the fixed IEND chunk.
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82},
		data[len(data)-12:])
}

func TestEncode_BadRowLength(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, 2, 1, rowSeq([][]byte{{0x00, 0x00, 0x00}}))
	require.ErrorIs(t, err, errs.ErrRowLength)
}

func TestEncode_InvalidDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Encode(&buf, 0, 1, rowSeq(nil)))
	require.Error(t, Encode(&buf, 1, -1, rowSeq(nil)))
}

type failingWriter struct {
	after int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after -= len(p)

	return len(p), nil
}

func TestEncode_WriteErrorPropagates(t *testing.T) {
	err := Encode(&failingWriter{after: 10}, 1, 1, rowSeq([][]byte{{1, 2, 3}}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
}

func TestEncode_LargeUniformImage(t *testing.T) {
	const side = 64
	row := bytes.Repeat([]byte{0xaa}, side*3)
	rows := func(yield func([]byte) bool) {
		for range side {
			if !yield(row) {
				return
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, side, side, iter.Seq[[]byte](rows)))

	img, err := stdpng.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, side, side), img.Bounds())

	r, g, b, _ := img.At(side/2, side/2).RGBA()
	require.Equal(t, uint32(0xaa)*0x101, r)
	require.Equal(t, uint32(0xaa)*0x101, g)
	require.Equal(t, uint32(0xaa)*0x101, b)

	// A uniform image must compress far below its raw size.
	require.Less(t, buf.Len(), side*side*3/10)
}
