// Package png serializes a finished pixel buffer into a PNG file.
//
// Exactly one flavor of PNG is produced: 8-bit truecolor without alpha,
// no interlacing, every scanline using filter type None, the image data in
// a single zlib-compressed IDAT chunk. That is all the renderer needs, and
// keeping the encoder this narrow lets it stream rows through the
// compressor without ever holding the raw image in memory.
package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"iter"

	"github.com/klauspost/compress/zlib"

	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/internal/pool"
)

// signature is the fixed 8-byte PNG file header.
var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// filterNone is the per-scanline filter type byte.
var filterNone = []byte{0x00}

// Encode writes a truecolor PNG of the given dimensions to w. Each yielded
// row must hold exactly width*3 bytes of raw RGB data; rows arrive top to
// bottom. The row slices may be reused by the producer between yields.
func Encode(w io.Writer, width, height int, rows iter.Seq[[]byte]) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	if _, err := w.Write(signature); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	if err := writeHeader(w, width, height); err != nil {
		return err
	}
	if err := writeImageData(w, width, rows); err != nil {
		return err
	}

	// IEND carries no data, just its own checksum.
	if err := writeChunk(w, "IEND", nil); err != nil {
		return err
	}

	return nil
}

// writeHeader emits the 13-byte IHDR chunk: dimensions, bit depth 8,
// color type 2 (truecolor), compression 0, filter 0, interlace 0.
func writeHeader(w io.Writer, width, height int) error {
	data := make([]byte, 0, 13)
	data = binary.BigEndian.AppendUint32(data, uint32(width))
	data = binary.BigEndian.AppendUint32(data, uint32(height))
	data = append(data, 8, 2, 0, 0, 0)

	return writeChunk(w, "IHDR", data)
}

// writeImageData streams the rows through a zlib compressor and emits the
// result as one IDAT chunk. Only the compressed bytes are buffered; raw
// rows are consumed one at a time.
func writeImageData(w io.Writer, width int, rows iter.Seq[[]byte]) error {
	payload := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(payload)

	zw := zlib.NewWriter(payload)
	for row := range rows {
		if len(row) != width*3 {
			return fmt.Errorf("%w: got %d bytes, want %d",
				errs.ErrRowLength, len(row), width*3)
		}
		if _, err := zw.Write(filterNone); err != nil {
			return fmt.Errorf("failed to compress image data: %w", err)
		}
		if _, err := zw.Write(row); err != nil {
			return fmt.Errorf("failed to compress image data: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush image data: %w", err)
	}

	return writeChunk(w, "IDAT", payload.Bytes())
}

// writeChunk emits one PNG chunk: 4-byte big-endian data length, 4-byte
// type, data, CRC32 over type+data.
func writeChunk(w io.Writer, chunkType string, data []byte) error {
	var head [8]byte
	binary.BigEndian.PutUint32(head[:4], uint32(len(data)))
	copy(head[4:], chunkType)
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("failed to write %s chunk: %w", chunkType, err)
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write %s chunk: %w", chunkType, err)
		}
	}

	crc := crc32.NewIEEE()
	crc.Write(head[4:])
	crc.Write(data)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("failed to write %s chunk: %w", chunkType, err)
	}

	return nil
}
