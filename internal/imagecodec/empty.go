package imagecodec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// writeEmptyPNG emits a PNG stream for a raster with no pixels. image/png
// refuses zero dimensions, so the chunks are written directly: IHDR carries
// the (zero) size as 8-bit RGBA, IDAT holds an empty zlib stream.
func writeEmptyPNG(w io.Writer, width, height int) error {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	var buf bytes.Buffer
	buf.WriteString(pngSignature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // truecolour with alpha
	ihdr[10] = 0 // deflate
	ihdr[11] = 0 // adaptive filtering
	ihdr[12] = 0 // no interlace
	writeChunk(&buf, "IHDR", ihdr)

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	if err := zw.Close(); err != nil {
		return err
	}
	writeChunk(&buf, "IDAT", idat.Bytes())
	writeChunk(&buf, "IEND", nil)

	_, err := w.Write(buf.Bytes())
	return err
}

func writeChunk(buf *bytes.Buffer, kind string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], kind)
	buf.Write(header[:])
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}
