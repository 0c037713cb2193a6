package layout

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/compression"
	"github.com/hexbee-net/parquet-column/format"
)

type compressorMap map[format.CompressionCodec]compression.BlockCompressor

// DefaultCompressors returns the codec registry used when a reader is built
// with a nil compressor map.
func DefaultCompressors() map[format.CompressionCodec]compression.BlockCompressor {
	return map[format.CompressionCodec]compression.BlockCompressor{
		format.CompressionCodec_UNCOMPRESSED: compression.Plain{},
		format.CompressionCodec_SNAPPY:       compression.Snappy{},
		format.CompressionCodec_GZIP:         compression.GZip{},
		format.CompressionCodec_BROTLI:       compression.Brotli{},
		format.CompressionCodec_LZ4:          compression.LZ4{},
		format.CompressionCodec_ZSTD:         compression.ZStd{},
	}
}

type blockReader struct {
	compressors compressorMap
}

// pageBlock decompresses one page block and validates the declared sizes.
func (r *blockReader) pageBlock(block []byte, codec format.CompressionCodec, uncompressedSize int32) (io.Reader, error) {
	if uncompressedSize < 0 {
		return nil, errors.WithFields(
			errors.New("invalid page data size"),
			errors.Fields{
				"uncompressed-size": uncompressedSize,
			})
	}

	res, err := r.decompressBlock(block, codec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress block")
	}

	if len(res) != int(uncompressedSize) {
		return nil, errors.WithFields(
			errors.New("invalid size for decompressed data"),
			errors.Fields{
				"expected": uncompressedSize,
				"actual":   len(res),
			})
	}

	return bytes.NewReader(res), nil
}

func (r *blockReader) decompressBlock(block []byte, method format.CompressionCodec) ([]byte, error) {
	c, ok := r.compressors[method]
	if !ok {
		return nil, errors.WithFields(
			errors.New("compression method not supported"),
			errors.Fields{
				"method": method.String(),
			})
	}

	return c.DecompressBlock(block)
}
