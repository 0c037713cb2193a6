package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestBlockCompressors(t *testing.T) {
	t.Parallel()

	compressors := map[string]BlockCompressor{
		"Plain":  Plain{},
		"Snappy": Snappy{},
		"GZip":   GZip{},
		"Brotli": Brotli{},
		"LZ4":    LZ4{},
		"ZStd":   ZStd{},
	}

	block := bytes.Repeat([]byte("015734orhnlkjbn"), 1000)

	for name, c := range compressors {
		c := c

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			compressed, err := c.CompressBlock(block)
			require.NoError(t, err)

			decompressed, err := c.DecompressBlock(compressed)
			require.NoError(t, err)
			assert.Equal(t, block, decompressed)
		})
	}
}

func TestBlockCompressors_EmptyBlock(t *testing.T) {
	t.Parallel()

	for _, c := range []BlockCompressor{Plain{}, Snappy{}, GZip{}, ZStd{}} {
		compressed, err := c.CompressBlock(nil)
		require.NoError(t, err)

		decompressed, err := c.DecompressBlock(compressed)
		require.NoError(t, err)
		assert.Len(t, decompressed, 0)
	}
}
