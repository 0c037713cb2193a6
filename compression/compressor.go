// Package compression implements the block codecs a page reader needs to
// inflate compressed page data. Every codec works on whole blocks; pages
// are small enough that streaming would buy nothing.
package compression

// BlockCompressor compresses and decompresses single blocks of bytes.
// Implementations are stateless and safe for concurrent use.
type BlockCompressor interface {
	CompressBlock(block []byte) ([]byte, error)
	DecompressBlock(block []byte) ([]byte, error)
}
