package compression

// Plain is the identity codec, used for uncompressed blocks.
type Plain struct {
}

func (c Plain) CompressBlock(block []byte) ([]byte, error) {
	return block, nil
}

func (c Plain) DecompressBlock(block []byte) ([]byte, error) {
	return block, nil
}
