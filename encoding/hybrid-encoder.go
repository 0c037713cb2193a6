package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
)

// HybridEncoder writes the RLE/bit-packed hybrid encoding as a single
// bit-packed run, which is a valid form of the hybrid stream for any input.
type HybridEncoder struct {
	w io.Writer

	original io.Writer
	bitWidth int

	data *PackedArray
}

func NewHybridEncoder(bitWidth int) *HybridEncoder {
	return &HybridEncoder{
		bitWidth: bitWidth,
		data:     &PackedArray{},
	}
}

func (e *HybridEncoder) Init(writer io.Writer) error {
	e.w = writer
	e.original = nil

	return e.data.Reset(e.bitWidth)
}

// InitSize buffers the encoded stream and prefixes it with its length on
// Close, the layout of data page v1 level streams.
func (e *HybridEncoder) InitSize(writer io.Writer) error {
	if err := e.Init(&bytes.Buffer{}); err != nil {
		return err
	}

	e.original = writer

	return nil
}

func (e *HybridEncoder) Encode(data []int32) error {
	for i := range data {
		e.data.AppendSingle(data[i])
	}

	return nil
}

func (e *HybridEncoder) Close() error {
	if e.bitWidth == 0 {
		return nil
	}

	if err := e.flush(); err != nil {
		return err
	}

	if e.original != nil {
		data := e.w.(*bytes.Buffer).Bytes()
		size := uint32(len(data))

		if err := binary.Write(e.original, binary.LittleEndian, size); err != nil {
			return err
		}

		return writeFull(e.original, data)
	}

	return nil
}

func (e *HybridEncoder) flush() error {
	e.data.Flush()

	return e.bpEncode()
}

func (e *HybridEncoder) bpEncode() error {
	l := e.data.count
	if x := l % 8; x != 0 {
		l += 8 - x
	}

	header := ((l / 8) << 1) | 1
	buf := make([]byte, 4) // big enough for int
	cnt := binary.PutUvarint(buf, uint64(header))

	if err := writeFull(e.w, buf[:cnt]); err != nil {
		return err
	}

	return writeFull(e.w, e.data.data)
}
