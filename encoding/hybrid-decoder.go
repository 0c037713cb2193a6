package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"
	"math/bits"

	"github.com/hexbee-net/errors"
)

// HybridDecoder decodes the RLE/bit-packed hybrid encoding used for
// repetition levels, definition levels and dictionary indices.
type HybridDecoder struct {
	r io.Reader

	bitWidth     int
	unpackerFn   unpack8int32Func
	rleValueSize int

	bpRun [8]int32

	rleCount uint32
	rleValue int32

	bpCount  uint32
	bpRunPos uint8

	buffered bool
}

func NewHybridDecoder(bitWidth int, buffered bool) *HybridDecoder {
	return &HybridDecoder{
		bitWidth:   bitWidth,
		unpackerFn: unpack8Int32FuncByWidth[bitWidth],

		rleValueSize: (bitWidth + 7) / 8,

		buffered: buffered,
	}
}

func (d *HybridDecoder) Init(reader io.Reader) error {
	if d.buffered {
		buf, err := ioutil.ReadAll(reader)
		if err != nil {
			return err
		}

		d.r = bytes.NewReader(buf)
	} else {
		d.r = reader
	}

	return nil
}

// InitSize reads the little-endian uint32 length prefix used by data page v1
// level streams, and limits the decoder to that many bytes.
func (d *HybridDecoder) InitSize(reader io.Reader) error {
	if d.bitWidth == 0 {
		return nil
	}

	var size uint32
	if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
		return err
	}

	return d.Init(io.LimitReader(reader, int64(size)))
}

func (d *HybridDecoder) Next() (int32, error) {
	var next int32

	// when the bit width is zero, it means we can only have infinite zero.
	if d.bitWidth == 0 {
		return 0, nil
	}

	if d.r == nil {
		return 0, errors.WithStack(errNilReader)
	}

	if d.rleCount == 0 && d.bpCount == 0 && d.bpRunPos == 0 {
		if err := d.readRunHeader(); err != nil {
			return 0, err
		}
	}

	switch {
	case d.rleCount > 0:
		next = d.rleValue
		d.rleCount--

	case d.bpCount > 0 || d.bpRunPos > 0:
		if d.bpRunPos == 0 {
			if err := d.readBitPackedRun(); err != nil {
				return 0, err
			}
			d.bpCount--
		}

		next = d.bpRun[d.bpRunPos]
		d.bpRunPos = (d.bpRunPos + 1) % 8

	default:
		return 0, io.EOF
	}

	return next, nil
}

// DecodeInt32s fills dest with decoded values and returns the number of
// values produced. The count is less than len(dest) only when the underlying
// stream ends; a short count with a nil error means end of stream.
func (d *HybridDecoder) DecodeInt32s(dest []int32) (int, error) {
	if d.bitWidth == 0 {
		for i := range dest {
			dest[i] = 0
		}

		return len(dest), nil
	}

	for i := range dest {
		v, err := d.Next()
		if err == io.EOF {
			return i, nil
		}

		if err != nil {
			return i, err
		}

		dest[i] = v
	}

	return len(dest), nil
}

// Skip advances the decoder by up to count values without producing them.
// RLE runs are consumed in constant time per run; bit-packed runs are
// consumed group by group using the fixed internal buffer. A short count with
// a nil error means end of stream.
func (d *HybridDecoder) Skip(count int) (int, error) {
	if count < 0 {
		return 0, errors.WithStack(errOutOfRange)
	}

	if d.bitWidth == 0 {
		return count, nil
	}

	if d.r == nil {
		return 0, errors.WithStack(errNilReader)
	}

	skipped := 0

	for skipped < count {
		if d.rleCount == 0 && d.bpCount == 0 && d.bpRunPos == 0 {
			if err := d.readRunHeader(); err == io.EOF {
				return skipped, nil
			} else if err != nil {
				return skipped, err
			}
		}

		switch {
		case d.rleCount > 0:
			n := count - skipped
			if n > int(d.rleCount) {
				n = int(d.rleCount)
			}

			d.rleCount -= uint32(n)
			skipped += n

		case d.bpCount > 0 || d.bpRunPos > 0:
			if d.bpRunPos == 0 {
				if err := d.readBitPackedRun(); err != nil {
					return skipped, err
				}
				d.bpCount--
			}

			remaining := 8 - int(d.bpRunPos)

			n := count - skipped
			if n > remaining {
				n = remaining
			}

			d.bpRunPos = uint8((int(d.bpRunPos) + n) % 8)
			skipped += n

		default:
			return skipped, nil
		}
	}

	return skipped, nil
}

func (d *HybridDecoder) readRunHeader() error {
	h, err := readUVarInt32(d.r)
	if err != nil {
		// this error could be EOF which is ok by this implementation the only issue is the binary.ReadUVariant can not
		// return UnexpectedEOF is there is some bit read from the stream with no luck, it always return EOF
		return err
	}

	// The lower bit indicate if this is bitpack or rle
	if h&1 == 1 {
		d.bpCount = uint32(h >> 1)
		if d.bpCount == 0 {
			return errors.New("rle: empty bit-packed run")
		}

		d.bpRunPos = 0
	} else {
		d.rleCount = uint32(h >> 1)
		if d.rleCount == 0 {
			return errors.New("rle: empty RLE run")
		}
		return d.readRLERunValue()
	}

	return nil
}

func (d *HybridDecoder) readBitPackedRun() error {
	data := make([]byte, d.bitWidth)

	_, err := d.r.Read(data)
	if err != nil {
		return err
	}

	d.bpRun = d.unpackerFn(data)

	return nil
}

func (d *HybridDecoder) readRLERunValue() error {
	v := make([]byte, d.rleValueSize)

	n, err := d.r.Read(v)
	if err != nil {
		return err
	}

	if n != d.rleValueSize {
		return io.ErrUnexpectedEOF
	}

	d.rleValue = decodeRLEValue(v)

	if bits.LeadingZeros32(uint32(d.rleValue)) < 32-d.bitWidth {
		return errors.New("rle: RLE run value is too large")
	}

	return nil
}

func decodeRLEValue(value []byte) int32 {
	switch len(value) {
	case 0:
		return 0
	case 1:
		return int32(value[0])
	case 2:
		return int32(value[0]) + int32(value[1])<<8
	case 3:
		return int32(value[0]) + int32(value[1])<<8 + int32(value[2])<<16
	case 4:
		return int32(value[0]) + int32(value[1])<<8 + int32(value[2])<<16 + int32(value[3])<<24
	default:
		panic("invalid argument")
	}
}
