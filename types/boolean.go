package types

import (
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type BooleanPlainEncoder struct {
	writer io.Writer
	data   *encoding.PackedArray
}

func (e *BooleanPlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	e.data = &encoding.PackedArray{}

	return e.data.Reset(1)
}

func (e *BooleanPlainEncoder) EncodeValues(values []bool) error {
	for i := range values {
		var v int32
		if values[i] {
			v = 1
		}

		e.data.AppendSingle(v)
	}

	return nil
}

func (e *BooleanPlainEncoder) Close() error {
	e.data.Flush()
	return e.data.Write(e.writer)
}

// Decoder /////////////////////////////

// BooleanPlainDecoder reads the 1-bit-packed plain representation, one bit
// per value, LSB first. The bit cursor survives across calls so decode and
// skip can interleave at any bit position.
type BooleanPlainDecoder struct {
	reader io.Reader

	cur   byte
	avail int
}

func (d *BooleanPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader
	d.cur = 0
	d.avail = 0

	return nil
}

func (d *BooleanPlainDecoder) DecodeValues(dest []bool) (count int, err error) {
	buf := make([]byte, 1)

	for count = range dest {
		if d.avail == 0 {
			if _, err := io.ReadFull(d.reader, buf); err != nil {
				return count, err
			}

			d.cur = buf[0]
			d.avail = 8
		}

		dest[count] = d.cur&1 == 1
		d.cur >>= 1
		d.avail--
	}

	return len(dest), nil
}

func (d *BooleanPlainDecoder) SkipValues(count int) (int, error) {
	if d.reader == nil {
		return 0, errors.WithStack(errNilReader)
	}

	skipped := 0

	// drain the buffered bits first
	if n := count; n > 0 {
		if n > d.avail {
			n = d.avail
		}

		d.cur >>= uint(n)
		d.avail -= n
		skipped += n
	}

	if whole := (count - skipped) / 8; whole > 0 {
		m, err := discardBytes(d.reader, int64(whole))
		if err != nil {
			return skipped + int(m)*8, err
		}

		skipped += int(m) * 8

		if m < int64(whole) {
			return skipped, nil
		}
	}

	if rem := count - skipped; rem > 0 {
		buf := make([]byte, 1)
		if _, err := io.ReadFull(d.reader, buf); err != nil {
			if err == io.EOF {
				return skipped, nil
			}

			return skipped, err
		}

		d.cur = buf[0] >> uint(rem)
		d.avail = 8 - rem
		skipped += rem
	}

	return skipped, nil
}
