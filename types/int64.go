package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int64PlainEncoder struct {
	writer io.Writer
}

func (e *Int64PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *Int64PlainEncoder) EncodeValues(values []int64) error {
	return binary.Write(e.writer, binary.LittleEndian, values)
}

func (e *Int64PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int64PlainDecoder struct {
	reader io.Reader
}

func (d *Int64PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *Int64PlainDecoder) DecodeValues(dest []int64) (count int, err error) {
	var n int64

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		dest[count] = n
	}

	return len(dest), nil
}

func (d *Int64PlainDecoder) SkipValues(count int) (int, error) {
	return skipFixed(d.reader, count, 8)
}

// Encoding_DELTA_BINARY_PACKED ////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int64DeltaBPEncoder struct {
	encoding.DeltaBinaryPackEncoder64
}

func (e *Int64DeltaBPEncoder) EncodeValues(values []int64) error {
	for i := range values {
		if err := e.AddInt64(values[i]); err != nil {
			return err
		}
	}

	return nil
}

// Decoder /////////////////////////////

type Int64DeltaBPDecoder struct {
	encoding.DeltaBinaryPackDecoder64
}

func (d *Int64DeltaBPDecoder) DecodeValues(dest []int64) (count int, err error) {
	for count = range dest {
		v, err := d.Next()
		if err != nil {
			return count, err
		}

		dest[count] = v
	}

	return len(dest), nil
}

func (d *Int64DeltaBPDecoder) SkipValues(count int) (int, error) {
	return d.Skip(count)
}
