package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int32PlainEncoder struct {
	writer io.Writer
}

func (e *Int32PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *Int32PlainEncoder) EncodeValues(values []int32) error {
	return binary.Write(e.writer, binary.LittleEndian, values)
}

func (e *Int32PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int32PlainDecoder struct {
	reader io.Reader
}

func (d *Int32PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *Int32PlainDecoder) DecodeValues(dest []int32) (count int, err error) {
	var n int32

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		dest[count] = n
	}

	return len(dest), nil
}

func (d *Int32PlainDecoder) SkipValues(count int) (int, error) {
	return skipFixed(d.reader, count, 4)
}

// Encoding_DELTA_BINARY_PACKED ////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int32DeltaBPEncoder struct {
	encoding.DeltaBinaryPackEncoder32
}

func (e *Int32DeltaBPEncoder) EncodeValues(values []int32) error {
	for i := range values {
		if err := e.AddInt32(values[i]); err != nil {
			return err
		}
	}

	return nil
}

// Decoder /////////////////////////////

type Int32DeltaBPDecoder struct {
	encoding.DeltaBinaryPackDecoder32
}

func (d *Int32DeltaBPDecoder) DecodeValues(dest []int32) (count int, err error) {
	for count = range dest {
		v, err := d.Next()
		if err != nil {
			return count, err
		}

		dest[count] = v
	}

	return len(dest), nil
}

func (d *Int32DeltaBPDecoder) SkipValues(count int) (int, error) {
	return d.Skip(count)
}
