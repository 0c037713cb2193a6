package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type FloatPlainEncoder struct {
	writer io.Writer
}

func (e *FloatPlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *FloatPlainEncoder) EncodeValues(values []float32) error {
	return binary.Write(e.writer, binary.LittleEndian, values)
}

func (e *FloatPlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type FloatPlainDecoder struct {
	reader io.Reader
}

func (d *FloatPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *FloatPlainDecoder) DecodeValues(dest []float32) (count int, err error) {
	var n float32

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		dest[count] = n
	}

	return len(dest), nil
}

func (d *FloatPlainDecoder) SkipValues(count int) (int, error) {
	return skipFixed(d.reader, count, 4)
}
