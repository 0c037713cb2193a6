package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type DoublePlainEncoder struct {
	writer io.Writer
}

func (e *DoublePlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *DoublePlainEncoder) EncodeValues(values []float64) error {
	return binary.Write(e.writer, binary.LittleEndian, values)
}

func (e *DoublePlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type DoublePlainDecoder struct {
	reader io.Reader
}

func (d *DoublePlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *DoublePlainDecoder) DecodeValues(dest []float64) (count int, err error) {
	var n float64

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		dest[count] = n
	}

	return len(dest), nil
}

func (d *DoublePlainDecoder) SkipValues(count int) (int, error) {
	return skipFixed(d.reader, count, 8)
}
