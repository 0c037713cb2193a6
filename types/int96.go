package types

import (
	"io"

	"github.com/hexbee-net/errors"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int96PlainEncoder struct {
	writer io.Writer
}

func (e *Int96PlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *Int96PlainEncoder) EncodeValues(values []Int96) error {
	for i := range values {
		if err := writeFull(e.writer, values[i][:]); err != nil {
			return err
		}
	}

	return nil
}

func (e *Int96PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int96PlainDecoder struct {
	reader io.Reader
}

func (d *Int96PlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *Int96PlainDecoder) DecodeValues(dest []Int96) (count int, err error) {
	for count = range dest {
		if _, err := io.ReadFull(d.reader, dest[count][:]); err != nil {
			return count, err
		}
	}

	return len(dest), nil
}

func (d *Int96PlainDecoder) SkipValues(count int) (int, error) {
	return skipFixed(d.reader, count, 12)
}
