package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type ByteArrayPlainEncoder struct {
	writer io.Writer

	// Length, when non-zero, makes this a fixed size array encoder with no
	// length prefix.
	Length int
}

func (e *ByteArrayPlainEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.writer = writer

	return nil
}

func (e *ByteArrayPlainEncoder) EncodeValues(values [][]byte) error {
	for i := range values {
		if err := e.writeBytes(values[i]); err != nil {
			return err
		}
	}

	return nil
}

func (e *ByteArrayPlainEncoder) Close() error {
	return nil
}

func (e *ByteArrayPlainEncoder) writeBytes(data []byte) error {
	l := e.Length

	if l == 0 { // variable length
		l = len(data)
		l32 := int32(l)

		if err := binary.Write(e.writer, binary.LittleEndian, l32); err != nil {
			return err
		}
	} else if len(data) != l {
		return errors.WithFields(
			errors.New("byte array has invalid length"),
			errors.Fields{
				"expected": l,
				"actual":   len(data),
			})
	}

	return writeFull(e.writer, data)
}

// Decoder /////////////////////////////

type ByteArrayPlainDecoder struct {
	reader io.Reader

	// if the length is set, then this is a fix size array decoder, unless it reads the len first
	Length int
}

func (d *ByteArrayPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *ByteArrayPlainDecoder) DecodeValues(dest [][]byte) (count int, err error) {
	for count = range dest {
		if dest[count], err = d.next(); err != nil {
			return count, err
		}
	}

	return len(dest), nil
}

func (d *ByteArrayPlainDecoder) next() ([]byte, error) {
	l, err := d.nextLen()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, l)

	if _, err := io.ReadFull(d.reader, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (d *ByteArrayPlainDecoder) nextLen() (int32, error) {
	l := int32(d.Length)

	if l == 0 {
		if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
			return 0, err
		}

		if l < 0 {
			return 0, errors.New("bytearray/plain: len is negative")
		}
	}

	return l, nil
}

func (d *ByteArrayPlainDecoder) SkipValues(count int) (int, error) {
	if d.reader == nil {
		return 0, errors.WithStack(errNilReader)
	}

	for i := 0; i < count; i++ {
		l, err := d.nextLen()
		if err == io.EOF {
			return i, nil
		}

		if err != nil {
			return i, err
		}

		n, err := discardBytes(d.reader, int64(l))
		if err != nil {
			return i, err
		}

		if n < int64(l) {
			return i, errors.WithStack(io.ErrUnexpectedEOF)
		}
	}

	return count, nil
}
