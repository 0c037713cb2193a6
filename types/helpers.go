package types

import (
	"io"
	"io/ioutil"

	"github.com/hexbee-net/errors"
)

func writeFull(w io.Writer, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	cnt, err := w.Write(buf)
	if err != nil {
		return err
	}

	if cnt != len(buf) {
		return errors.WithFields(
			errors.New("invalid number of bytes written"),
			errors.Fields{
				"expected": len(buf),
				"actual":   cnt,
			})
	}

	return nil
}

// discardBytes drops exactly n bytes from the reader. It returns the number
// of bytes actually dropped; a short count means the stream ended.
func discardBytes(r io.Reader, n int64) (int64, error) {
	cnt, err := io.CopyN(ioutil.Discard, r, n)
	if err == io.EOF {
		return cnt, nil
	}

	return cnt, err
}

// skipFixed implements SkipValues for fixed-width plain decoders.
func skipFixed(r io.Reader, count, width int) (int, error) {
	if r == nil {
		return 0, errors.WithStack(errNilReader)
	}

	n, err := discardBytes(r, int64(count)*int64(width))
	if err != nil {
		return int(n) / width, err
	}

	return int(n) / width, nil
}
