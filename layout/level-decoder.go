package layout

import (
	"bytes"
	"io"
	"math/bits"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/encoding"
)

// levelDecoder reads one definition or repetition level stream. A column
// with a zero maximum level has no encoded stream at all; the decoder then
// synthesizes zeros.
type levelDecoder struct {
	max     uint16
	decoder *encoding.HybridDecoder
}

func newLevelDecoder(max uint16) *levelDecoder {
	return &levelDecoder{max: max}
}

// initSized initializes the decoder from a v1 page stream, where the level
// block starts with its length as a little-endian uint32. The block is
// drained eagerly: the caller keeps reading the same stream for the next
// level block and the values, so nothing may be left for lazy consumption.
func (l *levelDecoder) initSized(reader io.Reader) error {
	if l.max == 0 {
		return nil
	}

	l.decoder = encoding.NewHybridDecoder(bits.Len16(l.max), true)

	return l.decoder.InitSize(reader)
}

// initRaw initializes the decoder from a v2 page level block, which has no
// length prefix since the byte length comes from the page header.
func (l *levelDecoder) initRaw(data []byte) error {
	if l.max == 0 {
		return nil
	}

	l.decoder = encoding.NewHybridDecoder(bits.Len16(l.max), false)

	return l.decoder.Init(bytes.NewReader(data))
}

// decodeLevels fills dest completely and validates every level against the
// column maximum. A level stream too short for its page is corrupt data,
// not a clean end of stream.
func (l *levelDecoder) decodeLevels(dest []uint16) error {
	if l.max == 0 {
		for i := range dest {
			dest[i] = 0
		}

		return nil
	}

	for i := range dest {
		u, err := l.decoder.Next()
		if err != nil {
			return errors.Wrap(err, "unexpected end of level stream")
		}

		if u < 0 || u > int32(l.max) {
			return errors.WithFields(
				errors.New("level out of range"),
				errors.Fields{
					"level":     u,
					"max-level": l.max,
				})
		}

		dest[i] = uint16(u)
	}

	return nil
}

// skipLevels advances the stream by count levels without materializing them.
func (l *levelDecoder) skipLevels(count int) error {
	if l.max == 0 {
		return nil
	}

	n, err := l.decoder.Skip(count)
	if err != nil {
		return errors.WithStack(err)
	}

	if n != count {
		return errors.WithFields(
			errors.New("unexpected end of level stream"),
			errors.Fields{
				"expected": count,
				"actual":   n,
			})
	}

	return nil
}
