package layout

import (
	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/compression"
	"github.com/hexbee-net/parquet-column/format"
	"github.com/hexbee-net/parquet-column/schema"
	"github.com/hexbee-net/parquet-column/types"
)

// skipScratchSize bounds the definition level scratch used by Skip, so a
// large skip never allocates proportionally to its size.
const skipScratchSize = 2048

// ColumnReader decodes one column chunk into typed values plus parallel
// definition and repetition level sequences. Reads and skips straddle page
// boundaries transparently; the observable output is the same as a single
// monolithic decode of the whole chunk.
//
// A reader owns its cursor and dictionary state and is not safe for
// concurrent use.
type ColumnReader[T types.Value] struct {
	col    *schema.Column
	cursor *pageCursor[T]

	defScratch []uint16
	repScratch []uint16
}

func newColumnReader[T types.Value](col *schema.Column, pages PageSource, compressors compressorMap, valueDecoderFn getValueDecoderFn[T], dictDecoderFn newPlainDecoderFn[T]) *ColumnReader[T] {
	if compressors == nil {
		compressors = DefaultCompressors()
	}

	return &ColumnReader[T]{
		col: col,
		cursor: &pageCursor[T]{
			col:            col,
			pages:          pages,
			blocks:         blockReader{compressors: compressors},
			valueDecoderFn: valueDecoderFn,
			dictDecoderFn:  dictDecoderFn,
		},
	}
}

// HasNext reports whether another level slot can be read. It runs the page
// advance and validation logic, so sequencing violations and unsupported
// encodings in the next page surface here even before any read.
func (r *ColumnReader[T]) HasNext() (bool, error) {
	return r.cursor.advance()
}

// ReadBatch decodes up to maxLevels level slots and their present values.
//
// Definition levels go to defLevels and repetition levels to repLevels when
// those slices are non-nil; each must then hold at least maxLevels entries.
// Values are compact: one entry per slot whose definition level equals the
// column maximum, so values must hold at least as many entries as the batch
// can have present slots. Returns the level and value counts actually
// produced; (0, 0) with a nil error means the column is exhausted.
func (r *ColumnReader[T]) ReadBatch(maxLevels int, defLevels, repLevels []uint16, values []T) (levelsRead, valuesRead int, err error) {
	maxD := r.col.MaxDefinitionLevel()
	maxR := r.col.MaxRepetitionLevel()

	for levelsRead < maxLevels {
		ok, err := r.cursor.advance()
		if err != nil {
			return levelsRead, valuesRead, err
		}

		if !ok {
			break
		}

		n := maxLevels - levelsRead
		if n > r.cursor.remaining {
			n = r.cursor.remaining
		}

		if repLevels != nil || maxR > 0 {
			reps := levelsWindow(repLevels, levelsRead, n, &r.repScratch)
			if err := r.cursor.repetitionDecoder.decodeLevels(reps); err != nil {
				return levelsRead, valuesRead, errors.Wrap(err, "read repetition levels failed")
			}
		}

		notNull := n

		if defLevels != nil || maxD > 0 {
			defs := levelsWindow(defLevels, levelsRead, n, &r.defScratch)
			if err := r.cursor.definitionDecoder.decodeLevels(defs); err != nil {
				return levelsRead, valuesRead, errors.Wrap(err, "read definition levels failed")
			}

			if maxD > 0 {
				notNull = 0

				for _, d := range defs {
					if d == maxD {
						notNull++
					}
				}
			}
		}

		if notNull > 0 {
			dest := values[valuesRead : valuesRead+notNull]

			m, err := r.cursor.values.DecodeValues(dest)
			if err != nil {
				return levelsRead, valuesRead, errors.Wrap(err, "read values from page failed")
			}

			if m != notNull {
				return levelsRead, valuesRead, errors.WithFields(
					errors.New("short read of values from page"),
					errors.Fields{
						"expected": notNull,
						"actual":   m,
					})
			}
		}

		r.cursor.remaining -= n
		levelsRead += n
		valuesRead += notNull
	}

	return levelsRead, valuesRead, nil
}

// ReadBatchSpaced decodes up to maxLevels level slots into a null-spaced
// value buffer with a validity bitmap.
//
// A slot whose definition level equals the column maximum writes its value
// and a set bit. A slot null at the immediate leaf writes a zero value and
// a clear bit. Deeper absence only occupies a slot when the column has no
// repetition; for repeated columns those slots are not materialized at all.
// Bits are written starting at validBitsOffset into validBits. Returns the
// level count, the spaced slot count, and the clear bit count.
func (r *ColumnReader[T]) ReadBatchSpaced(maxLevels int, defLevels, repLevels []uint16, values []T, validBits []byte, validBitsOffset int64) (levelsRead, valuesRead, nullCount int, err error) {
	maxD := r.col.MaxDefinitionLevel()
	maxR := r.col.MaxRepetitionLevel()

	var zero T

	for levelsRead < maxLevels {
		ok, err := r.cursor.advance()
		if err != nil {
			return levelsRead, valuesRead, nullCount, err
		}

		if !ok {
			break
		}

		n := maxLevels - levelsRead
		if n > r.cursor.remaining {
			n = r.cursor.remaining
		}

		if repLevels != nil || maxR > 0 {
			reps := levelsWindow(repLevels, levelsRead, n, &r.repScratch)
			if err := r.cursor.repetitionDecoder.decodeLevels(reps); err != nil {
				return levelsRead, valuesRead, nullCount, errors.Wrap(err, "read repetition levels failed")
			}
		}

		if maxD == 0 {
			// Required column: every slot is a present value.
			dest := values[valuesRead : valuesRead+n]

			m, err := r.cursor.values.DecodeValues(dest)
			if err != nil {
				return levelsRead, valuesRead, nullCount, errors.Wrap(err, "read values from page failed")
			}

			if m != n {
				return levelsRead, valuesRead, nullCount, errors.WithFields(
					errors.New("short read of values from page"),
					errors.Fields{
						"expected": n,
						"actual":   m,
					})
			}

			for i := 0; i < n; i++ {
				setBit(validBits, validBitsOffset+int64(valuesRead+i))
			}

			r.cursor.remaining -= n
			levelsRead += n
			valuesRead += n

			continue
		}

		defs := levelsWindow(defLevels, levelsRead, n, &r.defScratch)
		if err := r.cursor.definitionDecoder.decodeLevels(defs); err != nil {
			return levelsRead, valuesRead, nullCount, errors.Wrap(err, "read definition levels failed")
		}

		notNull, slots := 0, 0

		for _, d := range defs {
			switch {
			case d == maxD:
				notNull++
				slots++
			case maxR == 0 || d+1 >= maxD:
				slots++
			}
		}

		dest := values[valuesRead : valuesRead+slots]

		m, err := r.cursor.values.DecodeValues(dest[:notNull])
		if err != nil {
			return levelsRead, valuesRead, nullCount, errors.Wrap(err, "read values from page failed")
		}

		if m != notNull {
			return levelsRead, valuesRead, nullCount, errors.WithFields(
				errors.New("short read of values from page"),
				errors.Fields{
					"expected": notNull,
					"actual":   m,
				})
		}

		// Spread the compact values to their spaced slots, back to front so
		// no unread compact entry gets clobbered.
		src, slot := notNull-1, slots-1

		for i := n - 1; i >= 0; i-- {
			switch {
			case defs[i] == maxD:
				dest[slot] = dest[src]
				setBit(validBits, validBitsOffset+int64(valuesRead+slot))
				src--
				slot--
			case maxR == 0 || defs[i]+1 >= maxD:
				dest[slot] = zero
				clearBit(validBits, validBitsOffset+int64(valuesRead+slot))
				nullCount++
				slot--
			}
		}

		r.cursor.remaining -= n
		levelsRead += n
		valuesRead += slots
	}

	return levelsRead, valuesRead, nullCount, nil
}

// Skip advances the column by up to numLevels level slots without
// materializing values. Definition levels still stream through a fixed-size
// scratch since the present-value count is only known as they pass; values
// and repetition levels take their decoders' skip paths. Returns fewer than
// requested only at end of column.
func (r *ColumnReader[T]) Skip(numLevels int) (int, error) {
	maxD := r.col.MaxDefinitionLevel()

	var skipped int

	for skipped < numLevels {
		ok, err := r.cursor.advance()
		if err != nil {
			return skipped, err
		}

		if !ok {
			break
		}

		n := numLevels - skipped
		if n > r.cursor.remaining {
			n = r.cursor.remaining
		}

		if err := r.cursor.repetitionDecoder.skipLevels(n); err != nil {
			return skipped, errors.Wrap(err, "skip repetition levels failed")
		}

		toSkip := n

		if maxD > 0 {
			if cap(r.defScratch) < skipScratchSize {
				r.defScratch = make([]uint16, skipScratchSize)
			}

			toSkip = 0

			for left := n; left > 0; {
				chunk := left
				if chunk > skipScratchSize {
					chunk = skipScratchSize
				}

				defs := r.defScratch[:chunk]
				if err := r.cursor.definitionDecoder.decodeLevels(defs); err != nil {
					return skipped, errors.Wrap(err, "skip definition levels failed")
				}

				for _, d := range defs {
					if d == maxD {
						toSkip++
					}
				}

				left -= chunk
			}
		}

		if toSkip > 0 {
			m, err := r.cursor.values.SkipValues(toSkip)
			if err != nil {
				return skipped, errors.Wrap(err, "skip values in page failed")
			}

			if m != toSkip {
				return skipped, errors.WithFields(
					errors.New("short skip of values in page"),
					errors.Fields{
						"expected": toSkip,
						"actual":   m,
					})
			}
		}

		r.cursor.remaining -= n
		skipped += n
	}

	return skipped, nil
}

// levelsWindow returns the next n-entry destination window inside dest, or
// a scratch window when the caller did not provide a destination.
func levelsWindow(dest []uint16, offset, n int, scratch *[]uint16) []uint16 {
	if dest != nil {
		return dest[offset : offset+n]
	}

	if cap(*scratch) < n {
		*scratch = make([]uint16, n)
	}

	return (*scratch)[:n]
}

func setBit(bits []byte, i int64) {
	bits[i/8] |= 1 << uint(i%8)
}

func clearBit(bits []byte, i int64) {
	bits[i/8] &^= 1 << uint(i%8)
}

// Compressors /////////////////////////////////////////////////////////////////

// Compressors is the codec registry type accepted by the reader
// constructors. A nil map selects DefaultCompressors.
type Compressors = map[format.CompressionCodec]compression.BlockCompressor
