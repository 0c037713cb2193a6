package types

import (
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/encoding"
)

// Dictionary //////////////////////////////////////////////////////////////////

// Dictionary holds the decoded values of one dictionary page. It is built
// once and read-only afterwards.
type Dictionary[T Value] struct {
	values []T
}

// NewDictionary materializes count plain-encoded values from the reader.
// A short stream is an error here: a dictionary page must decode exactly the
// number of entries it declares.
func NewDictionary[T Value](count int32, reader io.Reader, plain ValuesDecoder[T]) (*Dictionary[T], error) {
	if count < 0 {
		return nil, errors.WithFields(
			errors.New("negative value count in dictionary page"),
			errors.Fields{
				"count": count,
			})
	}

	if err := plain.Init(reader); err != nil {
		return nil, errors.WithStack(err)
	}

	values := make([]T, int(count))

	if n, err := plain.DecodeValues(values); err != nil || n != len(values) {
		return nil, errors.WithFields(
			errors.New("unexpected number of values in dictionary page"),
			errors.Fields{
				"expected": count,
				"actual":   n,
			})
	}

	return &Dictionary[T]{values: values}, nil
}

// Len returns the number of dictionary entries.
func (d *Dictionary[T]) Len() int {
	return len(d.values)
}

// Value resolves one dictionary index, bounds-checked.
func (d *Dictionary[T]) Value(index int32) (T, error) {
	if index < 0 || int(index) >= len(d.values) {
		var zero T

		return zero, errors.WithFields(
			errors.WithStack(ErrIndexOutOfRange),
			errors.Fields{
				"index":        index,
				"values-count": len(d.values),
			})
	}

	return d.values[index], nil
}

// Decoder /////////////////////////////

// DictDecoder decodes RLE/bit-packed dictionary indices and resolves them
// through a previously built dictionary.
type DictDecoder[T Value] struct {
	dict *Dictionary[T]
	keys *encoding.HybridDecoder
}

func NewDictDecoder[T Value](dict *Dictionary[T]) *DictDecoder[T] {
	return &DictDecoder[T]{dict: dict}
}

func (d *DictDecoder[T]) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	if d.dict == nil {
		return errors.New("no dictionary for dictionary encoded page")
	}

	buf := make([]byte, 1)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return errors.WithStack(err)
	}

	w := int(buf[0])
	if w > 32 {
		return errors.WithFields(
			errors.New("invalid bit-width"),
			errors.Fields{
				"bit-width": w,
			})
	}

	d.keys = encoding.NewHybridDecoder(w, false)

	return d.keys.Init(reader)
}

func (d *DictDecoder[T]) DecodeValues(dest []T) (count int, err error) {
	for count = range dest {
		key, err := d.keys.Next()
		if err != nil {
			return count, err
		}

		v, err := d.dict.Value(key)
		if err != nil {
			return count, err
		}

		dest[count] = v
	}

	return len(dest), nil
}

// SkipValues drops count indices without resolving them through the
// dictionary.
func (d *DictDecoder[T]) SkipValues(count int) (int, error) {
	return d.keys.Skip(count)
}
