// Package types implements the value codecs of the column decode engine: one
// plain codec per physical type, the delta binary packed codec for integer
// types, and the dictionary codec. Decoders are specialized at compile time
// on the Go representation of the physical type.
package types

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errNilWriter = errors.Error("writer is nil")
	errNilReader = errors.Error("reader is nil")

	// ErrIndexOutOfRange is the cause reported when a dictionary encoded
	// stream references an index past the end of the dictionary.
	ErrIndexOutOfRange = errors.Error("dictionary index out of range")
)

// Int96 is the deprecated 96-bit parquet value, little-endian.
type Int96 [12]byte

// Value enumerates the Go representations of the physical types.
type Value interface {
	bool | int32 | int64 | Int96 | float32 | float64 | []byte
}

// ValuesDecoder decodes the value section of one data page.
//
// DecodeValues may return io.EOF together with a short count; any other
// error is fatal. SkipValues advances the decoder without materializing
// values and without any output allocation.
type ValuesDecoder[T Value] interface {
	Init(io.Reader) error

	DecodeValues(dest []T) (count int, err error)
	SkipValues(count int) (n int, err error)
}

// ValuesEncoder is the write-side counterpart, used to produce page buffers.
type ValuesEncoder[T Value] interface {
	io.Closer

	Init(io.Writer) error
	EncodeValues(values []T) error
}
