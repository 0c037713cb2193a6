package layout

import (
	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/format"
	"github.com/hexbee-net/parquet-column/schema"
	"github.com/hexbee-net/parquet-column/types"
)

func newDictDecoder[T types.Value](dict *types.Dictionary[T]) (types.ValuesDecoder[T], error) {
	if dict == nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrProtocolViolation),
			errors.Fields{
				"reason": "dictionary encoded page without preceding dictionary page",
			})
	}

	return types.NewDictDecoder(dict), nil
}

func unsupportedEncoding(typ string, pageEncoding format.Encoding) error {
	return errors.WithFields(
		errors.WithStack(ErrUnsupportedEncoding),
		errors.Fields{
			"type":     typ,
			"encoding": pageEncoding.String(),
		})
}

func getBooleanValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[bool]) (types.ValuesDecoder[bool], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.BooleanPlainDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("boolean", pageEncoding)
	}
}

func getInt32ValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[int32]) (types.ValuesDecoder[int32], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.Int32PlainDecoder{}, nil
	case format.Encoding_DELTA_BINARY_PACKED:
		return &types.Int32DeltaBPDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("int32", pageEncoding)
	}
}

func getInt64ValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[int64]) (types.ValuesDecoder[int64], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.Int64PlainDecoder{}, nil
	case format.Encoding_DELTA_BINARY_PACKED:
		return &types.Int64DeltaBPDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("int64", pageEncoding)
	}
}

func getInt96ValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[types.Int96]) (types.ValuesDecoder[types.Int96], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.Int96PlainDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("int96", pageEncoding)
	}
}

func getFloatValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[float32]) (types.ValuesDecoder[float32], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.FloatPlainDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("float", pageEncoding)
	}
}

func getDoubleValuesDecoder(pageEncoding format.Encoding, dict *types.Dictionary[float64]) (types.ValuesDecoder[float64], error) {
	switch normalizeEncoding(pageEncoding) {
	case format.Encoding_PLAIN:
		return &types.DoublePlainDecoder{}, nil
	case format.Encoding_RLE_DICTIONARY:
		return newDictDecoder(dict)
	default:
		return nil, unsupportedEncoding("double", pageEncoding)
	}
}

func getByteArrayValuesDecoder(typeLength int) getValueDecoderFn[[]byte] {
	typ := "binary"
	if typeLength > 0 {
		typ = "fixed_len_byte_array"
	}

	return func(pageEncoding format.Encoding, dict *types.Dictionary[[]byte]) (types.ValuesDecoder[[]byte], error) {
		switch normalizeEncoding(pageEncoding) {
		case format.Encoding_PLAIN:
			return &types.ByteArrayPlainDecoder{Length: typeLength}, nil
		case format.Encoding_RLE_DICTIONARY:
			return newDictDecoder(dict)
		default:
			return nil, unsupportedEncoding(typ, pageEncoding)
		}
	}
}

// normalizeEncoding folds the deprecated dictionary encoding tag into its
// replacement.
func normalizeEncoding(pageEncoding format.Encoding) format.Encoding {
	if pageEncoding == format.Encoding_PLAIN_DICTIONARY {
		return format.Encoding_RLE_DICTIONARY
	}

	return pageEncoding
}

// Constructors ////////////////////////////////////////////////////////////////

func checkColumnType(col *schema.Column, expected format.Type) error {
	if col.Type() != expected {
		return errors.WithFields(
			errors.New("column type mismatch"),
			errors.Fields{
				"column":   col.Name(),
				"expected": expected.String(),
				"actual":   col.Type().String(),
			})
	}

	return nil
}

func NewBooleanColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[bool], error) {
	if err := checkColumnType(col, format.Type_BOOLEAN); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getBooleanValuesDecoder, func() types.ValuesDecoder[bool] {
		return &types.BooleanPlainDecoder{}
	}), nil
}

func NewInt32ColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[int32], error) {
	if err := checkColumnType(col, format.Type_INT32); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getInt32ValuesDecoder, func() types.ValuesDecoder[int32] {
		return &types.Int32PlainDecoder{}
	}), nil
}

func NewInt64ColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[int64], error) {
	if err := checkColumnType(col, format.Type_INT64); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getInt64ValuesDecoder, func() types.ValuesDecoder[int64] {
		return &types.Int64PlainDecoder{}
	}), nil
}

func NewInt96ColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[types.Int96], error) {
	if err := checkColumnType(col, format.Type_INT96); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getInt96ValuesDecoder, func() types.ValuesDecoder[types.Int96] {
		return &types.Int96PlainDecoder{}
	}), nil
}

func NewFloatColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[float32], error) {
	if err := checkColumnType(col, format.Type_FLOAT); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getFloatValuesDecoder, func() types.ValuesDecoder[float32] {
		return &types.FloatPlainDecoder{}
	}), nil
}

func NewDoubleColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[float64], error) {
	if err := checkColumnType(col, format.Type_DOUBLE); err != nil {
		return nil, err
	}

	return newColumnReader(col, pages, compressors, getDoubleValuesDecoder, func() types.ValuesDecoder[float64] {
		return &types.DoublePlainDecoder{}
	}), nil
}

func NewByteArrayColumnReader(col *schema.Column, pages PageSource, compressors Compressors) (*ColumnReader[[]byte], error) {
	typeLength := 0

	switch col.Type() {
	case format.Type_BYTE_ARRAY:
	case format.Type_FIXED_LEN_BYTE_ARRAY:
		typeLength = col.TypeLength()
	default:
		return nil, errors.WithFields(
			errors.New("column type mismatch"),
			errors.Fields{
				"column":   col.Name(),
				"expected": format.Type_BYTE_ARRAY.String(),
				"actual":   col.Type().String(),
			})
	}

	return newColumnReader(col, pages, compressors, getByteArrayValuesDecoder(typeLength), func() types.ValuesDecoder[[]byte] {
		return &types.ByteArrayPlainDecoder{Length: typeLength}
	}), nil
}
