// Package schema describes the single-column schema information the decode
// engine needs: the physical type of the values and the maximum definition
// and repetition levels declared for the column.
package schema

import (
	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/format"
)

// Column is the immutable descriptor of one leaf column. It is fixed for the
// lifetime of any reader built on top of it.
type Column struct {
	name string
	typ  format.Type

	// typeLength is the value size in bytes for FIXED_LEN_BYTE_ARRAY columns,
	// zero for every other type.
	typeLength int

	maxR uint16
	maxD uint16
}

func NewColumn(name string, typ format.Type, maxDefinitionLevel, maxRepetitionLevel uint16) (*Column, error) {
	if typ == format.Type_FIXED_LEN_BYTE_ARRAY {
		return nil, errors.New("fixed length byte array column requires a type length, use NewFixedColumn")
	}

	return &Column{
		name: name,
		typ:  typ,
		maxR: maxRepetitionLevel,
		maxD: maxDefinitionLevel,
	}, nil
}

// NewFixedColumn creates the descriptor of a FIXED_LEN_BYTE_ARRAY column with
// the given value length in bytes.
func NewFixedColumn(name string, typeLength int, maxDefinitionLevel, maxRepetitionLevel uint16) (*Column, error) {
	if typeLength <= 0 {
		return nil, errors.WithFields(
			errors.New("invalid type length for fixed length byte array column"),
			errors.Fields{
				"type-length": typeLength,
			})
	}

	return &Column{
		name:       name,
		typ:        format.Type_FIXED_LEN_BYTE_ARRAY,
		typeLength: typeLength,
		maxR:       maxRepetitionLevel,
		maxD:       maxDefinitionLevel,
	}, nil
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Type returns the physical type of the column values.
func (c *Column) Type() format.Type {
	return c.typ
}

// TypeLength returns the value length in bytes for fixed length byte array
// columns, zero otherwise.
func (c *Column) TypeLength() int {
	return c.typeLength
}

// MaxDefinitionLevel returns the maximum definition level for this column.
func (c *Column) MaxDefinitionLevel() uint16 {
	return c.maxD
}

// MaxRepetitionLevel returns the maximum repetition level for this column.
func (c *Column) MaxRepetitionLevel() uint16 {
	return c.maxR
}
