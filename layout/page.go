// Package layout implements the page-level decode path of a single parquet
// column: it pulls pages from a PageSource, enforces the page sequencing
// protocol, and exposes the decoded column through ColumnReader.
package layout

import (
	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/format"
)

const (
	// ErrProtocolViolation marks a page stream that breaks the column
	// sequencing rules: more than one dictionary page, a dictionary page
	// after data pages, or a dictionary encoded data page with no
	// dictionary page before it.
	ErrProtocolViolation = errors.Error("page sequencing protocol violation")

	// ErrUnsupportedEncoding marks a page that declares an encoding this
	// reader has no decoder for.
	ErrUnsupportedEncoding = errors.Error("unsupported encoding")
)

// Page is one element of a column page stream, as produced by the container
// layer: a dictionary page or a data page, header fields already
// deserialized, page body still in its encoded (and possibly compressed)
// form.
type Page interface {
	isPage()
}

// PageSource supplies the pages of one column chunk in file order.
// NextPage returns io.EOF when the stream is exhausted.
type PageSource interface {
	NextPage() (Page, error)
}

// DictionaryPage carries the plain-encoded dictionary values for the data
// pages that follow it.
type DictionaryPage struct {
	NumValues        int32
	Encoding         format.Encoding
	Codec            format.CompressionCodec
	UncompressedSize int32
	Data             []byte
}

func (p *DictionaryPage) isPage() {}

// DataPageV1 is a v1 data page: repetition levels, definition levels and
// values are packed in one block, compressed as a whole. The level streams
// are length-prefixed.
type DataPageV1 struct {
	NumValues               int32
	Encoding                format.Encoding
	DefinitionLevelEncoding format.Encoding
	RepetitionLevelEncoding format.Encoding
	Codec                   format.CompressionCodec
	UncompressedSize        int32
	Data                    []byte
}

func (p *DataPageV1) isPage() {}

// DataPageV2 is a v2 data page: the level streams are never compressed and
// their byte lengths live in the header, so Data starts with
// RepetitionLevelsByteLength bytes of repetition levels, then
// DefinitionLevelsByteLength bytes of definition levels, then the values
// block. Only the values block is compressed, and only when IsCompressed is
// set. UncompressedSize covers the values block alone.
type DataPageV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   format.Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               bool
	Codec                      format.CompressionCodec
	UncompressedSize           int32
	Data                       []byte
}

func (p *DataPageV2) isPage() {}
