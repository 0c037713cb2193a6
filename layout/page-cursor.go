package layout

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"

	"github.com/hexbee-net/parquet-column/format"
	"github.com/hexbee-net/parquet-column/schema"
	"github.com/hexbee-net/parquet-column/types"
)

type getValueDecoderFn[T types.Value] func(pageEncoding format.Encoding, dict *types.Dictionary[T]) (types.ValuesDecoder[T], error)

type newPlainDecoderFn[T types.Value] func() types.ValuesDecoder[T]

// pageCursor walks the page stream of one column chunk. It owns the
// dictionary state machine: at most one dictionary page per chunk, and only
// before the first data page. Every data page gets fresh level and value
// decoders initialized over its decompressed block.
type pageCursor[T types.Value] struct {
	col            *schema.Column
	pages          PageSource
	blocks         blockReader
	valueDecoderFn getValueDecoderFn[T]
	dictDecoderFn  newPlainDecoderFn[T]

	dict     *types.Dictionary[T]
	dataSeen bool

	definitionDecoder *levelDecoder
	repetitionDecoder *levelDecoder
	values            types.ValuesDecoder[T]
	remaining         int
}

// advance makes sure the cursor sits on a data page with undecoded levels
// left. It pulls and validates pages as needed, consuming dictionary pages
// and empty data pages on the way. Returns false on a clean end of stream.
func (c *pageCursor[T]) advance() (bool, error) {
	for c.remaining == 0 {
		page, err := c.pages.NextPage()
		if err == io.EOF {
			return false, nil
		}

		if err != nil {
			return false, errors.WithStack(err)
		}

		switch p := page.(type) {
		case *DictionaryPage:
			err = c.readDictionaryPage(p)
		case *DataPageV1:
			err = c.openDataPageV1(p)
		case *DataPageV2:
			err = c.openDataPageV2(p)
		default:
			err = errors.WithFields(
				errors.New("unknown page type"),
				errors.Fields{
					"page": page,
				})
		}

		if err != nil {
			return false, err
		}
	}

	return true, nil
}

func (c *pageCursor[T]) readDictionaryPage(p *DictionaryPage) error {
	if c.dict != nil {
		return errors.WithFields(
			errors.WithStack(ErrProtocolViolation),
			errors.Fields{
				"reason": "second dictionary page in column chunk",
			})
	}

	if c.dataSeen {
		return errors.WithFields(
			errors.WithStack(ErrProtocolViolation),
			errors.Fields{
				"reason": "dictionary page after first data page",
			})
	}

	if p.Encoding != format.Encoding_PLAIN && p.Encoding != format.Encoding_PLAIN_DICTIONARY {
		return errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"page":     "DICTIONARY_PAGE",
				"encoding": p.Encoding.String(),
			})
	}

	dataReader, err := c.blocks.pageBlock(p.Data, p.Codec, p.UncompressedSize)
	if err != nil {
		return errors.WithStack(err)
	}

	dict, err := types.NewDictionary(p.NumValues, dataReader, c.dictDecoderFn())
	if err != nil {
		return errors.Wrap(err, "failed to read dictionary page")
	}

	c.dict = dict

	return nil
}

func (c *pageCursor[T]) openDataPageV1(p *DataPageV1) error {
	if p.NumValues < 0 {
		return errors.WithFields(
			errors.New("negative NumValues in DATA_PAGE"),
			errors.Fields{
				"num-values": p.NumValues,
			})
	}

	c.dataSeen = true

	values, err := c.valueDecoderFn(p.Encoding, c.dict)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.col.MaxRepetitionLevel() > 0 && p.RepetitionLevelEncoding != format.Encoding_RLE {
		return errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"levels":   "repetition",
				"encoding": p.RepetitionLevelEncoding.String(),
			})
	}

	if c.col.MaxDefinitionLevel() > 0 && p.DefinitionLevelEncoding != format.Encoding_RLE {
		return errors.WithFields(
			errors.WithStack(ErrUnsupportedEncoding),
			errors.Fields{
				"levels":   "definition",
				"encoding": p.DefinitionLevelEncoding.String(),
			})
	}

	dataReader, err := c.blocks.pageBlock(p.Data, p.Codec, p.UncompressedSize)
	if err != nil {
		return errors.WithStack(err)
	}

	c.repetitionDecoder = newLevelDecoder(c.col.MaxRepetitionLevel())
	if err := c.repetitionDecoder.initSized(dataReader); err != nil {
		return errors.Wrap(err, "failed to initialize repetition decoder")
	}

	c.definitionDecoder = newLevelDecoder(c.col.MaxDefinitionLevel())
	if err := c.definitionDecoder.initSized(dataReader); err != nil {
		return errors.Wrap(err, "failed to initialize definition decoder")
	}

	if err := values.Init(dataReader); err != nil {
		return errors.WithStack(err)
	}

	c.values = values
	c.remaining = int(p.NumValues)

	return nil
}

func (c *pageCursor[T]) openDataPageV2(p *DataPageV2) error {
	if p.NumValues < 0 {
		return errors.WithFields(
			errors.New("negative NumValues in DATA_PAGE_V2"),
			errors.Fields{
				"num-values": p.NumValues,
			})
	}

	repLen := int(p.RepetitionLevelsByteLength)
	defLen := int(p.DefinitionLevelsByteLength)

	if repLen < 0 || defLen < 0 || repLen+defLen > len(p.Data) {
		return errors.WithFields(
			errors.New("invalid level byte lengths in DATA_PAGE_V2"),
			errors.Fields{
				"repetition-levels-byte-length": p.RepetitionLevelsByteLength,
				"definition-levels-byte-length": p.DefinitionLevelsByteLength,
				"page-size":                     len(p.Data),
			})
	}

	c.dataSeen = true

	values, err := c.valueDecoderFn(p.Encoding, c.dict)
	if err != nil {
		return errors.WithStack(err)
	}

	// Level streams are never compressed in page v2.
	c.repetitionDecoder = newLevelDecoder(c.col.MaxRepetitionLevel())
	if err := c.repetitionDecoder.initRaw(p.Data[:repLen]); err != nil {
		return errors.Wrap(err, "failed to initialize repetition decoder")
	}

	c.definitionDecoder = newLevelDecoder(c.col.MaxDefinitionLevel())
	if err := c.definitionDecoder.initRaw(p.Data[repLen : repLen+defLen]); err != nil {
		return errors.Wrap(err, "failed to initialize definition decoder")
	}

	var dataReader io.Reader
	if p.IsCompressed {
		dataReader, err = c.blocks.pageBlock(p.Data[repLen+defLen:], p.Codec, p.UncompressedSize)
		if err != nil {
			return errors.WithStack(err)
		}
	} else {
		dataReader = bytes.NewReader(p.Data[repLen+defLen:])
	}

	if err := values.Init(dataReader); err != nil {
		return errors.WithStack(err)
	}

	c.values = values
	c.remaining = int(p.NumValues)

	return nil
}
