package layout

import (
	"bytes"
	"io"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexbee-net/parquet-column/encoding"
	"github.com/hexbee-net/parquet-column/format"
	"github.com/hexbee-net/parquet-column/schema"
	"github.com/hexbee-net/parquet-column/types"
)

// fakePageSource serves a fixed page list in order.
type fakePageSource struct {
	pages []Page
	pos   int
}

func (s *fakePageSource) NextPage() (Page, error) {
	if s.pos >= len(s.pages) {
		return nil, io.EOF
	}

	p := s.pages[s.pos]
	s.pos++

	return p, nil
}

func sourceOf(pages ...Page) *fakePageSource {
	return &fakePageSource{pages: pages}
}

// Encoding helpers ////////////////////////////////////////////////////////////

func levelsToInt32(levels []uint16) []int32 {
	out := make([]int32, len(levels))
	for i := range levels {
		out[i] = int32(levels[i])
	}

	return out
}

// encodeLevelsV1 encodes one level stream as it appears in a v1 page: RLE
// data behind a little-endian uint32 length prefix.
func encodeLevelsV1(t *testing.T, max uint16, levels []uint16) []byte {
	t.Helper()

	if max == 0 {
		return nil
	}

	var buf bytes.Buffer

	enc := encoding.NewHybridEncoder(bits.Len16(max))
	require.NoError(t, enc.InitSize(&buf))
	require.NoError(t, enc.Encode(levelsToInt32(levels)))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

// encodeLevelsV2 encodes one level stream as it appears in a v2 page: raw
// RLE data, byte length carried by the page header instead of a prefix.
func encodeLevelsV2(t *testing.T, max uint16, levels []uint16) []byte {
	t.Helper()

	if max == 0 {
		return nil
	}

	var buf bytes.Buffer

	enc := encoding.NewHybridEncoder(bits.Len16(max))
	require.NoError(t, enc.Init(&buf))
	require.NoError(t, enc.Encode(levelsToInt32(levels)))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func encodeValues[T types.Value](t *testing.T, enc types.ValuesEncoder[T], values []T) []byte {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, enc.Init(&buf))
	require.NoError(t, enc.EncodeValues(values))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func compressBlock(t *testing.T, codec format.CompressionCodec, raw []byte) []byte {
	t.Helper()

	c, ok := DefaultCompressors()[codec]
	require.True(t, ok)

	out, err := c.CompressBlock(raw)
	require.NoError(t, err)

	return out
}

// Dictionary helpers //////////////////////////////////////////////////////////

// int32Dict builds a dictionary from the order of first appearance and maps
// page values to their keys.
type int32Dict struct {
	values []int32
	index  map[int32]int32
}

func newInt32Dict() *int32Dict {
	return &int32Dict{index: map[int32]int32{}}
}

func (d *int32Dict) keys(values []int32) []int32 {
	keys := make([]int32, len(values))

	for i, v := range values {
		k, ok := d.index[v]
		if !ok {
			k = int32(len(d.values))
			d.values = append(d.values, v)
			d.index[v] = k
		}

		keys[i] = k
	}

	return keys
}

func (d *int32Dict) bitWidth() int {
	return bits.Len(uint(len(d.values)))
}

// encodeDictKeys lays out a dictionary encoded values block: the key bit
// width byte followed by the RLE/bit-packed keys.
func encodeDictKeys(t *testing.T, bitWidth int, keys []int32) []byte {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, buf.WriteByte(byte(bitWidth)))

	enc := encoding.NewHybridEncoder(bitWidth)
	require.NoError(t, enc.Init(&buf))
	require.NoError(t, enc.Encode(keys))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

// Page builders ///////////////////////////////////////////////////////////////

type pageMaker struct {
	col   *schema.Column
	codec format.CompressionCodec
}

func newPageMaker(col *schema.Column, codec format.CompressionCodec) *pageMaker {
	return &pageMaker{col: col, codec: codec}
}

func (m *pageMaker) dictionaryPage(t *testing.T, enc format.Encoding, numValues int32, valueData []byte) *DictionaryPage {
	t.Helper()

	return &DictionaryPage{
		NumValues:        numValues,
		Encoding:         enc,
		Codec:            m.codec,
		UncompressedSize: int32(len(valueData)),
		Data:             compressBlock(t, m.codec, valueData),
	}
}

func (m *pageMaker) dataPageV1(t *testing.T, enc format.Encoding, defLevels, repLevels []uint16, numValues int, valueData []byte) *DataPageV1 {
	t.Helper()

	var raw bytes.Buffer

	raw.Write(encodeLevelsV1(t, m.col.MaxRepetitionLevel(), repLevels))
	raw.Write(encodeLevelsV1(t, m.col.MaxDefinitionLevel(), defLevels))
	raw.Write(valueData)

	return &DataPageV1{
		NumValues:               int32(numValues),
		Encoding:                enc,
		DefinitionLevelEncoding: format.Encoding_RLE,
		RepetitionLevelEncoding: format.Encoding_RLE,
		Codec:                   m.codec,
		UncompressedSize:        int32(raw.Len()),
		Data:                    compressBlock(t, m.codec, raw.Bytes()),
	}
}

func (m *pageMaker) dataPageV2(t *testing.T, enc format.Encoding, defLevels, repLevels []uint16, numValues int, valueData []byte) *DataPageV2 {
	t.Helper()

	repData := encodeLevelsV2(t, m.col.MaxRepetitionLevel(), repLevels)
	defData := encodeLevelsV2(t, m.col.MaxDefinitionLevel(), defLevels)

	compressed := m.codec != format.CompressionCodec_UNCOMPRESSED

	values := valueData
	if compressed {
		values = compressBlock(t, m.codec, valueData)
	}

	var data bytes.Buffer

	data.Write(repData)
	data.Write(defData)
	data.Write(values)

	nulls := 0

	for _, d := range defLevels {
		if d != m.col.MaxDefinitionLevel() {
			nulls++
		}
	}

	return &DataPageV2{
		NumValues:                  int32(numValues),
		NumNulls:                   int32(nulls),
		NumRows:                    int32(numValues),
		Encoding:                   enc,
		DefinitionLevelsByteLength: int32(len(defData)),
		RepetitionLevelsByteLength: int32(len(repData)),
		IsCompressed:               compressed,
		Codec:                      m.codec,
		UncompressedSize:           int32(len(valueData)),
		Data:                       data.Bytes(),
	}
}

// Column fixtures /////////////////////////////////////////////////////////////

// int32Fixture is a generated int32 column: the level slots of every page
// plus the flattened present values, kept for comparison with decode output.
type int32Fixture struct {
	col   *schema.Column
	pages []Page

	defLevels []uint16
	repLevels []uint16
	values    []int32
}

func (f *int32Fixture) totalLevels() int {
	return len(f.defLevels)
}

// levelPattern produces a deterministic definition level sequence cycling
// through the given choices.
func levelPattern(choices []uint16, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = choices[i%len(choices)]
	}

	return out
}

type fixtureOptions struct {
	pageCount  int
	levelCount int
	defChoices []uint16 // nil for required columns
	repChoices []uint16 // nil when there is no repetition
	dict       bool
	pageV2     bool
	codec      format.CompressionCodec
}

func makeInt32Fixture(t *testing.T, col *schema.Column, opt fixtureOptions) *int32Fixture {
	t.Helper()

	f := &int32Fixture{col: col}
	maker := newPageMaker(col, opt.codec)

	var dict *int32Dict
	if opt.dict {
		dict = newInt32Dict()
	}

	next := int32(0)

	type pageLevels struct {
		def, rep []uint16
		values   []int32
	}

	pages := make([]pageLevels, opt.pageCount)

	for p := range pages {
		def := levelPattern([]uint16{0}, opt.levelCount)
		if opt.defChoices != nil {
			def = levelPattern(opt.defChoices, opt.levelCount)
		}

		var rep []uint16
		if opt.repChoices != nil {
			rep = levelPattern(opt.repChoices, opt.levelCount)
			rep[0] = 0 // a page starts at a record boundary
		}

		var values []int32

		for _, d := range def {
			if d == col.MaxDefinitionLevel() {
				values = append(values, next)
				next++
			}
		}

		pages[p] = pageLevels{def: def, rep: rep, values: values}

		f.defLevels = append(f.defLevels, def...)
		f.repLevels = append(f.repLevels, rep...)
		f.values = append(f.values, values...)
	}

	if opt.dict {
		// Keys have to be assigned before the dictionary page is built, so
		// every page's values are interned first.
		keys := make([][]int32, len(pages))
		for p := range pages {
			keys[p] = dict.keys(pages[p].values)
		}

		dictData := encodeValues[int32](t, &types.Int32PlainEncoder{}, dict.values)
		f.pages = append(f.pages, maker.dictionaryPage(t, format.Encoding_PLAIN_DICTIONARY, int32(len(dict.values)), dictData))

		for p := range pages {
			valueData := encodeDictKeys(t, dict.bitWidth(), keys[p])
			f.pages = append(f.pages, makeDataPage(t, maker, opt.pageV2, format.Encoding_RLE_DICTIONARY, pages[p].def, pages[p].rep, opt.levelCount, valueData))
		}

		return f
	}

	for p := range pages {
		valueData := encodeValues[int32](t, &types.Int32PlainEncoder{}, pages[p].values)
		f.pages = append(f.pages, makeDataPage(t, maker, opt.pageV2, format.Encoding_PLAIN, pages[p].def, pages[p].rep, opt.levelCount, valueData))
	}

	return f
}

func makeDataPage(t *testing.T, maker *pageMaker, v2 bool, enc format.Encoding, def, rep []uint16, numValues int, valueData []byte) Page {
	t.Helper()

	if v2 {
		return maker.dataPageV2(t, enc, def, rep, numValues, valueData)
	}

	return maker.dataPageV1(t, enc, def, rep, numValues, valueData)
}

func (f *int32Fixture) reader(t *testing.T) *ColumnReader[int32] {
	t.Helper()

	r, err := NewInt32ColumnReader(f.col, sourceOf(f.pages...), nil)
	require.NoError(t, err)

	return r
}

func requiredInt32Column(t *testing.T) *schema.Column {
	t.Helper()

	col, err := schema.NewColumn("c", format.Type_INT32, 0, 0)
	require.NoError(t, err)

	return col
}

func optionalInt32Column(t *testing.T, maxD uint16) *schema.Column {
	t.Helper()

	col, err := schema.NewColumn("c", format.Type_INT32, maxD, 0)
	require.NoError(t, err)

	return col
}

func repeatedInt32Column(t *testing.T, maxD, maxR uint16) *schema.Column {
	t.Helper()

	col, err := schema.NewColumn("c", format.Type_INT32, maxD, maxR)
	require.NoError(t, err)

	return col
}
