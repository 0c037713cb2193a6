package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

// Int32 ///////////////////////////////////////////////////////////////////////

func TestDeltaBinaryPackDecoder32(t *testing.T) {
	t.Run("Init", TestDeltaBinaryPackDecoder32_Init)
	t.Run("Init_NilReader", TestDeltaBinaryPackDecoder32_Init_NilReader)
	t.Run("Init_EmptyBuffer", TestDeltaBinaryPackDecoder32_Init_EmptyBuffer)
	t.Run("Init_InvalidBlockSize", TestDeltaBinaryPackDecoder32_Init_InvalidBlockSize)
	t.Run("Init_InvalidMiniblockCount", TestDeltaBinaryPackDecoder32_Init_InvalidMiniblockCount)
	t.Run("Init_ReadFail", TestDeltaBinaryPackDecoder32_Init_ReadFail)
	t.Run("InitSize", TestDeltaBinaryPackDecoder32_InitSize)
	t.Run("Next", TestDeltaBinaryPackDecoder32_Next)
	t.Run("Next_NoValues", TestDeltaBinaryPackDecoder32_Next_NoValues)
	t.Run("Skip", TestDeltaBinaryPackDecoder32_Skip)
	t.Run("Roundtrip", TestDeltaBinaryPackDecoder32_Roundtrip)
}

func TestDeltaBinaryPackDecoder32_Init(t *testing.T) {
	t.Parallel()

	reader := bytes.NewReader([]byte{128, 1, 4, 0, 0})

	decoder := DeltaBinaryPackDecoder32{}
	err := decoder.Init(reader)

	assert.NoError(t, err)
}

func TestDeltaBinaryPackDecoder32_Init_NilReader(t *testing.T) {
	t.Parallel()

	decoder := DeltaBinaryPackDecoder32{}

	err := decoder.Init(nil)

	assert.EqualError(t, errors.Cause(err), errNilReader.Error())
}

func TestDeltaBinaryPackDecoder32_Init_EmptyBuffer(t *testing.T) {
	t.Parallel()

	decoder := DeltaBinaryPackDecoder32{}
	err := decoder.Init(bytes.NewBuffer(nil))

	assert.EqualError(t, errors.Cause(err), io.EOF.Error())
}

func TestDeltaBinaryPackDecoder32_Init_InvalidBlockSize(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		{0, 1, 4, 0, 0},
		{127, 1, 4, 0, 0},
		{129, 1, 4, 0, 0},
	}

	for _, input := range inputs {
		reader := bytes.NewReader(input)

		decoder := DeltaBinaryPackDecoder32{}
		err := decoder.Init(reader)

		assert.EqualError(t, errors.Cause(err), errInvalidBlockSize.Error())
	}
}

func TestDeltaBinaryPackDecoder32_Init_InvalidMiniblockCount(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		{128, 1, 0, 0, 0},   // 128 / 0 / 0
		{128, 1, 3, 0, 0},   // 128 / 3 / 0
		{128, 1, 128, 2, 0}, // 128 / 256 / 0
	}

	for _, input := range inputs {
		reader := bytes.NewReader(input)

		decoder := DeltaBinaryPackDecoder32{}
		err := decoder.Init(reader)

		assert.EqualError(t, errors.Cause(err), errInvalidMiniblockCount.Error())
	}
}

func TestDeltaBinaryPackDecoder32_Init_ReadFail(t *testing.T) {
	t.Parallel()

	decoder := DeltaBinaryPackDecoder32{}
	err := decoder.Init(failingReader{err: errors.New("read failed")})

	assert.EqualError(t, errors.Cause(err), "read failed")
}

func TestDeltaBinaryPackDecoder32_InitSize(t *testing.T) {
	t.Parallel()

	reader := bytes.NewReader([]byte{128, 1, 4, 0, 0})

	decoder := DeltaBinaryPackDecoder32{}
	err := decoder.InitSize(reader)

	assert.NoError(t, err)
}

func TestDeltaBinaryPackDecoder32_Next(t *testing.T) {
	t.Parallel()

	values := []int32{7, 5, 3, 1, 2, 3, 4, 5}

	reader := bytes.NewReader([]byte{
		128, 1, 4, 8, 14,
		3, 2, 0, 0, 0, 192, 63, 0, 0, 0, 0, 0, 0,
	})

	decoder := DeltaBinaryPackDecoder32{}
	require.NoError(t, decoder.Init(reader))

	for _, v := range values {
		r, err := decoder.Next()

		require.NoError(t, err)
		assert.Equal(t, v, r)
	}
}

func TestDeltaBinaryPackDecoder32_Next_NoValues(t *testing.T) {
	t.Parallel()

	reader := bytes.NewReader([]byte{128, 1, 4, 0, 0})

	decoder := DeltaBinaryPackDecoder32{}
	require.NoError(t, decoder.Init(reader))

	v, err := decoder.Next()

	assert.EqualError(t, errors.Cause(err), io.EOF.Error())
	assert.Equal(t, int32(0), v)
}

func TestDeltaBinaryPackDecoder32_Skip(t *testing.T) {
	t.Parallel()

	values := []int32{7, 5, 3, 1, 2, 3, 4, 5}

	reader := bytes.NewReader([]byte{
		128, 1, 4, 8, 14,
		3, 2, 0, 0, 0, 192, 63, 0, 0, 0, 0, 0, 0,
	})

	decoder := DeltaBinaryPackDecoder32{}
	require.NoError(t, decoder.Init(reader))

	n, err := decoder.Skip(3)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	for _, v := range values[3:] {
		r, err := decoder.Next()

		require.NoError(t, err)
		assert.Equal(t, v, r)
	}

	// skipping past the end reports the short count
	n, err = decoder.Skip(10)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeltaBinaryPackDecoder32_Roundtrip(t *testing.T) {
	t.Parallel()

	values := make([]int32, 1000)
	for i := range values {
		values[i] = int32(i*i) - 3*int32(i)
	}

	buf := &bytes.Buffer{}

	encoder := NewDeltaBinaryPackEncoder32(128, 4)
	require.NoError(t, encoder.Init(buf))

	for _, v := range values {
		require.NoError(t, encoder.AddInt32(v))
	}
	require.NoError(t, encoder.Close())

	decoder := DeltaBinaryPackDecoder32{}
	require.NoError(t, decoder.Init(bytes.NewReader(buf.Bytes())))

	for i, v := range values {
		r, err := decoder.Next()

		require.NoError(t, err, "value %d", i)
		require.Equal(t, v, r, "value %d", i)
	}
}

// Int64 ///////////////////////////////////////////////////////////////////////

func TestDeltaBinaryPackDecoder64(t *testing.T) {
	t.Run("Init", TestDeltaBinaryPackDecoder64_Init)
	t.Run("Init_NilReader", TestDeltaBinaryPackDecoder64_Init_NilReader)
	t.Run("Init_EmptyBuffer", TestDeltaBinaryPackDecoder64_Init_EmptyBuffer)
	t.Run("Skip", TestDeltaBinaryPackDecoder64_Skip)
	t.Run("Roundtrip", TestDeltaBinaryPackDecoder64_Roundtrip)
}

func TestDeltaBinaryPackDecoder64_Init(t *testing.T) {
	t.Parallel()

	reader := bytes.NewReader([]byte{128, 1, 4, 0, 0})

	decoder := DeltaBinaryPackDecoder64{}
	err := decoder.Init(reader)

	assert.NoError(t, err)
}

func TestDeltaBinaryPackDecoder64_Init_NilReader(t *testing.T) {
	t.Parallel()

	decoder := DeltaBinaryPackDecoder64{}

	err := decoder.Init(nil)

	assert.EqualError(t, errors.Cause(err), errNilReader.Error())
}

func TestDeltaBinaryPackDecoder64_Init_EmptyBuffer(t *testing.T) {
	t.Parallel()

	decoder := DeltaBinaryPackDecoder64{}
	err := decoder.Init(bytes.NewBuffer(nil))

	assert.EqualError(t, errors.Cause(err), io.EOF.Error())
}

func TestDeltaBinaryPackDecoder64_Skip(t *testing.T) {
	t.Parallel()

	values := make([]int64, 500)
	for i := range values {
		values[i] = int64(i) * 1024
	}

	buf := &bytes.Buffer{}

	encoder := NewDeltaBinaryPackEncoder64(128, 4)
	require.NoError(t, encoder.Init(buf))

	for _, v := range values {
		require.NoError(t, encoder.AddInt64(v))
	}
	require.NoError(t, encoder.Close())

	decoder := DeltaBinaryPackDecoder64{}
	require.NoError(t, decoder.Init(bytes.NewReader(buf.Bytes())))

	n, err := decoder.Skip(200)
	require.NoError(t, err)
	require.Equal(t, 200, n)

	r, err := decoder.Next()
	require.NoError(t, err)
	assert.Equal(t, values[200], r)
}

func TestDeltaBinaryPackDecoder64_Roundtrip(t *testing.T) {
	t.Parallel()

	values := make([]int64, 1000)
	for i := range values {
		values[i] = int64(i*i*i) - 100*int64(i)
	}

	buf := &bytes.Buffer{}

	encoder := NewDeltaBinaryPackEncoder64(128, 4)
	require.NoError(t, encoder.Init(buf))

	for _, v := range values {
		require.NoError(t, encoder.AddInt64(v))
	}
	require.NoError(t, encoder.Close())

	decoder := DeltaBinaryPackDecoder64{}
	require.NoError(t, decoder.Init(bytes.NewReader(buf.Bytes())))

	for i, v := range values {
		r, err := decoder.Next()

		require.NoError(t, err, "value %d", i)
		require.Equal(t, v, r, "value %d", i)
	}
}
