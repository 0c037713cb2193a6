package encoding

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestPackedArray(t *testing.T) {
	t.Run("Reset", TestPackedArray_Reset)
	t.Run("Reset_InvalidBitWidth", TestPackedArray_Reset_InvalidBitWidth)
	t.Run("AppendSingle_Once", TestPackedArray_AppendSingle_Once)
	t.Run("AppendSingle_Multiple", TestPackedArray_AppendSingle_Multiple)
	t.Run("AppendArray", TestPackedArray_AppendArray)
	t.Run("AppendArray_DifferentBitWidths", TestPackedArray_AppendArray_DifferentBitWidths)
	t.Run("AppendArray_NilSource", TestPackedArray_AppendArray_NilSource)
	t.Run("At_ZeroBitWidth", TestPackedArray_At_ZeroBitWidth)
	t.Run("At_OutOfRange", TestPackedArray_At_OutOfRange)
	t.Run("Write", TestPackedArray_Write)
}

func TestPackedArray_Reset(t *testing.T) {
	t.Parallel()

	a := PackedArray{}

	err := a.Reset(32)

	assert.NoError(t, err)
}

func TestPackedArray_Reset_InvalidBitWidth(t *testing.T) {
	t.Parallel()

	a := PackedArray{}

	err := a.Reset(48)

	assert.EqualError(t, errors.Cause(err), errInvalidBitWidth.Error())
}

func TestPackedArray_AppendSingle_Once(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(3))

	a.AppendSingle(5)

	require.Equal(t, 1, a.Count())

	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestPackedArray_AppendSingle_Multiple(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(4))

	for i := int32(0); i < 100; i++ {
		a.AppendSingle(i % 16)
	}

	require.Equal(t, 100, a.Count())

	for i := 0; i < 100; i++ {
		v, err := a.At(i)

		require.NoError(t, err)
		assert.Equal(t, int32(i%16), v)
	}
}

func TestPackedArray_AppendArray(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(2))

	b := PackedArray{}
	require.NoError(t, b.Reset(2))

	for i := int32(0); i < 10; i++ {
		a.AppendSingle(i % 4)
		b.AppendSingle((i + 1) % 4)
	}

	require.NoError(t, a.AppendArray(&b))
	require.Equal(t, 20, a.Count())

	for i := 0; i < 10; i++ {
		v, err := a.At(10 + i)

		require.NoError(t, err)
		assert.Equal(t, int32((i+1)%4), v)
	}
}

func TestPackedArray_AppendArray_DifferentBitWidths(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(2))

	b := PackedArray{}
	require.NoError(t, b.Reset(3))

	err := a.AppendArray(&b)

	assert.Error(t, err)
}

func TestPackedArray_AppendArray_NilSource(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(2))

	err := a.AppendArray(nil)

	assert.Error(t, err)
}

func TestPackedArray_At_ZeroBitWidth(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(0))

	a.AppendSingle(0)

	v, err := a.At(0)

	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
}

func TestPackedArray_At_OutOfRange(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(2))

	a.AppendSingle(1)

	_, err := a.At(1)

	assert.EqualError(t, errors.Cause(err), errOutOfRange.Error())
}

func TestPackedArray_Write(t *testing.T) {
	t.Parallel()

	a := PackedArray{}
	require.NoError(t, a.Reset(1))

	for i := 0; i < 8; i++ {
		a.AppendSingle(int32(i % 2))
	}
	a.Flush()

	buf := &bytes.Buffer{}
	require.NoError(t, a.Write(buf))

	assert.Equal(t, []byte{0xaa}, buf.Bytes())
}
