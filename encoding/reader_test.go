package encoding

import (
	"testing"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	words := endian.NativeWordCodec()
	data := make([]byte, 1+12)
	data[0] = byte(format.TagVector3)
	words.PutF32(data[1:], 1)
	words.PutF32(data[5:], 2)
	words.PutI32(data[9:], 3)

	r := NewReader(words, data, 1)
	require.Equal(t, 12, r.Remaining())

	var pair [2]float32
	require.NoError(t, r.F32s(pair[:]))
	require.Equal(t, [2]float32{1, 2}, pair)
	require.Equal(t, 9, r.Pos())

	i, err := r.I32()
	require.NoError(t, err)
	require.Equal(t, int32(3), i)
	require.Equal(t, 0, r.Remaining())

	_, err = r.F32()
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}

func TestReader_IndependentCursors(t *testing.T) {
	words := endian.NativeWordCodec()
	data := make([]byte, 8)
	words.PutI32(data, 10)
	words.PutI32(data[4:], 20)

	a := NewReader(words, data, 0)
	b := NewReader(words, data, 0)

	va, err := a.I32()
	require.NoError(t, err)
	va2, err := a.I32()
	require.NoError(t, err)
	vb, err := b.I32()
	require.NoError(t, err)

	require.Equal(t, int32(10), va)
	require.Equal(t, int32(20), va2)
	require.Equal(t, int32(10), vb)
}

func TestCheckTag(t *testing.T) {
	payload, err := checkTag([]byte{byte(format.TagColor), 9}, format.TagColor)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, payload)

	_, err = checkTag([]byte{byte(format.TagColor)}, format.TagQuaternion)
	require.ErrorIs(t, err, errs.ErrTagMismatch)

	_, err = checkTag(nil, format.TagColor)
	require.ErrorIs(t, err, errs.ErrMalformedBlob)
}
