package typedkv

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/typedkv/discovery"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/value"
)

func TestClassify(t *testing.T) {
	c, st := newTestCodec(t)

	require.NoError(t, c.Encode("score", format.TypeInt, int32(42)))
	require.NoError(t, c.Encode("big", format.TypeLong, int64(1)<<40))
	require.NoError(t, c.Encode("tint", format.TypeColor, value.Color{R: 1, A: 1}))
	require.NoError(t, c.Encode("names", format.TypeStringArray, []string{"a", "b"}))
	st.SetString("foreign", "%%% not ours %%%")

	got := c.Classify(st)

	types := make(map[string]format.LogicalType, len(got))
	for _, d := range got {
		types[d.Key] = d.Type
	}

	require.Equal(t, map[string]format.LogicalType{
		"big":     format.TypeLong,
		"foreign": format.TypeString,
		"names":   format.TypeStringArray,
		"score":   format.TypeInt,
		"tint":    format.TypeColor,
	}, types)
	require.Len(t, got, 5)
}

func TestClassify_ListProvider(t *testing.T) {
	c, _ := newTestCodec(t)
	c.SetBool("flag", true)

	got := c.Classify(discovery.List{"flag", "flag", "ghost"})
	require.Len(t, got, 2)
	require.Equal(t, "flag", got[0].Key)
	require.Equal(t, format.TypeBool, got[0].Type)
	require.Equal(t, format.TypeString, got[1].Type)
	require.False(t, got[1].Native.Present())
}

func TestImport(t *testing.T) {
	c, st := newTestCodec(t)

	err := c.Import(map[string]Literal{
		"score": {Type: format.TypeInt, Text: "42"},
		"pos":   {Type: format.TypeVector3, Text: "1,2,3"},
		"bad1":  {Type: format.TypeInt, Text: "x"},
		"bad2":  {Type: format.TypeColor, Text: "1,2"},
		"ok":    {Type: format.TypeBoolArray, Text: "[true]"},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidLiteral)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)

	require.Equal(t, int32(42), st.GetInt32("score", 0))
	require.Equal(t, value.Vector3{X: 1, Y: 2, Z: 3}, c.GetVector3("pos", value.Vector3{}))
	require.False(t, st.HasKey("bad1"))
	require.False(t, st.HasKey("bad2"))
	require.True(t, st.HasKey("ok"))

	require.NoError(t, c.Import(map[string]Literal{"n": {Type: format.TypeLong, Text: "5"}}))
	require.NoError(t, c.Import(nil))
}
