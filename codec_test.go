package typedkv

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/typedkv/encoding"
	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/store"
	"github.com/arloliu/typedkv/value"
)

func newTestCodec(t *testing.T, opts ...Option) (*Codec, *store.MemoryStore) {
	t.Helper()

	st := store.NewMemoryStore()
	c, err := New(st, opts...)
	require.NoError(t, err)

	return c, st
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(store.NewMemoryStore(), WithQuaternionTolerance(-1))
	require.Error(t, err)

	_, err = New(store.NewMemoryStore(), WithQuaternionTolerance(math.NaN()))
	require.Error(t, err)

	c, err := New(store.NewMemoryStore(), WithQuaternionTolerance(0.1), WithLogger(nil))
	require.NoError(t, err)
	require.Equal(t, 0.1, c.tolerance)
	require.NotNil(t, c.logger)
}

func TestCodec_RoundTrip(t *testing.T) {
	longText := strings.Repeat("x", encoding.MaxTextLength)

	tests := []struct {
		name string
		typ  format.LogicalType
		in   any
		want any
	}{
		{name: "int", typ: format.TypeInt, in: int32(42), want: int32(42)},
		{name: "int min", typ: format.TypeInt, in: int32(math.MinInt32), want: int32(math.MinInt32)},
		{name: "int max", typ: format.TypeInt, in: int32(math.MaxInt32), want: int32(math.MaxInt32)},
		{name: "int from int", typ: format.TypeInt, in: 7, want: int32(7)},
		{name: "float", typ: format.TypeFloat, in: float32(3.25), want: float32(3.25)},
		{name: "float max", typ: format.TypeFloat, in: float32(math.MaxFloat32), want: float32(math.MaxFloat32)},
		{name: "float from float64", typ: format.TypeFloat, in: 0.5, want: float32(0.5)},
		{name: "string", typ: format.TypeString, in: "héllo", want: "héllo"},
		{name: "empty string", typ: format.TypeString, in: "", want: ""},
		{name: "bool true", typ: format.TypeBool, in: true, want: true},
		{name: "bool false", typ: format.TypeBool, in: false, want: false},
		{name: "long", typ: format.TypeLong, in: int64(1) << 40, want: int64(1) << 40},
		{name: "long min", typ: format.TypeLong, in: int64(math.MinInt64), want: int64(math.MinInt64)},
		{name: "long max", typ: format.TypeLong, in: int64(math.MaxInt64), want: int64(math.MaxInt64)},
		{name: "long minus one", typ: format.TypeLong, in: int64(-1), want: int64(-1)},
		{name: "vector2", typ: format.TypeVector2, in: value.Vector2{X: 1, Y: -2}, want: value.Vector2{X: 1, Y: -2}},
		{name: "vector3", typ: format.TypeVector3, in: value.Vector3{X: 1, Y: 2, Z: 3}, want: value.Vector3{X: 1, Y: 2, Z: 3}},
		{name: "vector3 from slice", typ: format.TypeVector3, in: []float32{4, 5, 6}, want: value.Vector3{X: 4, Y: 5, Z: 6}},
		{name: "identity quaternion", typ: format.TypeQuaternion, in: value.IdentityQuaternion, want: value.IdentityQuaternion},
		{name: "color", typ: format.TypeColor, in: value.Color{R: 1, A: 1}, want: value.Color{R: 1, A: 1}},
		{name: "int array", typ: format.TypeIntArray, in: []int32{math.MinInt32, 0, math.MaxInt32}, want: value.IntArray{math.MinInt32, 0, math.MaxInt32}},
		{name: "empty int array", typ: format.TypeIntArray, in: value.IntArray{}, want: value.IntArray{}},
		{name: "single float array", typ: format.TypeFloatArray, in: value.FloatArray{1.5}, want: value.FloatArray{1.5}},
		{name: "empty float array", typ: format.TypeFloatArray, in: []float32{}, want: value.FloatArray{}},
		{name: "bool array", typ: format.TypeBoolArray, in: []bool{true, false, true, true, false}, want: value.BoolArray{true, false, true, true, false}},
		{name: "empty bool array", typ: format.TypeBoolArray, in: []bool{}, want: value.BoolArray{}},
		{name: "string array", typ: format.TypeStringArray, in: []string{"a", "", "b|c", longText}, want: value.StringArray{"a", "", "b|c", longText}},
		{name: "empty string array", typ: format.TypeStringArray, in: []string{}, want: value.StringArray{}},
		{name: "vector2 array", typ: format.TypeVector2Array, in: []value.Vector2{{X: 1}, {Y: 1}}, want: value.Vector2Array{{X: 1}, {Y: 1}}},
		{name: "vector3 array", typ: format.TypeVector3Array, in: value.Vector3Array{{X: 1, Y: 2, Z: 3}}, want: value.Vector3Array{{X: 1, Y: 2, Z: 3}}},
		{name: "quaternion array", typ: format.TypeQuaternionArray, in: []value.Quaternion{value.IdentityQuaternion}, want: value.QuaternionArray{value.IdentityQuaternion}},
		{name: "color array", typ: format.TypeColorArray, in: []value.Color{{R: 1, A: 1}, {G: 0.5}}, want: value.ColorArray{{R: 1, A: 1}, {G: 0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCodec(t)

			require.NoError(t, c.Encode("key", tt.typ, tt.in))

			got, err := c.Decode("key", tt.typ)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCodec_EndiannessInvariance(t *testing.T) {
	st := store.NewMemoryStore()

	bigHost, err := New(st, WithWordCodec(endian.NewWordCodec(endian.GetBigEndianEngine())))
	require.NoError(t, err)
	littleHost, err := New(st, WithWordCodec(endian.NewWordCodec(endian.GetLittleEndianEngine())))
	require.NoError(t, err)

	require.NoError(t, bigHost.Encode("ints", format.TypeIntArray, []int32{1, -2, math.MaxInt32}))
	require.NoError(t, bigHost.Encode("rot", format.TypeQuaternion, value.Quaternion{X: 0.5, Y: -0.5, Z: 0.5, W: 0.5}))
	require.NoError(t, bigHost.Encode("flags", format.TypeBoolArray, []bool{true, false, true}))

	got, err := littleHost.Decode("ints", format.TypeIntArray)
	require.NoError(t, err)
	require.Equal(t, value.IntArray{1, -2, math.MaxInt32}, got)

	got, err = littleHost.Decode("rot", format.TypeQuaternion)
	require.NoError(t, err)
	require.Equal(t, value.Quaternion{X: 0.5, Y: -0.5, Z: 0.5, W: 0.5}, got)

	got, err = littleHost.Decode("flags", format.TypeBoolArray)
	require.NoError(t, err)
	require.Equal(t, value.BoolArray{true, false, true}, got)

	// both hosts write identical bytes
	stored := st.GetString("ints", "")
	require.NoError(t, littleHost.Encode("ints", format.TypeIntArray, []int32{1, -2, math.MaxInt32}))
	require.Equal(t, stored, st.GetString("ints", ""))
}

func TestCodec_EncodeErrors(t *testing.T) {
	c, st := newTestCodec(t)

	tests := []struct {
		name string
		typ  format.LogicalType
		in   any
		err  error
	}{
		{name: "int from string", typ: format.TypeInt, in: "42", err: errs.ErrTypeMismatch},
		{name: "int overflow", typ: format.TypeInt, in: int64(math.MaxInt32) + 1, err: errs.ErrTypeMismatch},
		{name: "bool from int", typ: format.TypeBool, in: 1, err: errs.ErrTypeMismatch},
		{name: "long from float", typ: format.TypeLong, in: 1.0, err: errs.ErrTypeMismatch},
		{name: "vector2 given vector3", typ: format.TypeVector2, in: value.Vector3{}, err: errs.ErrTypeMismatch},
		{name: "color from short slice", typ: format.TypeColor, in: []float32{1, 2, 3}, err: errs.ErrTypeMismatch},
		{name: "int array given floats", typ: format.TypeIntArray, in: []float32{1}, err: errs.ErrTypeMismatch},
		{name: "string too long", typ: format.TypeStringArray, in: []string{strings.Repeat("y", 256)}, err: errs.ErrTextTooLong},
		{name: "unknown type", typ: format.LogicalType(200), in: 1, err: errs.ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Encode("bad", tt.typ, tt.in)
			require.ErrorIs(t, err, tt.err)
			require.False(t, st.HasKey("bad"))
		})
	}

	_, err := c.Decode("bad", format.LogicalType(200))
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestCodec_SoftFailDefaults(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, st := newTestCodec(t, WithLogger(logger))

	st.SetString("garbage", "not base64 at all!")
	st.SetString("ints", c.arrays.EncodeInts([]int32{1, 2}))

	require.Equal(t, value.FloatArray{}, c.GetArray("garbage", format.TypeFloatArray))
	require.Equal(t, value.StringArray{}, c.GetArray("garbage", format.TypeStringArray))
	// tag mismatch never reinterprets bytes
	require.Equal(t, value.FloatArray{}, c.GetArray("ints", format.TypeFloatArray))
	require.Equal(t, value.ColorArray{}, c.GetArray("missing", format.TypeColorArray))

	require.Equal(t, value.Vector3{X: 9}, c.GetVector3("garbage", value.Vector3{X: 9}))
	require.Equal(t, value.IdentityQuaternion, c.GetQuaternion("missing", value.IdentityQuaternion))

	got, err := c.Decode("garbage", format.TypeQuaternion)
	require.NoError(t, err)
	require.Equal(t, value.IdentityQuaternion, got)

	require.Contains(t, logs.String(), "key=garbage")
	require.NotContains(t, logs.String(), "key=missing")
}

func TestCodec_LongHalves(t *testing.T) {
	c, st := newTestCodec(t)

	c.SetInt64("big", math.MinInt64)
	require.False(t, st.HasKey("big"))
	require.Equal(t, int32(0), st.GetInt32("big_lowBits", 1))
	require.Equal(t, int32(math.MinInt32), st.GetInt32("big_highBits", 1))

	c.SetInt64("ones", -1)
	require.Equal(t, int32(-1), st.GetInt32("ones_lowBits", 0))
	require.Equal(t, int32(-1), st.GetInt32("ones_highBits", 0))
	require.Equal(t, int64(-1), c.GetInt64("ones", 0))

	// each half defaults independently
	st.DeleteKey("ones_highBits")
	require.Equal(t, int64(0xFFFFFFFF), c.GetInt64("ones", 0))

	require.Equal(t, int64(77), c.GetInt64("missing", 77))
}

func TestCodec_EncodeReplacesLong(t *testing.T) {
	c, st := newTestCodec(t)

	c.SetInt64("k", 5)
	require.NoError(t, c.Encode("k", format.TypeVector2, value.Vector2{X: 1, Y: 2}))
	require.False(t, st.HasKey("k_lowBits"))
	require.False(t, st.HasKey("k_highBits"))
	require.Equal(t, format.TypeVector2, c.DetectType("k"))

	c.SetInt64("k", 6)
	require.False(t, st.HasKey("k"))
	require.Equal(t, format.TypeLong, c.DetectType("k"))
}

func TestCodec_Delete(t *testing.T) {
	c, st := newTestCodec(t)

	c.SetInt64("big", 1)
	st.SetString("big", "stray")
	c.Delete("big")

	require.Zero(t, st.Len())
	c.Delete("never-there")
}

func TestCodec_GetBool(t *testing.T) {
	c, st := newTestCodec(t)

	require.True(t, c.GetBool("missing", true))

	st.SetInt32("n", 2)
	require.True(t, c.GetBool("n", false))

	st.SetInt32("z", 0)
	require.False(t, c.GetBool("z", true))

	st.SetString("s", "1")
	require.True(t, c.GetBool("s", true))
}

func TestCodec_Concurrent(t *testing.T) {
	c, _ := newTestCodec(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			key := string(rune('a' + i))
			want := value.Vector3Array{{X: float32(i), Y: 1, Z: 2}, {X: 3, Y: float32(i), Z: 4}}
			for range 100 {
				assert.NoError(t, c.Encode(key, format.TypeVector3Array, want))
				got, err := c.Decode(key, format.TypeVector3Array)
				assert.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Equal(t, format.TypeVector3Array, c.DetectType(key))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkCodec_EncodeVector3Array(b *testing.B) {
	st := store.NewMemoryStore()
	c, _ := New(st)
	arr := make(value.Vector3Array, 64)
	for i := range arr {
		arr[i] = value.Vector3{X: float32(i), Y: 1, Z: -1}
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = c.Encode("path", format.TypeVector3Array, arr)
	}
}

func BenchmarkCodec_DetectType(b *testing.B) {
	st := store.NewMemoryStore()
	c, _ := New(st)
	c.SetColor("tint", value.Color{R: 1, A: 1})

	b.ReportAllocs()
	for b.Loop() {
		_ = c.DetectType("tint")
	}
}
