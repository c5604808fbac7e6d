package typedkv

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/typedkv/encoding"
	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/options"
	"github.com/arloliu/typedkv/store"
	"github.com/arloliu/typedkv/value"
)

// Codec reads and writes logical values on top of a primitive store.Adapter.
//
// Writes validate their input and return errors. Reads never fail on stored
// data: a value that cannot be decoded yields the type's default and is logged
// at debug level.
//
// Codec holds no per-call state and is safe for concurrent use as long as the
// underlying adapter is.
type Codec struct {
	store     store.Adapter
	words     endian.WordCodec
	arrays    encoding.ArrayCodec
	tolerance float64
	logger    *slog.Logger
}

// New creates a Codec over adapter.
//
// Parameters:
//   - adapter: The primitive store holding the encoded values
//   - opts: Optional configuration (logger, quaternion tolerance, word codec)
//
// Returns:
//   - *Codec: The codec
//   - error: A nil adapter or an invalid option
func New(adapter store.Adapter, opts ...Option) (*Codec, error) {
	if adapter == nil {
		return nil, errors.New("typedkv: nil store adapter")
	}

	c := &Codec{
		store:     adapter,
		words:     endian.NativeWordCodec(),
		tolerance: DefaultQuaternionTolerance,
		logger:    slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	c.arrays = encoding.NewArrayCodec(c.words)

	return c, nil
}

// Store returns the underlying adapter.
func (c *Codec) Store() store.Adapter {
	return c.store
}

// Save flushes the underlying adapter.
func (c *Codec) Save() error {
	return c.store.Save()
}

// Encode writes v at key as logical type t, replacing whatever key held.
//
// Accepted Go types per logical type:
//   - Int: int32, or int/int64 within the int32 range
//   - Float: float32 or float64
//   - String: string
//   - Bool: bool
//   - Long: int64, int or int32
//   - Vector2, Vector3, Quaternion, Color: the value package type, or a
//     []float32 holding exactly the type's component count
//   - arrays: the value package array type or its plain slice equivalent
//
// Returns:
//   - error: errs.ErrTypeMismatch for a wrong Go type, errs.ErrTextTooLong for
//     an over-long string array element, errs.ErrUnknownType for an invalid t
func (c *Codec) Encode(key string, t format.LogicalType, v any) error {
	switch t {
	case format.TypeInt:
		n, ok := asInt32(v)
		if !ok {
			return mismatch(key, t, v)
		}
		c.clearLong(key)
		c.store.SetInt32(key, n)

	case format.TypeFloat:
		f, ok := asFloat32(v)
		if !ok {
			return mismatch(key, t, v)
		}
		c.clearLong(key)
		c.store.SetFloat32(key, f)

	case format.TypeString:
		s, ok := v.(string)
		if !ok {
			return mismatch(key, t, v)
		}
		c.clearLong(key)
		c.store.SetString(key, s)

	case format.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(key, t, v)
		}
		c.SetBool(key, b)

	case format.TypeLong:
		n, ok := asInt64(v)
		if !ok {
			return mismatch(key, t, v)
		}
		c.SetInt64(key, n)

	case format.TypeVector2, format.TypeVector3, format.TypeQuaternion, format.TypeColor:
		comps, ok := vectorComponents(t, v)
		if !ok {
			return mismatch(key, t, v)
		}
		c.setComponents(key, comps)

	default:
		if !t.IsArray() {
			return fmt.Errorf("encode %q: type %d: %w", key, t, errs.ErrUnknownType)
		}

		arr, ok := toArray(t, v)
		if !ok {
			return mismatch(key, t, v)
		}

		return c.SetArray(key, arr)
	}

	return nil
}

// Decode reads key as logical type t.
//
// Scalars come back as int32, float32, string, bool and int64; vectors as the
// value package types; arrays as value.Array variants. Missing or malformed
// data yields the type's default: zero, the empty string, an empty array, or
// value.IdentityQuaternion.
//
// Returns:
//   - any: The decoded value
//   - error: errs.ErrUnknownType for an invalid t; stored data never causes an error
func (c *Codec) Decode(key string, t format.LogicalType) (any, error) {
	switch t {
	case format.TypeInt:
		return c.store.GetInt32(key, 0), nil
	case format.TypeFloat:
		return c.store.GetFloat32(key, 0), nil
	case format.TypeString:
		return c.store.GetString(key, ""), nil
	case format.TypeBool:
		return c.GetBool(key, false), nil
	case format.TypeLong:
		return c.GetInt64(key, 0), nil
	case format.TypeVector2:
		return c.GetVector2(key, value.Vector2{}), nil
	case format.TypeVector3:
		return c.GetVector3(key, value.Vector3{}), nil
	case format.TypeQuaternion:
		return c.GetQuaternion(key, value.IdentityQuaternion), nil
	case format.TypeColor:
		return c.GetColor(key, value.Color{}), nil
	}

	if !t.IsArray() {
		return nil, fmt.Errorf("decode %q: type %d: %w", key, t, errs.ErrUnknownType)
	}

	return c.GetArray(key, t), nil
}

// Delete removes key together with its Long companions.
func (c *Codec) Delete(key string) {
	c.store.DeleteKey(key)
	c.store.DeleteKey(encoding.LowBitsKey(key))
	c.store.DeleteKey(encoding.HighBitsKey(key))
}

// SetInt64 stores v as a Long in the two companion int slots of key.
func (c *Codec) SetInt64(key string, v int64) {
	low, high := encoding.SplitInt64(v)
	c.store.DeleteKey(key)
	c.store.SetInt32(encoding.LowBitsKey(key), low)
	c.store.SetInt32(encoding.HighBitsKey(key), high)
}

// GetInt64 returns the Long stored at key, or def if neither half exists.
// A missing half reads as zero.
func (c *Codec) GetInt64(key string, def int64) int64 {
	lowKey, highKey := encoding.LowBitsKey(key), encoding.HighBitsKey(key)
	if !c.store.HasKey(lowKey) && !c.store.HasKey(highKey) {
		return def
	}

	return encoding.JoinInt64(c.store.GetInt32(lowKey, 0), c.store.GetInt32(highKey, 0))
}

// SetBool stores b as the native int 0 or 1.
func (c *Codec) SetBool(key string, b bool) {
	var n int32
	if b {
		n = 1
	}
	c.clearLong(key)
	c.store.SetInt32(key, n)
}

// GetBool returns true for any non-zero native int at key, or def if key
// holds no int.
func (c *Codec) GetBool(key string, def bool) bool {
	n, ok := c.nativeInt(key)
	if !ok {
		return def
	}

	return n != 0
}

// SetVector2 stores v as a two-element Float blob.
func (c *Codec) SetVector2(key string, v value.Vector2) {
	c.setComponents(key, v.Components())
}

// GetVector2 returns the Vector2 at key, or def.
func (c *Codec) GetVector2(key string, def value.Vector2) value.Vector2 {
	comps, ok := c.components(key, format.TypeVector2, 2)
	if !ok {
		return def
	}

	return value.Vector2{X: comps[0], Y: comps[1]}
}

// SetVector3 stores v as a three-element Float blob.
func (c *Codec) SetVector3(key string, v value.Vector3) {
	c.setComponents(key, v.Components())
}

// GetVector3 returns the Vector3 at key, or def.
func (c *Codec) GetVector3(key string, def value.Vector3) value.Vector3 {
	comps, ok := c.components(key, format.TypeVector3, 3)
	if !ok {
		return def
	}

	return value.Vector3{X: comps[0], Y: comps[1], Z: comps[2]}
}

// SetQuaternion stores q as a four-element Float blob.
func (c *Codec) SetQuaternion(key string, q value.Quaternion) {
	c.setComponents(key, q.Components())
}

// GetQuaternion returns the Quaternion at key, or def.
func (c *Codec) GetQuaternion(key string, def value.Quaternion) value.Quaternion {
	comps, ok := c.components(key, format.TypeQuaternion, 4)
	if !ok {
		return def
	}

	return value.Quaternion{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}
}

// SetColor stores col as a four-element Float blob.
func (c *Codec) SetColor(key string, col value.Color) {
	c.setComponents(key, col.Components())
}

// GetColor returns the Color at key, or def.
func (c *Codec) GetColor(key string, def value.Color) value.Color {
	comps, ok := c.components(key, format.TypeColor, 4)
	if !ok {
		return def
	}

	return value.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}
}

// SetArray stores arr as a blob in the string slot of key.
//
// Returns:
//   - error: errs.ErrTextTooLong for a string element over 255 bytes; nothing
//     is written in that case
func (c *Codec) SetArray(key string, arr value.Array) error {
	stored, err := c.arrays.Encode(arr)
	if err != nil {
		return fmt.Errorf("encode %q as %s: %w", key, value.LogicalType(arr), err)
	}

	c.clearLong(key)
	c.store.SetString(key, stored)

	return nil
}

// GetArray decodes key as the array logical type t. Anything that is not a
// valid blob of that kind yields an empty array of the matching variant.
func (c *Codec) GetArray(key string, t format.LogicalType) value.Array {
	tag, ok := t.ArrayTag()
	if !ok || !t.IsArray() {
		return nil
	}

	if !c.store.HasKey(key) {
		return emptyArray(t)
	}

	arr, err := c.arrays.ParseAs(c.store.GetString(key, ""), tag)
	if err != nil {
		c.softFail(key, t, err)
		return emptyArray(t)
	}

	if arr.Len() == 0 {
		return emptyArray(t)
	}

	return arr
}

func (c *Codec) setComponents(key string, comps []float32) {
	c.clearLong(key)
	c.store.SetString(key, c.arrays.EncodeFloats(comps))
}

func (c *Codec) components(key string, t format.LogicalType, n int) ([]float32, bool) {
	if !c.store.HasKey(key) {
		return nil, false
	}

	comps, ok := c.arrays.DecodeComponents(c.store.GetString(key, ""), n)
	if !ok {
		c.softFail(key, t, errs.ErrMalformedBlob)
	}

	return comps, ok
}

// clearLong removes a Long previously stored under key so it cannot shadow the
// value being written.
func (c *Codec) clearLong(key string) {
	lowKey, highKey := encoding.LowBitsKey(key), encoding.HighBitsKey(key)
	if c.store.HasKey(lowKey) && c.store.HasKey(highKey) {
		c.store.DeleteKey(lowKey)
		c.store.DeleteKey(highKey)
	}
}

func (c *Codec) softFail(key string, t format.LogicalType, err error) {
	c.logger.Debug("decode fell back to default",
		slog.String("key", key),
		slog.String("type", t.String()),
		slog.Any("error", err),
	)
}

// Missing-value probes. The adapter only reports a value through its default,
// so each probe asks twice with different defaults.
const (
	floatSentinel  = -math.MaxFloat32
	stringSentinel = "\x00typedkv:missing"
)

func (c *Codec) nativeInt(key string) (int32, bool) {
	if n := c.store.GetInt32(key, 0); n != 0 {
		return n, true
	}

	return 0, c.store.GetInt32(key, 1) == 0
}

func (c *Codec) nativeFloat(key string) (float32, bool) {
	if f := c.store.GetFloat32(key, floatSentinel); f != floatSentinel {
		return f, true
	}

	return floatSentinel, c.store.GetFloat32(key, 0) == floatSentinel
}

func (c *Codec) nativeString(key string) (string, bool) {
	if s := c.store.GetString(key, ""); s != "" {
		return s, true
	}

	return "", c.store.GetString(key, stringSentinel) == ""
}

func mismatch(key string, t format.LogicalType, v any) error {
	return fmt.Errorf("encode %q as %s: got %T: %w", key, t, v, errs.ErrTypeMismatch)
}

func asInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}

		return int32(n), true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}

		return int32(n), true
	}

	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}

	return 0, false
}

func asFloat32(v any) (float32, bool) {
	switch f := v.(type) {
	case float32:
		return f, true
	case float64:
		return float32(f), true
	}

	return 0, false
}

var vectorWidth = map[format.LogicalType]int{
	format.TypeVector2:    2,
	format.TypeVector3:    3,
	format.TypeQuaternion: 4,
	format.TypeColor:      4,
}

func vectorComponents(t format.LogicalType, v any) ([]float32, bool) {
	switch vec := v.(type) {
	case value.Vector2:
		return vec.Components(), t == format.TypeVector2
	case value.Vector3:
		return vec.Components(), t == format.TypeVector3
	case value.Quaternion:
		return vec.Components(), t == format.TypeQuaternion
	case value.Color:
		return vec.Components(), t == format.TypeColor
	case []float32:
		want := vectorWidth[t]
		return vec, want != 0 && len(vec) == want
	}

	return nil, false
}

func toArray(t format.LogicalType, v any) (value.Array, bool) {
	var arr value.Array
	switch a := v.(type) {
	case value.Array:
		arr = a
	case []int32:
		arr = value.IntArray(a)
	case []float32:
		arr = value.FloatArray(a)
	case []bool:
		arr = value.BoolArray(a)
	case []string:
		arr = value.StringArray(a)
	case []value.Vector2:
		arr = value.Vector2Array(a)
	case []value.Vector3:
		arr = value.Vector3Array(a)
	case []value.Quaternion:
		arr = value.QuaternionArray(a)
	case []value.Color:
		arr = value.ColorArray(a)
	default:
		return nil, false
	}

	return arr, value.LogicalType(arr) == t
}

func emptyArray(t format.LogicalType) value.Array {
	switch t {
	case format.TypeIntArray:
		return value.IntArray{}
	case format.TypeFloatArray:
		return value.FloatArray{}
	case format.TypeBoolArray:
		return value.BoolArray{}
	case format.TypeStringArray:
		return value.StringArray{}
	case format.TypeVector2Array:
		return value.Vector2Array{}
	case format.TypeVector3Array:
		return value.Vector3Array{}
	case format.TypeQuaternionArray:
		return value.QuaternionArray{}
	case format.TypeColorArray:
		return value.ColorArray{}
	}

	return nil
}
