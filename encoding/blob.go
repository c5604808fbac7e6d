package encoding

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/value"
)

// ArrayCodec encodes and decodes every array blob kind.
//
// The typed Decode* methods soft-fail: malformed base64, a tag mismatch or a
// truncated payload yields an empty, non-nil slice. Parse returns the error
// instead, for callers that need to tell a corrupt blob from an empty one.
//
// ArrayCodec is a small immutable value and safe for concurrent use.
type ArrayCodec struct {
	words endian.WordCodec
}

// NewArrayCodec creates an ArrayCodec using the given word codec.
//
// Parameters:
//   - words: Word codec for all 4-byte components (usually endian.NativeWordCodec())
//
// Returns:
//   - ArrayCodec: A stateless codec value
func NewArrayCodec(words endian.WordCodec) ArrayCodec {
	return ArrayCodec{words: words}
}

// EncodeInts encodes an Int32 array blob.
func (c ArrayCodec) EncodeInts(values []int32) string {
	return encodeFixed(c.words, format.TagInt32, values, func(e *FixedArrayEncoder, v int32) { e.WriteI32(v) })
}

// EncodeFloats encodes a Float array blob.
func (c ArrayCodec) EncodeFloats(values []float32) string {
	return encodeFixed(c.words, format.TagFloat, values, func(e *FixedArrayEncoder, v float32) { e.WriteF32(v) })
}

// EncodeVector2s encodes a Vector2 array blob.
func (c ArrayCodec) EncodeVector2s(values []value.Vector2) string {
	return encodeFixed(c.words, format.TagVector2, values, func(e *FixedArrayEncoder, v value.Vector2) {
		e.WriteF32(v.X, v.Y)
	})
}

// EncodeVector3s encodes a Vector3 array blob.
func (c ArrayCodec) EncodeVector3s(values []value.Vector3) string {
	return encodeFixed(c.words, format.TagVector3, values, func(e *FixedArrayEncoder, v value.Vector3) {
		e.WriteF32(v.X, v.Y, v.Z)
	})
}

// EncodeQuaternions encodes a Quaternion array blob.
func (c ArrayCodec) EncodeQuaternions(values []value.Quaternion) string {
	return encodeFixed(c.words, format.TagQuaternion, values, func(e *FixedArrayEncoder, v value.Quaternion) {
		e.WriteF32(v.X, v.Y, v.Z, v.W)
	})
}

// EncodeColors encodes a Color array blob.
func (c ArrayCodec) EncodeColors(values []value.Color) string {
	return encodeFixed(c.words, format.TagColor, values, func(e *FixedArrayEncoder, v value.Color) {
		e.WriteF32(v.R, v.G, v.B, v.A)
	})
}

// EncodeBools encodes a bit-packed Bool array blob.
func (c ArrayCodec) EncodeBools(values []bool) string {
	return EncodeBools(c.words, values)
}

// EncodeStrings encodes a String array. See the package-level EncodeStrings.
func (c ArrayCodec) EncodeStrings(values []string) (string, error) {
	return EncodeStrings(values)
}

// Encode encodes any array variant.
//
// Returns:
//   - string: Stored form of the array
//   - error: errs.ErrTextTooLong for an over-long string element
func (c ArrayCodec) Encode(arr value.Array) (string, error) {
	switch a := arr.(type) {
	case value.IntArray:
		return c.EncodeInts(a), nil
	case value.FloatArray:
		return c.EncodeFloats(a), nil
	case value.BoolArray:
		return c.EncodeBools(a), nil
	case value.StringArray:
		return c.EncodeStrings(a)
	case value.Vector2Array:
		return c.EncodeVector2s(a), nil
	case value.Vector3Array:
		return c.EncodeVector3s(a), nil
	case value.QuaternionArray:
		return c.EncodeQuaternions(a), nil
	case value.ColorArray:
		return c.EncodeColors(a), nil
	}

	return "", fmt.Errorf("array variant %T: %w", arr, errs.ErrTypeMismatch)
}

// Parse decodes a stored blob of any kind, dispatching on its tag.
//
// A value holding the string separator is parsed as a String array; anything
// else must be base64 of a tagged fixed-width or Bool blob.
//
// Parameters:
//   - stored: Contents of a string slot
//
// Returns:
//   - value.Array: The decoded variant
//   - error: Format error describing why stored is not a valid blob
func (c ArrayCodec) Parse(stored string) (value.Array, error) {
	if stored == "" {
		return nil, fmt.Errorf("empty value: %w", errs.ErrMalformedBlob)
	}

	if strings.IndexByte(stored, StringSeparator) >= 0 {
		strs, err := decodeStrings(stored)
		if err != nil {
			return nil, err
		}

		return value.StringArray(strs), nil
	}

	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedBlob, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty blob: %w", errs.ErrMalformedBlob)
	}

	return c.parseTagged(data, format.ArrayTag(data[0]))
}

// DecodeBlob is Parse without the error detail.
func (c ArrayCodec) DecodeBlob(stored string) (value.Array, bool) {
	arr, err := c.Parse(stored)
	if err != nil {
		return nil, false
	}

	return arr, true
}

// ParseAs decodes stored as the array kind identified by tag.
func (c ArrayCodec) ParseAs(stored string, tag format.ArrayTag) (value.Array, error) {
	if tag == format.TagString {
		strs, err := decodeStrings(stored)
		if err != nil {
			return nil, err
		}

		return value.StringArray(strs), nil
	}

	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedBlob, err)
	}

	return c.parseTagged(data, tag)
}

func (c ArrayCodec) parseTagged(data []byte, tag format.ArrayTag) (value.Array, error) {
	switch tag {
	case format.TagFloat:
		v, err := decodeFixed(c.words, data, tag, readF32)
		return value.FloatArray(v), err
	case format.TagInt32:
		v, err := decodeFixed(c.words, data, tag, readI32)
		return value.IntArray(v), err
	case format.TagBool:
		v, err := decodeBools(c.words, data)
		return value.BoolArray(v), err
	case format.TagVector2:
		v, err := decodeFixed(c.words, data, tag, readVector2)
		return value.Vector2Array(v), err
	case format.TagVector3:
		v, err := decodeFixed(c.words, data, tag, readVector3)
		return value.Vector3Array(v), err
	case format.TagQuaternion:
		v, err := decodeFixed(c.words, data, tag, readQuaternion)
		return value.QuaternionArray(v), err
	case format.TagColor:
		v, err := decodeFixed(c.words, data, tag, readColor)
		return value.ColorArray(v), err
	case format.TagString:
		return nil, fmt.Errorf("string array is not a base64 blob: %w", errs.ErrMalformedBlob)
	default:
		return nil, fmt.Errorf("unknown tag 0x%02x: %w", byte(tag), errs.ErrMalformedBlob)
	}
}

// DecodeInts decodes an Int32 array blob, or returns an empty slice.
func (c ArrayCodec) DecodeInts(stored string) []int32 {
	return softDecode[value.IntArray](c, stored, format.TagInt32)
}

// DecodeFloats decodes a Float array blob, or returns an empty slice.
func (c ArrayCodec) DecodeFloats(stored string) []float32 {
	return softDecode[value.FloatArray](c, stored, format.TagFloat)
}

// DecodeBools decodes a Bool array blob, or returns an empty slice.
func (c ArrayCodec) DecodeBools(stored string) []bool {
	return softDecode[value.BoolArray](c, stored, format.TagBool)
}

// DecodeStrings decodes a String array, or returns an empty slice.
func (c ArrayCodec) DecodeStrings(stored string) []string {
	return softDecode[value.StringArray](c, stored, format.TagString)
}

// DecodeVector2s decodes a Vector2 array blob, or returns an empty slice.
func (c ArrayCodec) DecodeVector2s(stored string) []value.Vector2 {
	return softDecode[value.Vector2Array](c, stored, format.TagVector2)
}

// DecodeVector3s decodes a Vector3 array blob, or returns an empty slice.
func (c ArrayCodec) DecodeVector3s(stored string) []value.Vector3 {
	return softDecode[value.Vector3Array](c, stored, format.TagVector3)
}

// DecodeQuaternions decodes a Quaternion array blob, or returns an empty slice.
func (c ArrayCodec) DecodeQuaternions(stored string) []value.Quaternion {
	return softDecode[value.QuaternionArray](c, stored, format.TagQuaternion)
}

// DecodeColors decodes a Color array blob, or returns an empty slice.
func (c ArrayCodec) DecodeColors(stored string) []value.Color {
	return softDecode[value.ColorArray](c, stored, format.TagColor)
}

// DecodeComponents decodes a Float blob that must hold exactly n components.
// It is used for the scalar vector types.
//
// Returns:
//   - []float32: The n components
//   - bool: false if stored is not a Float blob of exactly n elements
func (c ArrayCodec) DecodeComponents(stored string, n int) ([]float32, bool) {
	arr, err := c.ParseAs(stored, format.TagFloat)
	if err != nil {
		return nil, false
	}

	floats, _ := arr.(value.FloatArray)
	if len(floats) != n {
		return nil, false
	}

	return floats, true
}

func softDecode[A ~[]E, E any](c ArrayCodec, stored string, tag format.ArrayTag) A {
	arr, err := c.ParseAs(stored, tag)
	if err != nil {
		return A{}
	}

	out, ok := arr.(A)
	if !ok || out == nil {
		return A{}
	}

	return out
}
