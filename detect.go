package typedkv

import (
	"math"

	"github.com/arloliu/typedkv/encoding"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/store"
	"github.com/arloliu/typedkv/value"
)

// Native is the raw value held in a key's own store slot.
//
// Kind is zero when the key has no slot of its own, which is the case for a
// missing key and for a Long (whose halves live in companion keys).
type Native struct {
	Kind  store.Kind
	Int   int32
	Float float32
	Str   string
}

// Present reports whether the key has a slot of its own.
func (n Native) Present() bool {
	return n.Kind != 0
}

// Detection is the outcome of classifying one key.
type Detection struct {
	Key string
	// Type is the guessed logical type.
	Type format.LogicalType
	// Native is what the guess was made from; callers who know better can
	// reinterpret it.
	Native Native
}

// DetectType guesses the logical type of key from the stored data alone.
//
// Classification order, first match wins:
//  1. The string slot holds an array blob. A Float blob of 2, 3 or 4
//     elements is left for step 3.
//  2. Both Long companions hold ints: Long.
//  3. A Float blob of 2 or 3 elements: Vector2 or Vector3.
//  4. A Float blob of 4 elements: Quaternion if its norm is within the
//     quaternion tolerance of 1.0, otherwise Color.
//  5. A native int: Bool for 0 or 1, otherwise Int.
//  6. A native float: Float.
//  7. String, including keys that hold nothing at all.
//
// A Color with a near-unit norm is reported as a Quaternion, and an Int
// holding 0 or 1 as a Bool. Inspect exposes the raw slot for callers who need
// to override such guesses. The default tolerance is tight, so a color like
// (0.5, 0.5, 0.5, 0.707) with norm 1.118 stays a Color; callers who want such
// values read as rotations can widen it with WithQuaternionTolerance.
//
// DetectType never writes and gives the same answer for unchanged data.
func (c *Codec) DetectType(key string) format.LogicalType {
	return c.Inspect(key).Type
}

// Inspect classifies key like DetectType and also returns the raw native value.
func (c *Codec) Inspect(key string) Detection {
	native := c.probe(key)
	d := Detection{Key: key, Native: native}

	var floats value.FloatArray
	if native.Kind == store.KindString {
		if arr, ok := c.arrays.DecodeBlob(native.Str); ok {
			fa, isFloat := arr.(value.FloatArray)
			if !isFloat || len(fa) < 2 || len(fa) > 4 {
				d.Type = value.LogicalType(arr)
				return d
			}
			floats = fa
		}
	}

	if c.isLong(key) {
		d.Type = format.TypeLong
		return d
	}

	switch len(floats) {
	case 2:
		d.Type = format.TypeVector2
		return d
	case 3:
		d.Type = format.TypeVector3
		return d
	case 4:
		if math.Abs(value.Norm4(floats[0], floats[1], floats[2], floats[3])-1) <= c.tolerance {
			d.Type = format.TypeQuaternion
		} else {
			d.Type = format.TypeColor
		}

		return d
	}

	switch native.Kind {
	case store.KindInt:
		if native.Int == 0 || native.Int == 1 {
			d.Type = format.TypeBool
		} else {
			d.Type = format.TypeInt
		}
	case store.KindFloat:
		d.Type = format.TypeFloat
	default:
		d.Type = format.TypeString
	}

	return d
}

// DecodeDetected detects the type of key and decodes it as that type.
func (c *Codec) DecodeDetected(key string) (format.LogicalType, any) {
	t := c.DetectType(key)
	v, _ := c.Decode(key, t) // t is always valid

	return t, v
}

// probe finds which native slot key occupies.
func (c *Codec) probe(key string) Native {
	if s, ok := c.nativeString(key); ok {
		return Native{Kind: store.KindString, Str: s}
	}
	if n, ok := c.nativeInt(key); ok {
		return Native{Kind: store.KindInt, Int: n}
	}
	if f, ok := c.nativeFloat(key); ok {
		return Native{Kind: store.KindFloat, Float: f}
	}

	return Native{}
}

func (c *Codec) isLong(key string) bool {
	_, lowOK := c.nativeInt(encoding.LowBitsKey(key))
	if !lowOK {
		return false
	}
	_, highOK := c.nativeInt(encoding.HighBitsKey(key))

	return highOK
}
