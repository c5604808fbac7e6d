package value

import "github.com/arloliu/typedkv/format"

// Array is the closed set of array variants a blob can hold.
//
// Decoders dispatch on the blob's tag once and hand back one of the concrete
// types below, so callers can use an exhaustive type switch instead of
// inspecting tag ordinals:
//
//	switch arr := a.(type) {
//	case value.IntArray:
//	case value.FloatArray:
//	case value.BoolArray:
//	case value.StringArray:
//	case value.Vector2Array:
//	case value.Vector3Array:
//	case value.QuaternionArray:
//	case value.ColorArray:
//	}
type Array interface {
	// Tag returns the wire tag of the variant.
	Tag() format.ArrayTag
	// Len returns the number of elements.
	Len() int

	sealed()
}

type (
	IntArray        []int32
	FloatArray      []float32
	BoolArray       []bool
	StringArray     []string
	Vector2Array    []Vector2
	Vector3Array    []Vector3
	QuaternionArray []Quaternion
	ColorArray      []Color
)

var (
	_ Array = IntArray(nil)
	_ Array = FloatArray(nil)
	_ Array = BoolArray(nil)
	_ Array = StringArray(nil)
	_ Array = Vector2Array(nil)
	_ Array = Vector3Array(nil)
	_ Array = QuaternionArray(nil)
	_ Array = ColorArray(nil)
)

func (IntArray) Tag() format.ArrayTag        { return format.TagInt32 }
func (FloatArray) Tag() format.ArrayTag      { return format.TagFloat }
func (BoolArray) Tag() format.ArrayTag       { return format.TagBool }
func (StringArray) Tag() format.ArrayTag     { return format.TagString }
func (Vector2Array) Tag() format.ArrayTag    { return format.TagVector2 }
func (Vector3Array) Tag() format.ArrayTag    { return format.TagVector3 }
func (QuaternionArray) Tag() format.ArrayTag { return format.TagQuaternion }
func (ColorArray) Tag() format.ArrayTag      { return format.TagColor }

func (a IntArray) Len() int        { return len(a) }
func (a FloatArray) Len() int      { return len(a) }
func (a BoolArray) Len() int       { return len(a) }
func (a StringArray) Len() int     { return len(a) }
func (a Vector2Array) Len() int    { return len(a) }
func (a Vector3Array) Len() int    { return len(a) }
func (a QuaternionArray) Len() int { return len(a) }
func (a ColorArray) Len() int      { return len(a) }

func (IntArray) sealed()        {}
func (FloatArray) sealed()      {}
func (BoolArray) sealed()       {}
func (StringArray) sealed()     {}
func (Vector2Array) sealed()    {}
func (Vector3Array) sealed()    {}
func (QuaternionArray) sealed() {}
func (ColorArray) sealed()      {}

// LogicalType returns the array logical type matching a's variant.
func LogicalType(a Array) format.LogicalType {
	switch a.(type) {
	case IntArray:
		return format.TypeIntArray
	case FloatArray:
		return format.TypeFloatArray
	case BoolArray:
		return format.TypeBoolArray
	case StringArray:
		return format.TypeStringArray
	case Vector2Array:
		return format.TypeVector2Array
	case Vector3Array:
		return format.TypeVector3Array
	case QuaternionArray:
		return format.TypeQuaternionArray
	case ColorArray:
		return format.TypeColorArray
	}

	panic("value: unhandled array variant")
}
