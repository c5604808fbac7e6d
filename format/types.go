package format

import (
	"fmt"
	"strings"
)

type (
	LogicalType     uint8
	ArrayTag        uint8
	CompressionType uint8
)

// Logical types carried on top of the store's native int32, float32 and string slots.
const (
	TypeInt             LogicalType = iota // TypeInt is a native int32.
	TypeFloat                              // TypeFloat is a native float32.
	TypeString                             // TypeString is a native string.
	TypeBool                               // TypeBool is stored as a native int 0 or 1.
	TypeLong                               // TypeLong is split across two native ints.
	TypeVector2                            // TypeVector2 is a two-component float blob.
	TypeVector3                            // TypeVector3 is a three-component float blob.
	TypeQuaternion                         // TypeQuaternion is a four-component float blob (x,y,z,w).
	TypeColor                              // TypeColor is a four-component float blob (r,g,b,a).
	TypeIntArray                           // TypeIntArray is an Int32-tagged blob.
	TypeFloatArray                         // TypeFloatArray is a Float-tagged blob.
	TypeBoolArray                          // TypeBoolArray is a bit-packed Bool-tagged blob.
	TypeStringArray                        // TypeStringArray is a length table plus raw payload.
	TypeVector2Array                       // TypeVector2Array is a Vector2-tagged blob.
	TypeVector3Array                       // TypeVector3Array is a Vector3-tagged blob.
	TypeQuaternionArray                    // TypeQuaternionArray is a Quaternion-tagged blob.
	TypeColorArray                         // TypeColorArray is a Color-tagged blob.

	logicalTypeCount
)

// Array tags are written as the first byte of every encoded array blob.
// The ordinals are part of the wire format and must never be renumbered.
const (
	TagFloat      ArrayTag = 0x0
	TagInt32      ArrayTag = 0x1
	TagBool       ArrayTag = 0x2
	TagString     ArrayTag = 0x3
	TagVector2    ArrayTag = 0x4
	TagVector3    ArrayTag = 0x5
	TagQuaternion ArrayTag = 0x6
	TagColor      ArrayTag = 0x7

	arrayTagCount
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var logicalTypeNames = [logicalTypeCount]string{
	TypeInt:             "Int",
	TypeFloat:           "Float",
	TypeString:          "String",
	TypeBool:            "Bool",
	TypeLong:            "Long",
	TypeVector2:         "Vector2",
	TypeVector3:         "Vector3",
	TypeQuaternion:      "Quaternion",
	TypeColor:           "Color",
	TypeIntArray:        "IntArray",
	TypeFloatArray:      "FloatArray",
	TypeBoolArray:       "BoolArray",
	TypeStringArray:     "StringArray",
	TypeVector2Array:    "Vector2Array",
	TypeVector3Array:    "Vector3Array",
	TypeQuaternionArray: "QuaternionArray",
	TypeColorArray:      "ColorArray",
}

func (t LogicalType) String() string {
	if t < logicalTypeCount {
		return logicalTypeNames[t]
	}

	return "Unknown"
}

// Valid reports whether t is one of the supported logical types.
func (t LogicalType) Valid() bool {
	return t < logicalTypeCount
}

// IsArray reports whether t is one of the array logical types.
func (t LogicalType) IsArray() bool {
	return t >= TypeIntArray && t < logicalTypeCount
}

// ArrayTag returns the wire tag used for t's encoded blob.
//
// The scalar vector types are stored as Float-tagged component arrays, so
// Vector2, Vector3, Quaternion and Color all map to TagFloat.
// The second return value is false for types that are not stored as blobs.
func (t LogicalType) ArrayTag() (ArrayTag, bool) {
	switch t { //nolint: exhaustive
	case TypeVector2, TypeVector3, TypeQuaternion, TypeColor, TypeFloatArray:
		return TagFloat, true
	case TypeIntArray:
		return TagInt32, true
	case TypeBoolArray:
		return TagBool, true
	case TypeStringArray:
		return TagString, true
	case TypeVector2Array:
		return TagVector2, true
	case TypeVector3Array:
		return TagVector3, true
	case TypeQuaternionArray:
		return TagQuaternion, true
	case TypeColorArray:
		return TagColor, true
	default:
		return 0, false
	}
}

// ParseLogicalType parses a logical type name case-insensitively.
func ParseLogicalType(name string) (LogicalType, error) {
	for i, n := range logicalTypeNames {
		if strings.EqualFold(n, name) {
			return LogicalType(i), nil //nolint:gosec
		}
	}

	return 0, fmt.Errorf("unknown logical type %q", name)
}

// AllLogicalTypes returns every supported logical type in ordinal order.
func AllLogicalTypes() []LogicalType {
	types := make([]LogicalType, 0, logicalTypeCount)
	for t := range logicalTypeCount {
		types = append(types, t)
	}

	return types
}

func (a ArrayTag) String() string {
	switch a {
	case TagFloat:
		return "Float"
	case TagInt32:
		return "Int32"
	case TagBool:
		return "Bool"
	case TagString:
		return "String"
	case TagVector2:
		return "Vector2"
	case TagVector3:
		return "Vector3"
	case TagQuaternion:
		return "Quaternion"
	case TagColor:
		return "Color"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is a known array tag.
func (a ArrayTag) Valid() bool {
	return a < arrayTagCount
}

// Components returns the number of 4-byte components per element for the
// fixed-width tags, or 0 for Bool and String which use their own layouts.
func (a ArrayTag) Components() int {
	switch a {
	case TagFloat, TagInt32:
		return 1
	case TagVector2:
		return 2
	case TagVector3:
		return 3
	case TagQuaternion, TagColor:
		return 4
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a compression name case-insensitively.
func ParseCompressionType(name string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression type %q", name)
}
