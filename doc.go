// Package typedkv carries typed values through a schema-less key/value store
// that can only hold int32, float32 and string values.
//
// On top of the three native kinds the codec supports booleans, int64 (Long),
// Vector2, Vector3, Quaternion, Color and homogeneous arrays of all of these.
// Nothing records which logical type a key holds: DetectType recovers it from
// the stored data using the array tag embedded in blobs, the presence of Long
// companion keys, and a few value heuristics.
//
// # Storage Mapping
//
//   - Int, Float, String: the native slot of the key
//   - Bool: native int 0 or 1
//   - Long: two native ints at "<key>_lowBits" and "<key>_highBits"
//   - Vector2, Vector3, Quaternion, Color: a Float array blob of 2, 3 or 4 elements
//   - arrays: a tagged blob in the string slot (see package encoding)
//
// # Basic Usage
//
//	st := store.NewMemoryStore()
//	codec, _ := typedkv.New(st)
//
//	_ = codec.Encode("score", format.TypeInt, int32(42))
//	_ = codec.Encode("tint", format.TypeColor, value.Color{R: 1, A: 1})
//	_ = codec.Encode("path", format.TypeVector3Array, []value.Vector3{{X: 1}, {Y: 2}})
//
//	t, v := codec.DecodeDetected("tint") // format.TypeColor, value.Color{R: 1, A: 1}
//
// # Known Ambiguities
//
// A Color whose four channels have a Euclidean norm within the quaternion
// tolerance of 1.0 is detected as a Quaternion, an Int holding 0 or 1 as a
// Bool, and a Float array of two to four elements as the vector of that size.
// Inspect returns the raw native value alongside the guess so callers that
// know what they wrote can decode it explicitly.
//
// # Error Handling
//
// Writes return validation errors from package errs. Reads never fail on
// stored data; anything undecodable yields the type's default value.
package typedkv
