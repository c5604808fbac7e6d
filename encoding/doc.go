// Package encoding implements the typedkv blob formats that carry arrays,
// vectors and 64-bit integers inside a store that only holds int32, float32
// and strings.
//
// # Blob Formats
//
// Every array is stored in a string slot. The first byte of the decoded blob
// is a format.ArrayTag, so a reader can tell array kinds apart without any
// out-of-band metadata.
//
// Fixed-width arrays (Int32, Float, Vector2, Vector3, Quaternion, Color):
//
//	base64( [tag:1][c0:4][c1:4]...[c(k*n-1):4] )
//
// Bool arrays keep an explicit element count because the bit length is not
// recoverable from the byte length:
//
//	base64( [tag:1][count:4][bits:ceil(count/8)] )
//
// String arrays keep a one-byte length per element, then the raw strings:
//
//	base64( [tag:1][len0:1]...[lenN-1:1] ) + "|" + s0 + s1 + ... + sN-1
//
// All 4-byte components are canonical little-endian (see endian.WordCodec).
//
// A Long (int64) value is not a blob: SplitInt64 yields two int32 halves that
// the caller stores under LowBitsKey and HighBitsKey.
//
// # Error Handling
//
// Encoding fails only for a string element longer than MaxTextLength.
// ArrayCodec.Parse reports why a stored value is not a blob; the typed
// Decode* methods absorb those errors and return an empty slice.
//
// # Thread Safety
//
// ArrayCodec, Reader-based decoding and the package functions keep all cursor
// state local to the call and are safe for concurrent use. A FixedArrayEncoder
// must not be shared between goroutines.
package encoding
