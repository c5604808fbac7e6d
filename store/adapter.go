// Package store provides the schema-less primitive store that typedkv is built
// on, and two implementations of it.
//
// A store maps each key to exactly one native value: an int32, a float32 or a
// string. Reading a key through the getter of a different kind returns the
// caller's default, as host preference stores do. Nothing is durable until
// Save is called.
package store

// Adapter is the primitive store consumed by the typedkv codec.
type Adapter interface {
	GetInt32(key string, def int32) int32
	SetInt32(key string, v int32)
	GetFloat32(key string, def float32) float32
	SetFloat32(key string, v float32)
	GetString(key string, def string) string
	SetString(key string, v string)
	HasKey(key string) bool
	DeleteKey(key string)
	// Save flushes pending writes to durable storage.
	Save() error
}

// Kind identifies which native slot an entry occupies.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Entry is one stored native value.
type Entry struct {
	Kind  Kind    `cbor:"1,keyasint"`
	Int   int32   `cbor:"2,keyasint"`
	Float float32 `cbor:"3,keyasint"`
	Str   string  `cbor:"4,keyasint"`
}
