package encoding

// Suffixes of the two native int keys that carry a Long value.
const (
	LowBitsSuffix  = "_lowBits"
	HighBitsSuffix = "_highBits"
)

// LowBitsKey returns the key holding the low 32 bits of the Long stored at key.
func LowBitsKey(key string) string { return key + LowBitsSuffix }

// HighBitsKey returns the key holding the high 32 bits of the Long stored at key.
func HighBitsKey(key string) string { return key + HighBitsSuffix }

// SplitInt64 splits v into its two's-complement low and high 32-bit halves.
func SplitInt64(v int64) (low, high int32) {
	u := uint64(v) //nolint:gosec

	return int32(uint32(u)), int32(uint32(u >> 32)) //nolint:gosec
}

// JoinInt64 recombines halves produced by SplitInt64.
func JoinInt64(low, high int32) int64 {
	return int64(uint64(uint32(high))<<32 | uint64(uint32(low))) //nolint:gosec
}
