package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitJoinInt64_RoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 42, -42,
		math.MaxInt32, math.MinInt32,
		math.MaxInt32 + 1, math.MinInt32 - 1,
		math.MaxUint32,
		math.MaxInt64, math.MinInt64,
		0x0123456789abcdef, -0x0123456789abcdef,
	}

	for _, v := range values {
		low, high := SplitInt64(v)
		require.Equal(t, v, JoinInt64(low, high), "value %d", v)
	}
}

func TestSplitInt64_TwosComplement(t *testing.T) {
	low, high := SplitInt64(-1)
	require.Equal(t, int32(-1), low)
	require.Equal(t, int32(-1), high)

	low, high = SplitInt64(math.MinInt64)
	require.Equal(t, int32(0), low)
	require.Equal(t, int32(math.MinInt32), high)

	low, high = SplitInt64(math.MaxUint32)
	require.Equal(t, int32(-1), low)
	require.Equal(t, int32(0), high)

	low, high = SplitInt64(1 << 32)
	require.Equal(t, int32(0), low)
	require.Equal(t, int32(1), high)
}

func TestJoinInt64_MissingHalves(t *testing.T) {
	// a missing half reads back as 0
	require.Equal(t, int64(7), JoinInt64(7, 0))
	require.Equal(t, int64(1)<<32, JoinInt64(0, 1))
	require.Equal(t, int64(math.MaxUint32), JoinInt64(-1, 0))
}

func TestLongKeys(t *testing.T) {
	require.Equal(t, "score_lowBits", LowBitsKey("score"))
	require.Equal(t, "score_highBits", HighBitsKey("score"))
}
