package store

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	s := NewMemoryStore()

	s.SetInt32("i", 42)
	s.SetFloat32("f", 1.5)
	s.SetString("s", "hello")

	require.Equal(t, int32(42), s.GetInt32("i", 0))
	require.Equal(t, float32(1.5), s.GetFloat32("f", 0))
	require.Equal(t, "hello", s.GetString("s", ""))
	require.Equal(t, 3, s.Len())
}

func TestMemoryStore_WrongKindReturnsDefault(t *testing.T) {
	s := NewMemoryStore()
	s.SetInt32("k", 7)

	require.Equal(t, float32(-1), s.GetFloat32("k", -1))
	require.Equal(t, "def", s.GetString("k", "def"))
	require.Equal(t, int32(9), s.GetInt32("missing", 9))
}

func TestMemoryStore_OverwriteChangesKind(t *testing.T) {
	s := NewMemoryStore()
	s.SetInt32("k", 7)
	s.SetString("k", "now a string")

	require.Equal(t, int32(0), s.GetInt32("k", 0))
	require.Equal(t, "now a string", s.GetString("k", ""))

	e, ok := s.Entry("k")
	require.True(t, ok)
	require.Equal(t, KindString, e.Kind)
}

func TestMemoryStore_HasKeyDelete(t *testing.T) {
	s := NewMemoryStore()
	require.False(t, s.HasKey("k"))

	s.SetFloat32("k", 0)
	require.True(t, s.HasKey("k"))

	s.DeleteKey("k")
	require.False(t, s.HasKey("k"))

	s.DeleteKey("k")
	require.NoError(t, s.Save())
}

func TestMemoryStore_KeysSorted(t *testing.T) {
	s := NewMemoryStore()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		s.SetInt32(k, 1)
	}

	var keys []string
	for k := range s.Keys() {
		// modifying during iteration must not affect the snapshot
		s.DeleteKey(k)
		keys = append(keys, k)
	}

	require.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
	require.Zero(t, s.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				s.SetInt32("k", int32(i*1000+j))
				_ = s.GetInt32("k", 0)
				_ = slices.Collect(s.Keys())
			}
		}()
	}
	wg.Wait()

	require.True(t, s.HasKey("k"))
}
