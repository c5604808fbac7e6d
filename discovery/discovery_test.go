package discovery

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_Keys(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, slices.Collect(List{"a", "b"}.Keys()))
	require.Empty(t, slices.Collect(List(nil).Keys()))
}

func TestFunc_Keys(t *testing.T) {
	p := Func(func() iter.Seq[string] { return slices.Values([]string{"x"}) })
	require.Equal(t, []string{"x"}, slices.Collect(p.Keys()))
}

func TestUnique(t *testing.T) {
	got := slices.Collect(Unique(slices.Values([]string{"b", "a", "b", "c", "a"})))
	require.Equal(t, []string{"b", "a", "c"}, got)
}

func TestUnique_StopsEarly(t *testing.T) {
	var got []string
	for key := range Unique(slices.Values([]string{"a", "b", "c"})) {
		got = append(got, key)
		if key == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}

func TestFoldLongCompanions(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "pair folds into base",
			keys: []string{"score", "big_lowBits", "big_highBits", "name"},
			want: []string{"score", "big", "name"},
		},
		{
			name: "high first",
			keys: []string{"big_highBits", "x", "big_lowBits"},
			want: []string{"big", "x"},
		},
		{
			name: "orphan companion kept",
			keys: []string{"lonely_lowBits", "other"},
			want: []string{"lonely_lowBits", "other"},
		},
		{
			name: "base also listed",
			keys: []string{"big", "big_lowBits", "big_highBits"},
			want: []string{"big"},
		},
		{
			name: "empty",
			keys: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FoldLongCompanions(tt.keys))
		})
	}
}

func TestNormalize(t *testing.T) {
	p := List{"v", "n_lowBits", "v", "n_highBits", "n_lowBits"}
	require.Equal(t, []string{"v", "n"}, Normalize(p))
}
