// Package discovery supplies the candidate keys for bulk classification.
//
// The codec never enumerates a store itself. A Provider yields whatever keys
// the host platform can list, possibly with duplicates and with the companion
// keys that hold Long halves; Normalize turns that into one key per value.
package discovery

import (
	"iter"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/arloliu/typedkv/encoding"
)

// Provider yields candidate keys.
type Provider interface {
	Keys() iter.Seq[string]
}

// List is a fixed set of keys.
type List []string

// Keys implements Provider.
func (l List) Keys() iter.Seq[string] {
	return slices.Values(l)
}

// Func adapts a function to Provider.
type Func func() iter.Seq[string]

// Keys implements Provider.
func (f Func) Keys() iter.Seq[string] {
	return f()
}

// Unique yields each key of seq once, in first-seen order.
func Unique(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := mapset.NewThreadUnsafeSet[string]()
		for key := range seq {
			if !seen.Add(key) {
				continue
			}
			if !yield(key) {
				return
			}
		}
	}
}

// FoldLongCompanions replaces each "<k>_lowBits"/"<k>_highBits" pair with k.
//
// A companion whose partner is missing from keys is kept as is. The base key
// takes the position of whichever companion comes first and is yielded once,
// even if keys also lists it directly.
func FoldLongCompanions(keys []string) []string {
	all := mapset.NewThreadUnsafeSet(keys...)
	emitted := mapset.NewThreadUnsafeSetWithSize[string](len(keys))

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key
		if base, ok := companionBase(key, all); ok {
			name = base
		}

		if emitted.Add(name) {
			out = append(out, name)
		}
	}

	return out
}

// Normalize collects the provider's keys with duplicates removed and Long
// companions folded.
func Normalize(p Provider) []string {
	return FoldLongCompanions(slices.Collect(Unique(p.Keys())))
}

// companionBase returns the base key of a Long companion whose partner is in all.
func companionBase(key string, all mapset.Set[string]) (string, bool) {
	if base, ok := strings.CutSuffix(key, encoding.LowBitsSuffix); ok {
		return base, all.Contains(encoding.HighBitsKey(base))
	}
	if base, ok := strings.CutSuffix(key, encoding.HighBitsSuffix); ok {
		return base, all.Contains(encoding.LowBitsKey(base))
	}

	return "", false
}
