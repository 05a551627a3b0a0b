package classroom

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const suggestMinRatio = .6

// Suggest returns the candidate most similar to key, or "" when none is close enough.
// Comparison is case-insensitive, ties go to the alphabetically first candidate.
func Suggest(key string, candidates []string) string {
	if key == "" || len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	a := strings.Split(strings.ToLower(key), "")
	var (
		best      string
		bestRatio float64
	)
	for _, cand := range sorted {
		if cand == key {
			continue
		}
		m := difflib.NewMatcher(a, strings.Split(strings.ToLower(cand), ""))
		if m.QuickRatio() < suggestMinRatio {
			continue
		}
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = cand, r
		}
	}
	if bestRatio < suggestMinRatio {
		return ""
	}
	return best
}
