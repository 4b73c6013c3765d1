package batch

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// resolveName finds the index key best matching a free-text name.
// Comparison is diacritic- and case-insensitive. Exact match wins
// outright; otherwise substring containment in either direction, breaking
// ties by minimum Levenshtein distance and then lexicographic key order so
// the result never depends on map iteration order.
func resolveName(input string, index map[string]int64) (string, bool) {
	in := Normalize(input)
	if in == "" {
		return "", false
	}

	for key := range index {
		if Normalize(key) == in {
			return key, true
		}
	}

	best := ""
	bestDist := -1
	for key := range index {
		nk := Normalize(key)
		if nk == "" || (!strings.Contains(nk, in) && !strings.Contains(in, nk)) {
			continue
		}
		d := fuzzy.LevenshteinDistance(in, nk)
		if bestDist < 0 || d < bestDist || (d == bestDist && key < best) {
			best, bestDist = key, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	return best, true
}

// resolvePersonName resolves a person against a squad's member index.
// Beyond resolveName it first tries whole-word matching over the split
// words of each key: a key matches when any word equals the input or
// starts with it. Matches are grouped by person id; within a group the key
// with the most words wins, then the longest, so a full name beats a bare
// first name for the same person. Across different ids the lowest id wins,
// keeping the outcome deterministic.
func resolvePersonName(input string, index map[string]int64) (string, bool) {
	in := Normalize(input)
	if in == "" {
		return "", false
	}

	for key := range index {
		if Normalize(key) == in {
			return key, true
		}
	}

	bestByID := make(map[int64]string)
	for key, id := range index {
		if !wordsMatch(Normalize(key), in) {
			continue
		}
		current, seen := bestByID[id]
		if !seen || betterPersonKey(key, current) {
			bestByID[id] = key
		}
	}
	if len(bestByID) > 0 {
		ids := make([]int64, 0, len(bestByID))
		for id := range bestByID {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return bestByID[ids[0]], true
	}

	return resolveName(input, index)
}

// wordsMatch reports whether any word of key equals or starts with input
func wordsMatch(normalizedKey, normalizedInput string) bool {
	for _, word := range strings.Fields(normalizedKey) {
		if word == normalizedInput || strings.HasPrefix(word, normalizedInput) {
			return true
		}
	}
	return false
}

// betterPersonKey prefers more words, then longer strings, then
// lexicographic order.
func betterPersonKey(candidate, current string) bool {
	cw, kw := len(strings.Fields(candidate)), len(strings.Fields(current))
	if cw != kw {
		return cw > kw
	}
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return candidate < current
}
