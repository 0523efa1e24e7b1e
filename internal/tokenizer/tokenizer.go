package tokenizer

import (
	"sort"
	"strings"
)

// TrigramSize is the shingle width used by the name index.
const TrigramSize = 3

// GenerateTrigrams lowercases text and returns the set of every overlapping
// 3-character window. Characters are counted as runes and taken literally,
// including spaces and punctuation.
// Text shorter than three characters yields a single-element set holding the
// lowercased text itself, so very short names remain matchable.
func GenerateTrigrams(text string) map[string]struct{} {
	lower := []rune(strings.ToLower(text))
	if len(lower) < TrigramSize {
		return map[string]struct{}{string(lower): {}}
	}

	grams := make(map[string]struct{}, len(lower)-TrigramSize+1)
	for i := 0; i+TrigramSize <= len(lower); i++ {
		grams[string(lower[i:i+TrigramSize])] = struct{}{}
	}
	return grams
}

// SortedTrigrams returns GenerateTrigrams(text) as a sorted slice.
func SortedTrigrams(text string) []string {
	grams := GenerateTrigrams(text)
	result := make([]string, 0, len(grams))
	for g := range grams {
		result = append(result, g)
	}
	sort.Strings(result)
	return result
}
