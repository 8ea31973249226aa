// Package match implements the scoring core of the matching engine: string
// similarity primitives, the four independent signal scorers, and the
// composite aggregator that turns a report pair into a bounded confidence
// score with an ordered reason list.
//
// The package is deliberately small and dependency-free, in the same spirit
// as a retrieval index: no logging (callers decide how/what to log), no
// stores, deterministic output for identical input, safe for concurrent use.
package match

import "strings"

// Jaccard returns the word-set similarity of two strings in [0,1]:
// |A ∩ B| / |A ∪ B| over lower-cased, whitespace-tokenized word sets.
// Two empty (or whitespace-only) strings are defined as fully similar.
func Jaccard(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 && len(bs) == 0 {
		return 1.0
	}
	if len(as) == 0 || len(bs) == 0 {
		return 0.0
	}

	inter := 0
	for t := range as {
		if _, ok := bs[t]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	return float64(inter) / float64(union)
}

// tokenSet lower-cases s and splits it on whitespace into a set.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// LevenshteinDistance computes the edit distance between two strings,
// operating on runes so multi-byte input is counted per character.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row rolling DP keeps allocation proportional to the shorter side.
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(
				prev[j]+1,      // deletion
				cur[j-1]+1,     // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// LevenshteinSimilarity converts edit distance into a percentage in [0,100]:
// 100 * (1 - distance/maxLen). Equal strings yield 100; a pair of empty
// strings is defined as 100.
func LevenshteinSimilarity(a, b string) int {
	if a == b {
		return 100
	}
	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}
	d := LevenshteinDistance(a, b)
	sim := 100 * (1 - float64(d)/float64(maxLen))
	if sim < 0 {
		sim = 0
	}
	return int(sim)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
