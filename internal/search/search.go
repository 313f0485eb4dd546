// Package search matches typed queries against the names in a column.
package search

import (
	"slices"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// Score greedily assigns each query rune to its earliest occurrence in name
// after the previous assignment, ignoring case. It returns the rune
// positions used, or false as soon as a query rune cannot be placed.
func Score(query, name string) ([]int, bool) {
	target := []rune(name)
	positions := make([]int, 0, len(query))

	next := 0
	for _, q := range query {
		q = unicode.ToLower(q)
		found := -1
		for i := next; i < len(target); i++ {
			if unicode.ToLower(target[i]) == q {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		positions = append(positions, found)
		next = found + 1
	}
	return positions, true
}

// FindBest returns the index of the name whose match positions are
// lexicographically smallest. Earlier names win ties.
func FindBest(query string, names []string) (int, bool) {
	best := -1
	var bestPos []int
	for i, name := range names {
		pos, ok := Score(query, name)
		if !ok {
			continue
		}
		if best < 0 || slices.Compare(pos, bestPos) < 0 {
			best, bestPos = i, pos
		}
	}
	return best, best >= 0
}

// PrefixIndex returns the first name starting with prefix, ignoring case.
func PrefixIndex(prefix string, names []string) (int, bool) {
	lower := strings.ToLower(prefix)
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i, true
		}
	}
	return -1, false
}

// PrefixPositions returns the rune positions a prefix match covers.
func PrefixPositions(prefix string) []int {
	n := len([]rune(prefix))
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// RankPaths orders the paths matching query best first. An empty query
// keeps every path in its original order.
func RankPaths(query string, paths []string) []string {
	if query == "" {
		return append([]string(nil), paths...)
	}

	matches := fuzzy.Find(query, paths)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
