// Package fuzzy scores palette entries against a typed filter query.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Match describes how well a target matched a query.
type Match struct {
	// Score is higher for better matches; always > 0 for a reported match.
	Score float64
	// Indices are the rune positions of target that matched, for
	// highlighting.
	Indices []int
}

const (
	baseScore        = 1.0
	adjacencyBonus   = 2.0
	wordStartBonus   = 3.0
	firstCharBonus   = 2.0
	gapPenaltyFactor = 0.97
)

// Score matches query as a case-insensitive subsequence of target.
// Adjacent matches and matches on word starts score higher; long gaps decay
// the score. An empty query matches everything with a neutral score.
func Score(query, target string) (Match, bool) {
	if query == "" {
		return Match{Score: baseScore}, true
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))
	raw := []rune(target)

	var (
		indices []int
		score   float64
		qi      int
		lastHit = -2
	)
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}

		hit := baseScore
		switch {
		case ti == 0:
			hit += firstCharBonus + wordStartBonus
		case isWordStart(raw, ti):
			hit += wordStartBonus
		}
		if ti == lastHit+1 {
			hit += adjacencyBonus
		}

		// Decay for the gap skipped since the previous hit.
		if lastHit >= 0 && ti > lastHit+1 {
			for g := 0; g < ti-lastHit-1; g++ {
				score *= gapPenaltyFactor
			}
		}

		score += hit
		indices = append(indices, ti)
		lastHit = ti
		qi++
	}

	if qi < len(q) {
		return Match{}, false
	}
	return Match{Score: score, Indices: indices}, true
}

// isWordStart reports whether position i of target starts a word: it follows
// a separator, or is an upper-case rune after a lower-case one.
func isWordStart(target []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := target[i-1]
	if prev == ' ' || prev == '.' || prev == '_' || prev == '-' || prev == '/' {
		return true
	}
	return unicode.IsUpper(target[i]) && unicode.IsLower(prev)
}

// Ranked is one entry of a ranked filter result.
type Ranked struct {
	// Index is the position of the target in the input slice.
	Index int
	Match Match
}

// Rank filters targets by query and returns the surviving indices ordered by
// descending score. Equal scores keep input order.
func Rank(query string, targets []string) []Ranked {
	var results []Ranked
	for i, target := range targets {
		if m, ok := Score(query, target); ok {
			results = append(results, Ranked{Index: i, Match: m})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})
	return results
}
