package commands

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// SuggestionCutoff is the minimum similarity for a candidate to be suggested
const SuggestionCutoff = 0.6

var folder = cases.Fold()

// Similarity scores two strings in [0, 1] after case folding.
// It is (len(a)+len(b)-distance) / (len(a)+len(b)) over runes, so a single typo in a
// short word still scores well while unrelated words of equal length land at or below 0.5.
func Similarity(a, b string) float64 {
	a, b = folder.String(a), folder.String(b)
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(total-dist) / float64(total)
}

// ClosestMatch returns the best scoring candidate at or above SuggestionCutoff.
// Ties keep the earliest candidate.
func ClosestMatch(token string, candidates []string) (string, bool) {
	if token == "" {
		return "", false
	}

	best, bestScore := "", 0.0
	for _, candidate := range candidates {
		score := Similarity(token, candidate)
		if score >= SuggestionCutoff && score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, best != ""
}
