package topology

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance is the largest edit distance still offered as a suggestion.
const maxSuggestionDistance = 3

// Suggest returns the candidate closest to input, compared case-insensitively,
// if it is within a small edit distance.
func Suggest(input string, candidates []string) (string, bool) {
	if input == "" {
		return "", false
	}

	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(input), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
