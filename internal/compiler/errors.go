package compiler

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ParseError reports a line that matches none of the grammars. The whole
// program is rejected; no partial tree is produced.
type ParseError struct {
	Message string
	// Line is the 1-based line number of the offending line.
	Line int
	// Text is the offending line exactly as written.
	Text string
	// Suggestion is the closest valid line, or empty when nothing is close.
	Suggestion string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// maxSuggestDistance bounds the edit distance for the fallback suggestion.
const maxSuggestDistance = 3

// suggest finds the valid line closest to a normalized offending line. Lines
// that contain the input as a subsequence win; otherwise the nearest line by
// edit distance is used when it is close enough.
func suggest(text string) string {
	if text == "" {
		return ""
	}

	ranks := fuzzy.RankFindNormalizedFold(text, validLines)
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		})
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range validLines {
		if d := fuzzy.LevenshteinDistance(text, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
