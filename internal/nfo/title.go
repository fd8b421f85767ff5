package nfo

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// maxTitleDistance is the edit distance still treated as the same title
const maxTitleDistance = 2

// BestTitleMatch picks the candidate whose name is closest to title.
// It fails when no candidate is close enough or two tie for closest.
// A single candidate is always accepted.
func BestTitleMatch(title string, names []string) (int, bool) {
	if len(names) == 1 {
		return 0, true
	}

	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(title))

	best, bestDist, tied := -1, 0, false
	for i, name := range names {
		dist := levenshtein.ComputeDistance(want, fold.String(strings.TrimSpace(name)))
		switch {
		case best < 0 || dist < bestDist:
			best, bestDist, tied = i, dist, false
		case dist == bestDist:
			tied = true
		}
	}

	if best < 0 || tied || bestDist > maxTitleDistance {
		return 0, false
	}
	return best, true
}
