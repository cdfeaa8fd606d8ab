package recommend

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// editDistanceCutoff is the near-duplicate threshold for titles and artists.
const editDistanceCutoff = 3

// Dedupe collapses near-duplicate uploads of the same song, keeping the
// highest-ranked copy. It runs after Rank, never inside it, so ranking
// itself stays total over its input.
func Dedupe(ranked []Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		duplicate := false
		for _, kept := range out {
			if sameTrack(kept.Track, r.Track) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, r)
		}
	}
	return out
}

func sameTrack(a, b Track) bool {
	titleDist := levenshtein.ComputeDistance(matchKey(a.SongTitle), matchKey(b.SongTitle))
	artistDist := levenshtein.ComputeDistance(matchKey(a.Artist), matchKey(b.Artist))
	return titleDist < editDistanceCutoff && artistDist < editDistanceCutoff
}

func matchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
