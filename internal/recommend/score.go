package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	keywordWeight    = 1.5
	popularityWeight = 0.7
	penaltyWeight    = 0.8
)

var penaltyTerms = []string{"live", "cover", "remix"}

var penaltyRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(penaltyTerms))
	for _, term := range penaltyTerms {
		res[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return res
}()

// Preferences captures the user's keyword list in matching form. Built once
// per session and treated as immutable afterwards.
type Preferences struct {
	Keywords      []string
	keywordsLower []string
}

// NewPreferences trims and filters the keyword list, keeping a lowercased
// copy for matching. Order and duplicates are preserved.
func NewPreferences(keywords []string) Preferences {
	kws := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	lower := make([]string, len(kws))
	for i, k := range kws {
		lower[i] = strings.ToLower(k)
	}
	return Preferences{Keywords: kws, keywordsLower: lower}
}

func (p Preferences) wantsPenaltyTerm() bool {
	for _, term := range penaltyTerms {
		for _, kw := range p.keywordsLower {
			if kw == term {
				return true
			}
		}
	}
	return false
}

// Score blends keyword relevance, log-scaled popularity, and penalty terms
// into a single value. It is a pure function of its inputs: the same track
// and preferences always produce the identical float.
func Score(t Track, prefs Preferences) float64 {
	title := strings.ToLower(t.SongTitle)
	if title == "" {
		title = strings.ToLower(t.Title)
	}
	artist := strings.ToLower(t.Artist)
	if artist == "" {
		artist = strings.ToLower(t.Channel)
	}
	text := title + " " + artist

	var kwScore float64
	for _, kw := range prefs.keywordsLower {
		if kw == "" {
			continue
		}
		if strings.Contains(text, kw) {
			kwScore += 2
		}
		if strings.Contains(title, kw) {
			kwScore++
		}
		if strings.Contains(artist, kw) {
			kwScore++
		}
	}

	popScore := math.Log10(float64(t.Views) + 1)

	// Live/cover/remix uploads are penalized unless the user asked for them.
	var penalty float64
	if !prefs.wantsPenaltyTerm() {
		for _, term := range penaltyTerms {
			if penaltyRes[term].MatchString(text) {
				penalty++
			}
		}
	}

	return kwScore*keywordWeight + popScore*popularityWeight - penalty*penaltyWeight
}

// Rank scores every track and sorts descending by score. The sort is stable:
// ties keep their original relative order, and every input track appears in
// the output exactly once.
func Rank(tracks []Track, prefs Preferences) []Recommendation {
	ranked := make([]Recommendation, len(tracks))
	for i, t := range tracks {
		ranked[i] = Recommendation{Track: t, Score: Score(t, prefs)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// DisplayScore rounds the full-precision score to three decimals for output.
// Sorting always uses the full-precision value.
func (r Recommendation) DisplayScore() float64 {
	return math.Round(r.Score*1000) / 1000
}
