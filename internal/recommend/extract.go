package recommend

import (
	"regexp"
	"strings"
)

var (
	hyphenSplitRe = regexp.MustCompile(`^\s*(.+?)\s*-\s*(.+?)\s*$`)
	dashSplitRe   = regexp.MustCompile(`^\s*(.+?)\s*—\s*(.+?)\s*$`)
)

const topicSuffix = " - topic"

// ExtractTitleArtist splits a raw video title into (song title, artist).
// Separator patterns are tried in order: "artist - title" with a plain
// hyphen, then the same shape with an em-dash. When neither yields two
// non-empty cleaned halves, the channel name stands in for the artist, with
// YouTube's auto-generated " - Topic" suffix stripped. The function never
// fails: completely unparsable input falls back to the trimmed originals.
func ExtractTitleArtist(videoTitle, channelTitle string) (string, string) {
	t := CleanTitle(videoTitle)
	c := strings.TrimSpace(channelTitle)

	for _, re := range []*regexp.Regexp{hyphenSplitRe, dashSplitRe} {
		m := re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		artist := CleanTitle(m[1])
		title := CleanTitle(m[2])
		if artist != "" && title != "" {
			return title, artist
		}
	}

	if strings.HasSuffix(strings.ToLower(c), topicSuffix) {
		c = strings.TrimSpace(c[:len(c)-len(topicSuffix)])
	}
	if t != "" && c != "" {
		return t, c
	}
	if t == "" {
		t = strings.TrimSpace(videoTitle)
	}
	if c == "" {
		c = strings.TrimSpace(channelTitle)
	}
	return t, c
}
