package recommend

import (
	"net/url"
	"regexp"
)

var videoIDRe = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`)

func watchURLForID(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + id
}

// MusicSearchURL builds the YouTube Music search page URL for a query.
func MusicSearchURL(query string) string {
	return "https://music.youtube.com/search?q=" + url.QueryEscape(query)
}

// ExtractVideoIDs pulls 11-character video identifiers out of watch URLs.
// URLs without a v= parameter are silently dropped.
func ExtractVideoIDs(urls []string) []string {
	ids := make([]string, 0, len(urls))
	for _, u := range urls {
		if m := videoIDRe.FindStringSubmatch(u); m != nil {
			ids = append(ids, m[1])
		}
	}
	return ids
}
