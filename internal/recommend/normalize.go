package recommend

import (
	"regexp"
	"strings"
)

var (
	bracketRe    = regexp.MustCompile(`\[[^\]]*\]`)
	parenNoiseRe = regexp.MustCompile(`(?i)\((?:official|mv|m/v|lyric|audio|teaser|performance|ver\.?|version|shorts|full album|visualizer)[^)]*\)`)
	bareNoiseRe  = regexp.MustCompile(`(?i)\b(official\s*(video)?|mv|m/v|lyric\s*video|audio|teaser|visualizer|shorts)\b`)
	pipeTailRe   = regexp.MustCompile(`\s+\|\s*.*$`)
	spaceRunRe   = regexp.MustCompile(`\s{2,}`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanTitle strips bracketed segments, upload boilerplate ("official video",
// "lyrics", "M/V", ...) and pipe-separated suffixes from a raw video title.
// The result may be empty when the input was pure boilerplate.
func CleanTitle(raw string) string {
	s := bracketRe.ReplaceAllString(raw, "")
	s = parenNoiseRe.ReplaceAllString(s, "")
	s = bareNoiseRe.ReplaceAllString(s, "")
	s = pipeTailRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -|")
	return strings.TrimSpace(s)
}

// BuildQuery collapses a keyword list into a single search string. Commas
// inside keywords are treated as separators. The result is idempotent:
// BuildQuery on its own output is a no-op.
func BuildQuery(keywords []string) string {
	raw := strings.TrimSpace(strings.Join(keywords, " "))
	raw = strings.ReplaceAll(raw, ",", " ")
	raw = whitespaceRe.ReplaceAllString(raw, " ")
	return strings.TrimSpace(raw)
}
