package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
)

// songFilterParams narrows an innertube search to song results.
const songFilterParams = "EgWKAQIIAWoKEAkQBRAKEAMQBA=="

var ytcfgRe = regexp.MustCompile(`(?s)ytcfg\.set\((\{.*?\})\);`)

type innertubeConfig struct {
	apiKey  string
	context map[string]any
}

// VideoResolver resolves full metadata for one video ID. *youtube.Client
// satisfies this interface; decoupling from the concrete type lets tests
// substitute a fake.
type VideoResolver interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
}

var _ VideoResolver = (*youtube.Client)(nil)

// MusicClient is a keyless search backend that talks to the YouTube Music
// innertube API directly and fills in view counts per video afterwards.
type MusicClient struct {
	Timeout time.Duration

	// BaseURL overrides the music.youtube.com origin, for tests.
	BaseURL string

	// Resolver overrides the client used for view-count enrichment.
	Resolver VideoResolver
}

func (c *MusicClient) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	cfg, err := fetchInnertubeConfig(ctx, c.baseURL(), c.Timeout)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"context": cfg.context,
		"query":   query,
		"params":  songFilterParams,
	}
	endpoint := c.baseURL() + "/youtubei/v1/search?key=" + cfg.apiKey
	response, err := innertubePost(ctx, endpoint, nil, payload, c.Timeout)
	if err != nil {
		return nil, err
	}

	videos := parseMusicItems(response, maxResults)
	if len(videos) == 0 {
		return nil, nil
	}
	videos = c.enrichViews(ctx, videos)
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Views > videos[j].Views
	})
	return videos, nil
}

func (c *MusicClient) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return "https://music.youtube.com"
}

// enrichViews resolves per-video view counts, which the search response only
// carries as display text. Videos that fail to resolve keep a zero count
// rather than dropping out of the result set.
func (c *MusicClient) enrichViews(ctx context.Context, videos []Video) []Video {
	resolver := c.Resolver
	if resolver == nil {
		resolver = &youtube.Client{HTTPClient: newHTTPClient(c.Timeout)}
	}
	out := make([]Video, 0, len(videos))
	for _, v := range videos {
		video, err := resolver.GetVideoContext(ctx, v.ID)
		if err != nil {
			out = append(out, v)
			continue
		}
		v.Views = int64(video.Views)
		if v.Title == "" {
			v.Title = video.Title
		}
		if v.Channel == "" {
			v.Channel = video.Author
		}
		out = append(out, v)
	}
	return out
}

// fetchInnertubeConfig scrapes the INNERTUBE_API_KEY and request context from
// the ytcfg.set blob embedded in the YouTube Music page.
func fetchInnertubeConfig(ctx context.Context, origin string, timeout time.Duration) (innertubeConfig, error) {
	client := newHTTPClient(timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/", nil)
	if err != nil {
		return innertubeConfig{}, wrapCategory(CategoryInvalidInput, err)
	}
	req.Header.Set("User-Agent", musicUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return innertubeConfig{}, wrapCategory(CategoryNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return innertubeConfig{}, wrapCategory(CategoryAPI, fmt.Errorf("unexpected response %d from YouTube Music", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return innertubeConfig{}, wrapCategory(CategoryNetwork, err)
	}

	match := ytcfgRe.FindSubmatch(body)
	if match == nil {
		return innertubeConfig{}, wrapCategory(CategoryAPI, errors.New("ytcfg.set data not found in YouTube Music page"))
	}

	var cfg struct {
		APIKey  string         `json:"INNERTUBE_API_KEY"`
		Context map[string]any `json:"INNERTUBE_CONTEXT"`
	}
	if err := json.Unmarshal(match[1], &cfg); err != nil {
		return innertubeConfig{}, wrapCategory(CategoryAPI, err)
	}
	if cfg.APIKey == "" || len(cfg.Context) == 0 {
		return innertubeConfig{}, wrapCategory(CategoryAPI, errors.New("missing innertube config in YouTube Music page"))
	}

	return innertubeConfig{apiKey: cfg.APIKey, context: cfg.Context}, nil
}

func innertubePost(ctx context.Context, endpoint string, headers map[string]string, payload map[string]any, timeout time.Duration) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, wrapCategory(CategoryInvalidInput, err)
	}

	client := newHTTPClient(timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, wrapCategory(CategoryInvalidInput, err)
	}
	req.Header.Set("User-Agent", musicUserAgent)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapCategory(CategoryNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, wrapCategory(CategoryAPI, fmt.Errorf("unexpected response %d from %s: %s", resp.StatusCode, resp.Request.URL.Path, strings.TrimSpace(string(body))))
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, wrapCategory(CategoryAPI, err)
	}
	return decoded, nil
}

// parseMusicItems walks the search response breadth-first for
// musicResponsiveListItemRenderer nodes and converts them to raw Videos.
// View counts are left at zero; the caller enriches them.
func parseMusicItems(payload map[string]any, limit int) []Video {
	videos := make([]Video, 0, limit)
	seen := make(map[string]bool, limit)

	queue := []any{payload}
	for len(queue) > 0 && len(videos) < limit {
		node := queue[0]
		queue = queue[1:]

		switch value := node.(type) {
		case map[string]any:
			if renderer := asMap(value["musicResponsiveListItemRenderer"]); renderer != nil {
				if v, ok := parseMusicItem(renderer); ok && !seen[v.ID] {
					seen[v.ID] = true
					videos = append(videos, v)
				}
				continue
			}
			// Map children in key order, so truncation at the limit is
			// deterministic for identical payloads.
			keys := make([]string, 0, len(value))
			for key := range value {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				switch child := value[key].(type) {
				case map[string]any, []any:
					queue = append(queue, child)
				}
			}
		case []any:
			for _, child := range value {
				switch child.(type) {
				case map[string]any, []any:
					queue = append(queue, child)
				}
			}
		}
	}
	return videos
}

func parseMusicItem(renderer map[string]any) (Video, bool) {
	videoID := getString(getPath(renderer, "playlistItemData", "videoId"))
	if videoID == "" {
		videoID = findVideoIDFromRuns(renderer)
	}
	if videoID == "" {
		return Video{}, false
	}

	title := columnText(renderer, 0)
	if title == "" {
		title = findRunTextWithWatchEndpoint(renderer)
	}
	channel := findRunTextByPageType(renderer, "MUSIC_PAGE_TYPE_ARTIST")
	if channel == "" {
		channel = columnText(renderer, 1)
	}

	return Video{ID: videoID, Title: title, Channel: channel}, true
}

func findRunTextByPageType(renderer map[string]any, pageType string) string {
	for _, group := range []string{"flexColumns", "secondaryFlexColumns"} {
		for _, col := range asSlice(renderer[group]) {
			colRenderer := asMap(asMap(col)["musicResponsiveListItemFlexColumnRenderer"])
			if colRenderer == nil {
				continue
			}
			for _, run := range asSlice(getPath(colRenderer, "text", "runs")) {
				runMap := asMap(run)
				if getString(getPath(runMap, "navigationEndpoint", "browseEndpoint", "browseEndpointContextSupportedConfigs", "browseEndpointContextMusicConfig", "pageType")) == pageType {
					if text := getString(runMap["text"]); text != "" {
						return text
					}
				}
			}
		}
	}
	return ""
}

func findRunTextWithWatchEndpoint(renderer map[string]any) string {
	for _, group := range []string{"flexColumns", "secondaryFlexColumns"} {
		for _, col := range asSlice(renderer[group]) {
			colRenderer := asMap(asMap(col)["musicResponsiveListItemFlexColumnRenderer"])
			if colRenderer == nil {
				continue
			}
			for _, run := range asSlice(getPath(colRenderer, "text", "runs")) {
				runMap := asMap(run)
				if getString(getPath(runMap, "navigationEndpoint", "watchEndpoint", "videoId")) != "" {
					if text := getString(runMap["text"]); text != "" {
						return text
					}
				}
			}
		}
	}
	return ""
}

func findVideoIDFromRuns(renderer map[string]any) string {
	for _, group := range []string{"flexColumns", "secondaryFlexColumns"} {
		for _, col := range asSlice(renderer[group]) {
			colRenderer := asMap(asMap(col)["musicResponsiveListItemFlexColumnRenderer"])
			if colRenderer == nil {
				continue
			}
			for _, run := range asSlice(getPath(colRenderer, "text", "runs")) {
				if videoID := getString(getPath(asMap(run), "navigationEndpoint", "watchEndpoint", "videoId")); videoID != "" {
					return videoID
				}
			}
		}
	}
	return ""
}

func columnText(renderer map[string]any, index int) string {
	cols := asSlice(renderer["flexColumns"])
	if index < 0 || index >= len(cols) {
		return ""
	}
	colRenderer := asMap(asMap(cols[index])["musicResponsiveListItemFlexColumnRenderer"])
	if colRenderer == nil {
		return ""
	}
	return extractText(colRenderer["text"])
}

func extractText(value any) string {
	textMap := asMap(value)
	if textMap == nil {
		if s, ok := value.(string); ok {
			return s
		}
		return ""
	}
	if runs := asSlice(textMap["runs"]); len(runs) > 0 {
		var b strings.Builder
		for _, run := range runs {
			if text, ok := asMap(run)["text"].(string); ok {
				b.WriteString(text)
			}
		}
		return b.String()
	}
	if s, ok := textMap["simpleText"].(string); ok {
		return s
	}
	return ""
}

func asMap(value any) map[string]any {
	if value == nil {
		return nil
	}
	m, _ := value.(map[string]any)
	return m
}

func asSlice(value any) []any {
	if value == nil {
		return nil
	}
	s, _ := value.([]any)
	return s
}

func getPath(value map[string]any, keys ...string) any {
	var current any = value
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

func getString(value any) string {
	if value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}
