package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Privacy values accepted by the playlist endpoint.
const (
	PrivacyPrivate  = "PRIVATE"
	PrivacyPublic   = "PUBLIC"
	PrivacyUnlisted = "UNLISTED"
)

// PlaylistRequest describes one playlist to create.
type PlaylistRequest struct {
	Title       string
	Description string
	VideoURLs   []string
	Privacy     string
}

// PlaylistPublisher creates playlists through the authenticated YouTube
// Music innertube endpoint. Authentication headers (Cookie, Authorization)
// are loaded from a JSON file captured from a logged-in browser session.
type PlaylistPublisher struct {
	AuthHeaderPath string
	Timeout        time.Duration

	// BaseURL overrides the music.youtube.com origin, for tests.
	BaseURL string
}

// Create makes the playlist and appends every video ID extracted from the
// request URLs. URLs without a recognizable ID are dropped; an empty ID list
// still creates the (empty) playlist. Returns the new playlist's ID.
func (p *PlaylistPublisher) Create(ctx context.Context, req PlaylistRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", wrapCategory(CategoryInvalidInput, errors.New("playlist title is empty"))
	}
	privacy, err := normalizePrivacy(req.Privacy)
	if err != nil {
		return "", err
	}
	headers, err := loadAuthHeaders(p.AuthHeaderPath)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"context":       musicContext(),
		"title":         req.Title,
		"description":   req.Description,
		"privacyStatus": privacy,
	}
	if ids := ExtractVideoIDs(req.VideoURLs); len(ids) > 0 {
		payload["videoIds"] = ids
	}

	endpoint := p.baseURL() + "/youtubei/v1/playlist/create?alt=json"
	response, err := innertubePost(ctx, endpoint, headers, payload, p.Timeout)
	if err != nil {
		return "", err
	}

	playlistID := getString(response["playlistId"])
	if playlistID == "" {
		return "", wrapCategory(CategoryAPI, errors.New("playlist/create response carried no playlistId"))
	}
	return playlistID, nil
}

func (p *PlaylistPublisher) baseURL() string {
	if p.BaseURL != "" {
		return strings.TrimSuffix(p.BaseURL, "/")
	}
	return "https://music.youtube.com"
}

func normalizePrivacy(privacy string) (string, error) {
	if privacy == "" {
		return PrivacyPrivate, nil
	}
	switch normalized := strings.ToUpper(strings.TrimSpace(privacy)); normalized {
	case PrivacyPrivate, PrivacyPublic, PrivacyUnlisted:
		return normalized, nil
	default:
		return "", wrapCategory(CategoryInvalidInput, fmt.Errorf("invalid privacy %q (use PRIVATE, PUBLIC, or UNLISTED)", privacy))
	}
}

// loadAuthHeaders reads the header file produced by copying an authenticated
// request out of the browser. A missing or cookie-less file is a credentials
// failure, surfaced before any network call.
func loadAuthHeaders(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapCategory(CategoryCredentials, fmt.Errorf("reading auth headers %s: %w", path, err))
	}
	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, wrapCategory(CategoryCredentials, fmt.Errorf("parsing auth headers %s: %w", path, err))
	}
	if headerValue(headers, "Cookie") == "" {
		return nil, wrapCategory(CategoryCredentials, fmt.Errorf("auth headers %s carry no Cookie", path))
	}
	return headers, nil
}

func headerValue(headers map[string]string, name string) string {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}

func musicContext() map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":    "WEB_REMIX",
			"clientVersion": "1.20240101.01.00",
			"hl":            "en",
		},
	}
}
