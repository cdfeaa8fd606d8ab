package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"
)

func musicItem(videoID, title, artist string) map[string]any {
	return map[string]any{
		"musicResponsiveListItemRenderer": map[string]any{
			"playlistItemData": map[string]any{"videoId": videoID},
			"flexColumns": []any{
				map[string]any{
					"musicResponsiveListItemFlexColumnRenderer": map[string]any{
						"text": map[string]any{"runs": []any{
							map[string]any{"text": title},
						}},
					},
				},
				map[string]any{
					"musicResponsiveListItemFlexColumnRenderer": map[string]any{
						"text": map[string]any{"runs": []any{
							map[string]any{
								"text": artist,
								"navigationEndpoint": map[string]any{
									"browseEndpoint": map[string]any{
										"browseEndpointContextSupportedConfigs": map[string]any{
											"browseEndpointContextMusicConfig": map[string]any{
												"pageType": "MUSIC_PAGE_TYPE_ARTIST",
											},
										},
									},
								},
							},
						}},
					},
				},
			},
		},
	}
}

func searchResponse(items ...map[string]any) map[string]any {
	contents := make([]any, len(items))
	for i, item := range items {
		contents[i] = item
	}
	return map[string]any{
		"contents": map[string]any{
			"tabbedSearchResultsRenderer": map[string]any{
				"musicShelfRenderer": map[string]any{
					"contents": contents,
				},
			},
		},
	}
}

func TestParseMusicItems(t *testing.T) {
	payload := searchResponse(
		musicItem("aaaaaaaaaaa", "Good Day", "IU"),
		musicItem("bbbbbbbbbbb", "Dynamite", "BTS"),
	)
	videos := parseMusicItems(payload, 10)
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].ID != "aaaaaaaaaaa" || videos[0].Title != "Good Day" || videos[0].Channel != "IU" {
		t.Fatalf("unexpected first video %+v", videos[0])
	}
	if videos[1].Channel != "BTS" {
		t.Fatalf("unexpected artist %q", videos[1].Channel)
	}
}

func TestParseMusicItemsLimit(t *testing.T) {
	payload := searchResponse(
		musicItem("aaaaaaaaaaa", "One", "A"),
		musicItem("bbbbbbbbbbb", "Two", "B"),
		musicItem("ccccccccccc", "Three", "C"),
	)
	videos := parseMusicItems(payload, 2)
	if len(videos) != 2 {
		t.Fatalf("expected limit 2, got %d", len(videos))
	}
}

func TestParseMusicItemsSkipsDuplicatesAndBlanks(t *testing.T) {
	noID := map[string]any{
		"musicResponsiveListItemRenderer": map[string]any{
			"flexColumns": []any{},
		},
	}
	payload := searchResponse(
		musicItem("aaaaaaaaaaa", "One", "A"),
		musicItem("aaaaaaaaaaa", "One", "A"),
		noID,
	)
	videos := parseMusicItems(payload, 10)
	if len(videos) != 1 {
		t.Fatalf("expected 1 unique video, got %d", len(videos))
	}
}

func TestParseMusicItemsEmptyPayload(t *testing.T) {
	if videos := parseMusicItems(map[string]any{}, 10); len(videos) != 0 {
		t.Fatalf("expected no videos, got %d", len(videos))
	}
}

func TestParseMusicItemsStableAcrossRuns(t *testing.T) {
	payload := map[string]any{
		"contents": map[string]any{
			"alphaShelf": map[string]any{"contents": []any{musicItem("aaaaaaaaaaa", "One", "A")}},
			"omegaShelf": map[string]any{"contents": []any{musicItem("bbbbbbbbbbb", "Two", "B")}},
		},
	}
	for i := 0; i < 50; i++ {
		videos := parseMusicItems(payload, 1)
		if len(videos) != 1 || videos[0].ID != "aaaaaaaaaaa" {
			t.Fatalf("run %d: expected the alphaShelf item, got %+v", i, videos)
		}
	}
}

const musicPage = `<html><script>ytcfg.set({"INNERTUBE_API_KEY":"test-key","INNERTUBE_CONTEXT":{"client":{"clientName":"WEB_REMIX","clientVersion":"1.0"}}});</script></html>`

func newFakeMusicSite(t *testing.T, page string, searchStatus int, searchBody []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, page)
		case "/youtubei/v1/search":
			w.WriteHeader(searchStatus)
			_, _ = w.Write(searchBody)
		default:
			http.NotFound(w, r)
		}
	}))
}

type stubResolver struct {
	views map[string]int
	err   error
}

func (s stubResolver) GetVideoContext(_ context.Context, id string) (*youtube.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &youtube.Video{ID: id, Views: s.views[id]}, nil
}

func TestMusicClientSearch(t *testing.T) {
	body, err := json.Marshal(searchResponse(
		musicItem("aaaaaaaaaaa", "Good Day", "IU"),
		musicItem("bbbbbbbbbbb", "Dynamite", "BTS"),
	))
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	server := newFakeMusicSite(t, musicPage, http.StatusOK, body)
	defer server.Close()

	client := &MusicClient{
		BaseURL:  server.URL,
		Resolver: stubResolver{views: map[string]int{"aaaaaaaaaaa": 10, "bbbbbbbbbbb": 200}},
	}
	videos, err := client.Search(context.Background(), "k-pop", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	// Enriched counts put Dynamite first.
	if videos[0].ID != "bbbbbbbbbbb" || videos[0].Views != 200 {
		t.Fatalf("unexpected top video %+v", videos[0])
	}
	if videos[0].Title != "Dynamite" || videos[0].Channel != "BTS" {
		t.Fatalf("unexpected top metadata %+v", videos[0])
	}
	if videos[1].ID != "aaaaaaaaaaa" || videos[1].Views != 10 {
		t.Fatalf("unexpected second video %+v", videos[1])
	}
}

func TestMusicClientSearchKeepsUnresolvedVideos(t *testing.T) {
	body, err := json.Marshal(searchResponse(musicItem("aaaaaaaaaaa", "Good Day", "IU")))
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	server := newFakeMusicSite(t, musicPage, http.StatusOK, body)
	defer server.Close()

	client := &MusicClient{
		BaseURL:  server.URL,
		Resolver: stubResolver{err: errors.New("video unavailable")},
	}
	videos, err := client.Search(context.Background(), "k-pop", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "aaaaaaaaaaa" || videos[0].Views != 0 {
		t.Fatalf("unresolved video should survive with zero views, got %+v", videos)
	}
}

func TestMusicClientSearchMissingConfig(t *testing.T) {
	server := newFakeMusicSite(t, "<html>no config here</html>", http.StatusOK, nil)
	defer server.Close()

	client := &MusicClient{BaseURL: server.URL}
	_, err := client.Search(context.Background(), "k-pop", 10)
	if err == nil {
		t.Fatalf("expected error for page without ytcfg data")
	}
	if CategoryOf(err) != CategoryAPI {
		t.Fatalf("expected api category, got %s", CategoryOf(err))
	}
}

func TestMusicClientSearchEndpointError(t *testing.T) {
	server := newFakeMusicSite(t, musicPage, http.StatusForbidden, []byte("access denied"))
	defer server.Close()

	client := &MusicClient{BaseURL: server.URL}
	_, err := client.Search(context.Background(), "k-pop", 10)
	if err == nil {
		t.Fatalf("expected error for rejected search request")
	}
	if CategoryOf(err) != CategoryAPI {
		t.Fatalf("expected api category, got %s", CategoryOf(err))
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("error should carry status and body: %v", err)
	}
}
