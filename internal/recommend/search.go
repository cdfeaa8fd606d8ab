package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SearchClient returns a bounded list of raw video records for a query.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]Video, error)
}

const (
	dataAPIBaseURL  = "https://www.googleapis.com/youtube/v3"
	musicCategoryID = "10"
	maxPageSize     = 50
)

// DataAPIClient searches music videos through the YouTube Data API v3. The
// API key is injected, never read from the environment here, so the client
// stays testable without process-wide state.
type DataAPIClient struct {
	APIKey  string
	Region  string
	Order   string
	Timeout time.Duration

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

func (c *DataAPIClient) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, wrapCategory(CategoryCredentials, errors.New("YOUTUBE_API_KEY is not set"))
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	order := c.Order
	if order == "" {
		order = "viewCount"
	}
	region := c.Region
	if region == "" {
		region = "KR"
	}

	searchParams := url.Values{}
	searchParams.Set("key", c.APIKey)
	searchParams.Set("part", "snippet")
	searchParams.Set("q", query)
	searchParams.Set("type", "video")
	searchParams.Set("videoCategoryId", musicCategoryID)
	searchParams.Set("maxResults", strconv.Itoa(maxResults))
	searchParams.Set("order", order)
	searchParams.Set("regionCode", region)
	searchParams.Set("safeSearch", "none")

	var searchPayload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, c.baseURL()+"/search", searchParams, &searchPayload); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(searchPayload.Items))
	for _, item := range searchPayload.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	videosParams := url.Values{}
	videosParams.Set("key", c.APIKey)
	videosParams.Set("part", "snippet,contentDetails,statistics")
	videosParams.Set("id", strings.Join(ids, ","))
	videosParams.Set("maxResults", strconv.Itoa(maxResults))

	var videosPayload struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, c.baseURL()+"/videos", videosParams, &videosPayload); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(videosPayload.Items))
	for _, item := range videosPayload.Items {
		views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		videos = append(videos, Video{
			ID:      item.ID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
			Views:   views,
		})
	}

	// The API already orders by popularity; re-sort locally so the contract
	// holds regardless of the order parameter.
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Views > videos[j].Views
	})
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

func (c *DataAPIClient) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return dataAPIBaseURL
}

func (c *DataAPIClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	client := c.HTTPClient
	if client == nil {
		client = newHTTPClient(c.Timeout)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return wrapCategory(CategoryInvalidInput, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return wrapCategory(CategoryNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return wrapCategory(CategoryAPI, fmt.Errorf("youtube api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapCategory(CategoryAPI, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
