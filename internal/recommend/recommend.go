package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Options describes CLI behavior for a recommendation run.
type Options struct {
	MaxResults          int
	Region              string
	Order               string
	Backend             string
	APIKey              string
	AuthHeaderPath      string
	PlaylistTitle       string
	PlaylistDescription string
	Privacy             string
	Unique              bool
	JSON                bool
	Quiet               bool
	Timeout             time.Duration
}

// Run executes the full pipeline for one keyword list: build the query,
// search, extract (title, artist) per record, rank against the user's
// preferences, and optionally publish the ranked list as a playlist.
func Run(ctx context.Context, keywords []string, opts Options) error {
	printer := newPrinter(opts)

	query := BuildQuery(keywords)
	if query == "" {
		return wrapCategory(CategoryInvalidInput, errors.New("no keywords provided"))
	}

	searchURL := MusicSearchURL(query)
	printer.Info("query: " + query)
	printer.Info("search url: " + searchURL)
	if opts.JSON {
		emitJSONResult(jsonResult{Type: "query", Query: query, URL: searchURL})
	}

	client, err := newSearchClient(opts)
	if err != nil {
		return err
	}
	videos, err := client.Search(ctx, query, opts.MaxResults)
	if err != nil {
		return printer.Fail("search failed", err)
	}
	if len(videos) == 0 {
		printer.Info("no results found")
		if opts.JSON {
			emitJSONResult(jsonResult{Type: "empty", Query: query})
		}
		return nil
	}

	tracks := make([]Track, len(videos))
	for i, v := range videos {
		tracks[i] = EnrichTrack(v)
	}

	printer.Header("popular results")
	for i, t := range tracks {
		printer.Track(i+1, t)
	}

	prefs := NewPreferences(keywords)
	ranked := Rank(tracks, prefs)
	if opts.Unique {
		ranked = Dedupe(ranked)
	}

	printer.Header("recommendations")
	for i, r := range ranked {
		printer.Recommendation(i+1, r)
		if opts.JSON {
			views := r.Views
			score := r.DisplayScore()
			emitJSONResult(jsonResult{
				Type:      "item",
				Rank:      i + 1,
				ID:        r.ID,
				SongTitle: r.SongTitle,
				Artist:    r.Artist,
				Title:     r.Title,
				Channel:   r.Channel,
				Views:     &views,
				Score:     &score,
				URL:       r.URL,
			})
		}
	}

	if opts.PlaylistTitle != "" {
		urls := make([]string, len(ranked))
		for i, r := range ranked {
			urls[i] = r.URL
		}
		publisher := &PlaylistPublisher{
			AuthHeaderPath: opts.AuthHeaderPath,
			Timeout:        opts.Timeout,
		}
		playlistID, err := publisher.Create(ctx, PlaylistRequest{
			Title:       opts.PlaylistTitle,
			Description: opts.PlaylistDescription,
			VideoURLs:   urls,
			Privacy:     opts.Privacy,
		})
		if err != nil {
			return printer.Fail("playlist creation failed", err)
		}
		printer.Info("created playlist " + playlistID)
		if opts.JSON {
			emitJSONResult(jsonResult{Type: "playlist", PlaylistID: playlistID})
		}
	}
	return nil
}

func newSearchClient(opts Options) (SearchClient, error) {
	switch opts.Backend {
	case "", "api":
		return &DataAPIClient{
			APIKey:  opts.APIKey,
			Region:  opts.Region,
			Order:   opts.Order,
			Timeout: opts.Timeout,
		}, nil
	case "music":
		return &MusicClient{Timeout: opts.Timeout}, nil
	default:
		return nil, wrapCategory(CategoryInvalidInput, fmt.Errorf("unknown backend %q (use api or music)", opts.Backend))
	}
}
