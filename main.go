package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yunjae-k/tunescout/internal/recommend"
)

func main() {
	var opts recommend.Options

	flag.IntVar(&opts.MaxResults, "max", 10, "maximum number of results (up to 50)")
	flag.StringVar(&opts.Region, "region", "KR", "region code for search results")
	flag.StringVar(&opts.Order, "order", "viewCount", "search order (viewCount, relevance, date, rating)")
	flag.StringVar(&opts.Backend, "backend", "api", "search backend: api (YouTube Data API) or music (keyless)")
	flag.StringVar(&opts.PlaylistTitle, "playlist", "", "create a playlist with this title from the ranked results")
	flag.StringVar(&opts.PlaylistDescription, "desc", "", "playlist description")
	flag.StringVar(&opts.Privacy, "privacy", "PRIVATE", "playlist privacy: PRIVATE, PUBLIC, UNLISTED")
	flag.BoolVar(&opts.Unique, "unique", false, "collapse near-duplicate uploads of the same song")
	flag.BoolVar(&opts.JSON, "json", false, "emit JSON output (suppresses human-readable lists)")
	flag.BoolVar(&opts.Quiet, "quiet", false, "suppress informational output (errors still shown)")
	flag.DurationVar(&opts.Timeout, "timeout", 15*time.Second, "per-request timeout")
	flag.Parse()

	opts.APIKey = os.Getenv("YOUTUBE_API_KEY")
	opts.AuthHeaderPath = os.Getenv("TUNESCOUT_AUTH")
	if opts.AuthHeaderPath == "" {
		opts.AuthHeaderPath = "headers_auth.json"
	}
	if opts.JSON {
		opts.Quiet = true
	}

	keywords := flag.Args()
	if len(keywords) == 0 {
		line := promptKeywords()
		if line == "" {
			fmt.Println("no keywords entered")
			return
		}
		keywords = splitKeywords(line)
	} else {
		keywords = splitKeywords(strings.Join(keywords, ","))
	}

	defer recommend.CloseIdleConnections()

	if err := recommend.Run(context.Background(), keywords, opts); err != nil {
		if opts.JSON {
			writeJSONError(err)
		} else if !recommend.IsReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(recommend.ExitCode(err))
	}
}

func promptKeywords() string {
	fmt.Fprint(os.Stderr, "enter favorite genres or keywords (comma separated): ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

func writeJSONError(err error) {
	payload := struct {
		Type     string `json:"type"`
		Category string `json:"category"`
		Error    string `json:"error"`
	}{
		Type:     "error",
		Category: string(recommend.CategoryOf(err)),
		Error:    err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
