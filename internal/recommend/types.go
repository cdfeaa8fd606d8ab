package recommend

// Video is one raw search result as returned by a search backend. It is
// immutable once received; enrichment produces a Track instead of mutating it.
type Video struct {
	ID      string
	Title   string
	Channel string
	Views   int64
}

// Track is a Video enriched with the parsed (song title, artist) pair and a
// canonical watch URL. The pair is derived exactly once per video.
type Track struct {
	Video
	SongTitle string
	Artist    string
	URL       string
}

// Recommendation pairs a Track with its preference score.
type Recommendation struct {
	Track
	Score float64
}

// EnrichTrack derives the (song title, artist) pair for a raw video.
func EnrichTrack(v Video) Track {
	title, artist := ExtractTitleArtist(v.Title, v.Channel)
	return Track{
		Video:     v,
		SongTitle: title,
		Artist:    artist,
		URL:       watchURLForID(v.ID),
	}
}
