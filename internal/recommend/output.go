package recommend

import (
	"encoding/json"
	"os"
)

// Views and Score are pointers: item records always carry them, zero
// included, while the other record types leave them out entirely.
type jsonResult struct {
	Type       string   `json:"type"`
	Query      string   `json:"query,omitempty"`
	Rank       int      `json:"rank,omitempty"`
	ID         string   `json:"id,omitempty"`
	SongTitle  string   `json:"song_title,omitempty"`
	Artist     string   `json:"artist,omitempty"`
	Title      string   `json:"title,omitempty"`
	Channel    string   `json:"channel,omitempty"`
	Views      *int64   `json:"views,omitempty"`
	Score      *float64 `json:"score,omitempty"`
	URL        string   `json:"url,omitempty"`
	PlaylistID string   `json:"playlist_id,omitempty"`
}

func emitJSONResult(res jsonResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(res)
}
