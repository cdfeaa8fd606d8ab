package recommend

import "testing"

func TestExtractHyphenSeparator(t *testing.T) {
	title, artist := ExtractTitleArtist("IU - Good Day", "IU")
	if title != "Good Day" || artist != "IU" {
		t.Fatalf("got (%q, %q), want (Good Day, IU)", title, artist)
	}
}

func TestExtractEmDashSeparator(t *testing.T) {
	title, artist := ExtractTitleArtist("IU — Celebrity", "whatever")
	if title != "Celebrity" || artist != "IU" {
		t.Fatalf("got (%q, %q), want (Celebrity, IU)", title, artist)
	}
}

func TestExtractMultipleHyphens(t *testing.T) {
	// Leftmost-shortest: the first hyphen splits, everything after stays in
	// the title group.
	title, artist := ExtractTitleArtist("A - B - C", "channel")
	if artist != "A" || title != "B - C" {
		t.Fatalf("got (%q, %q), want (B - C, A)", title, artist)
	}
}

func TestExtractTopicChannelFallback(t *testing.T) {
	title, artist := ExtractTitleArtist("Official Lyric Video: Song [HD]", "Artist - Topic")
	if artist != "Artist" {
		t.Fatalf("expected topic suffix stripped, got artist %q", artist)
	}
	if title == "" {
		t.Fatalf("expected non-empty cleaned title")
	}
}

func TestExtractNoiseOnlyGroups(t *testing.T) {
	// Both halves clean to boilerplate, so the separator match is rejected
	// and the channel fallback applies.
	title, artist := ExtractTitleArtist("MV - Official Video", "IU")
	if artist != "IU" {
		t.Fatalf("expected channel fallback artist, got %q", artist)
	}
	_ = title
}

func TestExtractUnparsableNeverFails(t *testing.T) {
	title, artist := ExtractTitleArtist("", "  Some Channel  ")
	if artist != "Some Channel" {
		t.Fatalf("expected trimmed channel fallback, got %q", artist)
	}
	if title != "" {
		t.Fatalf("expected empty title, got %q", title)
	}
}

func TestEnrichTrack(t *testing.T) {
	track := EnrichTrack(Video{ID: "abc12345678", Title: "IU - Good Day [MV]", Channel: "1theK", Views: 42})
	if track.SongTitle != "Good Day" || track.Artist != "IU" {
		t.Fatalf("got (%q, %q)", track.SongTitle, track.Artist)
	}
	if track.URL != "https://www.youtube.com/watch?v=abc12345678" {
		t.Fatalf("unexpected URL %q", track.URL)
	}
	if track.Views != 42 {
		t.Fatalf("views not carried over")
	}
}
