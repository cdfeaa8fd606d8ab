package recommend

import "testing"

func TestDedupeCollapsesNearDuplicates(t *testing.T) {
	ranked := []Recommendation{
		{Track: track("a", "Good Day", "IU", 100), Score: 3},
		{Track: track("b", "Good Day!", "IU ", 50), Score: 2},
		{Track: track("c", "Dynamite", "BTS", 10), Score: 1},
	}
	out := Dedupe(ranked)
	if len(out) != 2 {
		t.Fatalf("expected 2 after dedupe, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("unexpected survivors: %s %s", out[0].ID, out[1].ID)
	}
}

func TestDedupeKeepsDistinctTracks(t *testing.T) {
	ranked := []Recommendation{
		{Track: track("a", "Good Day", "IU", 100)},
		{Track: track("b", "Blueming", "IU", 50)},
	}
	if out := Dedupe(ranked); len(out) != 2 {
		t.Fatalf("distinct tracks must survive, got %d", len(out))
	}
}

func TestDedupeEmpty(t *testing.T) {
	if out := Dedupe(nil); len(out) != 0 {
		t.Fatalf("expected empty output")
	}
}
