package recommend

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONResultKeepsZeroViewsAndScore(t *testing.T) {
	views := int64(0)
	score := 0.0
	data, err := json.Marshal(jsonResult{
		Type:  "item",
		Rank:  1,
		ID:    "aaaaaaaaaaa",
		Views: &views,
		Score: &score,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"views":0`) {
		t.Fatalf("zero views dropped from record: %s", data)
	}
	if !strings.Contains(string(data), `"score":0`) {
		t.Fatalf("zero score dropped from record: %s", data)
	}
}

func TestJSONResultOmitsItemFieldsFromQueryRecords(t *testing.T) {
	data, err := json.Marshal(jsonResult{Type: "query", Query: "k-pop"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "views") || strings.Contains(string(data), "score") {
		t.Fatalf("query records should not carry item fields: %s", data)
	}
}
