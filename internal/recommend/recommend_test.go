package recommend

import (
	"context"
	"testing"
)

func TestNewSearchClientBackends(t *testing.T) {
	client, err := newSearchClient(Options{Backend: "api", APIKey: "k"})
	if err != nil {
		t.Fatalf("api backend: %v", err)
	}
	if _, ok := client.(*DataAPIClient); !ok {
		t.Fatalf("expected DataAPIClient, got %T", client)
	}

	client, err = newSearchClient(Options{Backend: "music"})
	if err != nil {
		t.Fatalf("music backend: %v", err)
	}
	if _, ok := client.(*MusicClient); !ok {
		t.Fatalf("expected MusicClient, got %T", client)
	}

	if _, err := newSearchClient(Options{Backend: "spotify"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	} else if CategoryOf(err) != CategoryInvalidInput {
		t.Fatalf("expected invalid-input, got %s", CategoryOf(err))
	}
}

func TestRunRejectsEmptyKeywords(t *testing.T) {
	err := Run(context.Background(), []string{"  ", ""}, Options{Quiet: true})
	if err == nil {
		t.Fatalf("expected error for empty keywords")
	}
	if CategoryOf(err) != CategoryInvalidInput {
		t.Fatalf("expected invalid-input, got %s", CategoryOf(err))
	}
}

func TestRunAbortsBeforeNetworkWithoutKey(t *testing.T) {
	err := Run(context.Background(), []string{"k-pop"}, Options{Quiet: true})
	if err == nil {
		t.Fatalf("expected credentials error")
	}
	if CategoryOf(err) != CategoryCredentials {
		t.Fatalf("expected credentials, got %s", CategoryOf(err))
	}
	// The failure is printed at the failure site, so main must not repeat it.
	if !IsReported(err) {
		t.Fatalf("expected search failure to come back reported")
	}
}
