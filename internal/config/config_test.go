package config_test

import (
	"log/slog"
	"newsjester/internal/commentary"
	"newsjester/internal/config"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IOINTELLIGENCE_API_KEY", "  secret  ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.FeedURLs) != 3 {
		t.Fatalf("expected 3 default feeds, got %d: %v", len(cfg.FeedURLs), cfg.FeedURLs)
	}
	if cfg.FeedURLs[0] != "https://lenta.ru/rss" {
		t.Fatalf("unexpected first feed: %q", cfg.FeedURLs[0])
	}
	if cfg.ItemsPerFeed != 5 || cfg.BatchSize != 10 {
		t.Fatalf("unexpected sizes: itemsPerFeed=%d batchSize=%d", cfg.ItemsPerFeed, cfg.BatchSize)
	}
	if cfg.CommentaryDelay != time.Second {
		t.Fatalf("unexpected delay: %s", cfg.CommentaryDelay)
	}
	if cfg.CommentaryTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.CommentaryTimeout)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("expected trimmed API key, got %q", cfg.APIKey)
	}
	if cfg.FallbackSummary != commentary.DefaultFallbackSummary {
		t.Fatalf("unexpected fallback summary: %q", cfg.FallbackSummary)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoadCustomFeeds(t *testing.T) {
	t.Setenv("FEED_URLS", " https://example.com/rss , ,http://example.org/feed.xml?x=1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://example.com/rss", "http://example.org/feed.xml?x=1"}
	if len(cfg.FeedURLs) != len(want) {
		t.Fatalf("unexpected feeds: %v", cfg.FeedURLs)
	}
	for i := range want {
		if cfg.FeedURLs[i] != want[i] {
			t.Fatalf("unexpected feed at %d: got %q want %q", i, cfg.FeedURLs[i], want[i])
		}
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		value   string
		wantErr string
	}{
		{"InvalidFeedURL", "FEED_URLS", "not a url", "invalid URL"},
		{"ZeroBatchSize", "BATCH_SIZE", "0", "BATCH_SIZE"},
		{"NegativeItemsPerFeed", "ITEMS_PER_FEED", "-1", "ITEMS_PER_FEED"},
		{"NegativeDelay", "COMMENTARY_DELAY", "-1s", "COMMENTARY_DELAY"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.envVar, test.value)

			_, err := config.Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", test.envVar, test.value)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("expected error to mention %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestLoadEmptyFallbackUsesDefault(t *testing.T) {
	t.Setenv("FALLBACK_SUMMARY", "   ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FallbackSummary != commentary.DefaultFallbackSummary {
		t.Fatalf("unexpected fallback summary: %q", cfg.FallbackSummary)
	}
}
