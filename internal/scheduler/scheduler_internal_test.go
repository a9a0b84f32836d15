package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"newsjester/internal/domain"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	urls  []string
	err   error
}

func (f *countingFetcher) FetchAll(_ context.Context, feedURLs []string) ([]domain.FeedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.urls = feedURLs

	return []domain.FeedItem{{Title: "t", URL: "https://example.com"}}, f.err
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func TestSchedulerDisabled(t *testing.T) {
	fetcher := &countingFetcher{}
	s := New(context.Background(), "  ", fetcher, nil, slog.Default())

	if s.Enabled() {
		t.Fatalf("expected scheduler to be disabled")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}

func TestSchedulerInvalidSpec(t *testing.T) {
	s := New(context.Background(), "not a cron spec", &countingFetcher{}, nil, slog.Default())

	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(context.Background(), "*/30 * * * *", &countingFetcher{}, nil, slog.Default())

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}

func TestProbeFeeds(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("one feed is down")}
	feedURLs := []string{"https://example.com/a", "https://example.com/b"}
	s := New(context.Background(), "@every 1h", fetcher, feedURLs, slog.Default())

	s.probeFeeds()

	if fetcher.callCount() != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.callCount())
	}
	if len(fetcher.urls) != len(feedURLs) {
		t.Fatalf("expected configured URLs, got %v", fetcher.urls)
	}
}

func TestProbeFeedsSkipsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &countingFetcher{}
	s := New(ctx, "@every 1h", fetcher, nil, slog.Default())

	s.probeFeeds()

	if fetcher.callCount() != 0 {
		t.Fatalf("expected no fetch after context is done, got %d", fetcher.callCount())
	}
}
