package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"newsjester/internal/domain"

	"github.com/mmcdole/gofeed"
)

const (
	DefaultItemsPerFeed = 5
	DefaultTimeout      = 20 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

type Fetcher struct {
	client       *http.Client
	itemsPerFeed int
	log          *slog.Logger
}

// NewFetcher builds a feed fetcher. A nil client gets a default one with
// DefaultTimeout, a non-positive itemsPerFeed becomes DefaultItemsPerFeed.
func NewFetcher(
	client *http.Client,
	itemsPerFeed int,
	log *slog.Logger,
) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if itemsPerFeed <= 0 {
		itemsPerFeed = DefaultItemsPerFeed
	}

	return &Fetcher{
		client:       client,
		itemsPerFeed: itemsPerFeed,
		log:          log,
	}
}

// FetchAll fetches every feed concurrently and returns their items in feed
// order. A failed feed is logged and skipped; the returned error joins all
// per-feed failures and does not invalidate the returned items.
func (f *Fetcher) FetchAll(
	ctx context.Context,
	feedURLs []string,
) ([]domain.FeedItem, error) {
	results := make([][]domain.FeedItem, len(feedURLs))
	errs := make([]error, len(feedURLs))

	var wg sync.WaitGroup
	for i, feedURL := range feedURLs {
		wg.Go(func() {
			items, err := f.FetchFeed(ctx, feedURL)
			if err != nil {
				f.log.WarnContext(ctx, "Failed to fetch feed",
					"error", err,
					"feedURL", feedURL)

				errs[i] = fmt.Errorf("fetch feed (URL = %s): %w", feedURL, err)
				return
			}

			f.log.DebugContext(ctx, "Feed is fetched",
				"feedURL", feedURL,
				"itemCount", len(items))

			results[i] = items
		})
	}
	wg.Wait()

	var items []domain.FeedItem
	for _, feedItems := range results {
		items = append(items, feedItems...)
	}

	return items, errors.Join(errs...)
}

// FetchFeed parses one RSS or Atom feed and maps its first items.
func (f *Fetcher) FetchFeed(
	ctx context.Context,
	feedURL string,
) ([]domain.FeedItem, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = userAgent

	parsed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	count := min(len(parsed.Items), f.itemsPerFeed)
	items := make([]domain.FeedItem, 0, count)

	for _, item := range parsed.Items[:count] {
		if item == nil {
			continue
		}

		items = append(items, toFeedItem(item))
	}

	return items, nil
}
