package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"newsjester/internal/domain"
	"newsjester/internal/feed"
)

// ErrNoItems is returned when none of the configured feeds yielded an item.
var ErrNoItems = errors.New("no news items fetched")

type FeedFetcher interface {
	FetchAll(ctx context.Context, feedURLs []string) ([]domain.FeedItem, error)
}

type CommentGenerator interface {
	Generate(ctx context.Context, items []domain.FeedItem) []domain.CommentedItem
}

// Service runs the fetch → select → comment pipeline for one request.
type Service struct {
	fetcher   FeedFetcher
	generator CommentGenerator
	feedURLs  []string
	batchSize int
	rng       *rand.Rand
	log       *slog.Logger
}

// NewService wires the pipeline. A non-positive batchSize falls back to
// feed.DefaultBatchSize.
func NewService(
	fetcher FeedFetcher,
	generator CommentGenerator,
	feedURLs []string,
	batchSize int,
	log *slog.Logger,
) *Service {
	if batchSize <= 0 {
		batchSize = feed.DefaultBatchSize
	}

	return &Service{
		fetcher:   fetcher,
		generator: generator,
		feedURLs:  feedURLs,
		batchSize: batchSize,
		log:       log,
	}
}

// WithRand makes selection deterministic. It is meant for tests and must not
// be used on a Service shared between goroutines.
func (s *Service) WithRand(r *rand.Rand) *Service {
	s.rng = r
	return s
}

// Build fetches the feeds, picks a random batch and comments on it. It fails
// only when no feed produced any item.
func (s *Service) Build(ctx context.Context) ([]domain.CommentedItem, error) {
	start := time.Now()

	items, fetchErr := s.fetcher.FetchAll(ctx, s.feedURLs)
	if len(items) == 0 {
		if fetchErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoItems, fetchErr)
		}
		return nil, ErrNoItems
	}

	batch := feed.Select(items, s.batchSize, s.rng)
	commented := s.generator.Generate(ctx, batch)

	s.log.InfoContext(ctx, "News batch is built",
		"feedCount", len(s.feedURLs),
		"fetchedCount", len(items),
		"feedErrors", fetchErr != nil,
		"batchSize", len(commented),
		"durationSeconds", time.Since(start).Seconds())

	return commented, nil
}
