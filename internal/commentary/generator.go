package commentary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsjester/internal/domain"
	"newsjester/internal/ratelimiter"
	"newsjester/internal/summarizer"
)

// DefaultFallbackSummary is shown instead of a comment whenever generation
// fails. The front-end matches on this exact string.
const DefaultFallbackSummary = "Failed to process."

// Generator comments on feed items one by one.
type Generator struct {
	summarizer  summarizer.Summarizer
	newThrottle ratelimiter.Factory
	fallback    string
	log         *slog.Logger
}

// NewGenerator builds a generator. A nil summarizer makes every item fall
// back, a nil throttle factory disables pacing.
func NewGenerator(
	s summarizer.Summarizer,
	newThrottle ratelimiter.Factory,
	fallback string,
	log *slog.Logger,
) *Generator {
	if newThrottle == nil {
		newThrottle = func() ratelimiter.Throttle { return ratelimiter.NewFixedDelay(0) }
	}

	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultFallbackSummary
	}

	return &Generator{
		summarizer:  s,
		newThrottle: newThrottle,
		fallback:    fallback,
		log:         log,
	}
}

// Fallback returns the summary used for failed items.
func (g *Generator) Fallback() string {
	return g.fallback
}

// Generate comments on items sequentially, keeping their order. It never
// fails: an item whose comment cannot be produced gets the fallback summary.
func (g *Generator) Generate(
	ctx context.Context,
	items []domain.FeedItem,
) []domain.CommentedItem {
	throttle := g.newThrottle()
	commented := make([]domain.CommentedItem, 0, len(items))

	for i, item := range items {
		summary, err := g.comment(ctx, throttle, item)
		if err != nil {
			g.log.ErrorContext(ctx, "Failed to comment news item",
				"error", err,
				"url", item.URL,
				"index", i,
				"fallback", true)

			summary = g.fallback
		}

		commented = append(commented, domain.CommentedItem{
			Title:   item.Title,
			Summary: summary,
			URL:     item.URL,
		})
	}

	return commented
}

func (g *Generator) comment(
	ctx context.Context,
	throttle ratelimiter.Throttle,
	item domain.FeedItem,
) (string, error) {
	if err := throttle.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait throttle: %w", err)
	}

	if g.summarizer == nil {
		return "", summarizer.ErrMissingAPIKey
	}

	summary, err := g.summarizer.Summarize(ctx, summarizer.Input{
		Title:       item.Title,
		Description: item.Description,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		g.log.WarnContext(ctx, "Empty comment so fallback will be used",
			"url", item.URL)

		return g.fallback, nil
	}

	return summary, nil
}
