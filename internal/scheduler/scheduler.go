package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"newsjester/internal/domain"

	"github.com/robfig/cron/v3"
)

const (
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	probeFeedsTimeout     = 2 * time.Minute
)

type FeedFetcher interface {
	FetchAll(ctx context.Context, feedURLs []string) ([]domain.FeedItem, error)
}

// Scheduler periodically probes the configured feeds and logs how many
// items they yield. It keeps no state between runs.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	spec     string
	fetcher  FeedFetcher
	feedURLs []string
	log      *slog.Logger
}

func New(
	ctx context.Context,
	spec string,
	fetcher FeedFetcher,
	feedURLs []string,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:      ctx,
		cron:     c,
		spec:     strings.TrimSpace(spec),
		fetcher:  fetcher,
		feedURLs: feedURLs,
		log:      log,
	}
}

// Enabled reports whether a schedule is configured.
func (s *Scheduler) Enabled() bool {
	return s.spec != ""
}

func (s *Scheduler) Spec() string {
	return s.spec
}

// Start registers the probe job. It is a no-op when the scheduler is
// disabled.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.probeFeeds); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) probeFeeds() {
	ctx, cancel := context.WithTimeout(s.ctx, probeFeedsTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	start := time.Now()
	items, err := s.fetcher.FetchAll(ctx, s.feedURLs)
	if err != nil {
		s.log.WarnContext(ctx, "Feed probe found failing feeds",
			"error", err,
			"feedCount", len(s.feedURLs),
			"itemCount", len(items))
	}

	s.log.InfoContext(ctx, "Feed probe is finished",
		"feedCount", len(s.feedURLs),
		"itemCount", len(items),
		"healthy", err == nil && len(items) > 0,
		"durationSeconds", time.Since(start).Seconds())
}
