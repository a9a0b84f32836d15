package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"newsjester/internal/commentary"
	"newsjester/internal/config"
	"newsjester/internal/feed"
	"newsjester/internal/news"
	"newsjester/internal/ratelimiter"
	"newsjester/internal/summarizer"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const writeTimeoutMargin = 30 * time.Second

type app struct {
	cfg     config.Config
	fetcher *feed.Fetcher
	service *news.Service
	log     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	root := &cobra.Command{
		Use:           "newsjester",
		Short:         "Serve RSS headlines with satirical AI commentary",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newFetchCmd())

	return root
}

// newApp loads configuration and wires the pipeline. Logs go to logOut.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	dotEnvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(logOut, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		return nil, err
	}

	log := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	switch {
	case dotEnvErr == nil:
		log.InfoContext(ctx, ".env file is loaded")
	case errors.Is(dotEnvErr, fs.ErrNotExist):
		log.DebugContext(ctx, "No .env file so environment is used as is")
	default:
		log.WarnContext(ctx, "Failed to load .env file",
			"error", dotEnvErr)
	}

	newThrottle, err := ratelimiter.NewFactory(cfg.ThrottlePolicy, cfg.CommentaryDelay)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create throttle",
			"error", err,
			"policy", cfg.ThrottlePolicy)

		return nil, err
	}

	fetcher := feed.NewFetcher(&http.Client{Timeout: cfg.FeedTimeout}, cfg.ItemsPerFeed, log)
	generator := commentary.NewGenerator(
		initOpenAISummarizer(ctx, cfg, log),
		newThrottle,
		cfg.FallbackSummary,
		log,
	)
	service := news.NewService(fetcher, generator, cfg.FeedURLs, cfg.BatchSize, log)

	log.InfoContext(ctx, "Pipeline is initialized",
		"feedCount", len(cfg.FeedURLs),
		"itemsPerFeed", cfg.ItemsPerFeed,
		"batchSize", cfg.BatchSize,
		"throttlePolicy", cfg.ThrottlePolicy,
		"commentaryDelay", cfg.CommentaryDelay.String())

	return &app{
		cfg:     cfg,
		fetcher: fetcher,
		service: service,
		log:     log,
	}, nil
}

func initOpenAISummarizer(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) summarizer.Summarizer {
	if cfg.APIKey == "" {
		log.WarnContext(ctx, "IOINTELLIGENCE_API_KEY is missing so fallback will be used",
			"envVar", "IOINTELLIGENCE_API_KEY")
	}

	s := summarizer.NewOpenAISummarizer(summarizer.OpenAIConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.APIBaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.CommentaryTimeout,
	})

	log.InfoContext(ctx, "OpenAI-compatible summarizer is initialized",
		"baseURL", cfg.APIBaseURL,
		"model", cfg.Model)

	return s
}

// writeTimeout covers one full batch: fetching plus every throttled call.
func writeTimeout(cfg config.Config) time.Duration {
	perItem := cfg.CommentaryDelay + cfg.CommentaryTimeout

	return cfg.FeedTimeout + time.Duration(cfg.BatchSize)*perItem + writeTimeoutMargin
}
