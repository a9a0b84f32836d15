package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsjester/internal/commentary"

	"github.com/caarlos0/env/v11"
	"mvdan.cc/xurls/v2"
)

type Config struct {
	ListenAddr   string        `env:"LISTEN_ADDR"    envDefault:":8080"`
	FeedURLs     []string      `env:"FEED_URLS"      envDefault:"https://lenta.ru/rss,https://ria.ru/export/rss2/index.xml,https://tass.ru/rss/v2.xml"`
	ItemsPerFeed int           `env:"ITEMS_PER_FEED" envDefault:"5"`
	BatchSize    int           `env:"BATCH_SIZE"     envDefault:"10"`
	FeedTimeout  time.Duration `env:"FEED_TIMEOUT"   envDefault:"20s"`

	APIKey            string        `env:"IOINTELLIGENCE_API_KEY"`
	APIBaseURL        string        `env:"IOINTELLIGENCE_BASE_URL" envDefault:"https://api.intelligence.io.solutions/api/v1/"`
	Model             string        `env:"MODEL"                   envDefault:"openai/gpt-oss-120b"`
	Temperature       float64       `env:"TEMPERATURE"             envDefault:"0.8"`
	MaxTokens         int64         `env:"MAX_TOKENS"              envDefault:"200"`
	CommentaryTimeout time.Duration `env:"COMMENTARY_TIMEOUT"      envDefault:"30s"`
	CommentaryDelay   time.Duration `env:"COMMENTARY_DELAY"        envDefault:"1s"`
	ThrottlePolicy    string        `env:"THROTTLE_POLICY"         envDefault:"delay"`
	FallbackSummary   string        `env:"FALLBACK_SUMMARY"        envDefault:"Failed to process."`

	FeedProbeSpec string     `env:"FEED_PROBE_SPEC" envDefault:"*/30 * * * *"`
	LogLevel      slog.Level `env:"LOG_LEVEL"       envDefault:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.FallbackSummary = strings.TrimSpace(cfg.FallbackSummary)
	if cfg.FallbackSummary == "" {
		cfg.FallbackSummary = commentary.DefaultFallbackSummary
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ItemsPerFeed <= 0 {
		errs = append(errs, fmt.Errorf("ITEMS_PER_FEED must be positive (got %d)", c.ItemsPerFeed))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("BATCH_SIZE must be positive (got %d)", c.BatchSize))
	}
	if c.FeedTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FEED_TIMEOUT must be positive (got %s)", c.FeedTimeout))
	}
	if c.CommentaryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("COMMENTARY_TIMEOUT must be positive (got %s)", c.CommentaryTimeout))
	}
	if c.CommentaryDelay < 0 {
		errs = append(errs, fmt.Errorf("COMMENTARY_DELAY must not be negative (got %s)", c.CommentaryDelay))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("MAX_TOKENS must be positive (got %d)", c.MaxTokens))
	}

	urls, err := normalizeFeedURLs(c.FeedURLs)
	if err != nil {
		errs = append(errs, err)
	}
	c.FeedURLs = urls

	return errors.Join(errs...)
}

func normalizeFeedURLs(raw []string) ([]string, error) {
	urlRe, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	urls := make([]string, 0, len(raw))
	var errs []error

	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}

		if urlRe.FindString(u) != u {
			errs = append(errs, fmt.Errorf("FEED_URLS contains invalid URL %q", u))
			continue
		}

		urls = append(urls, u)
	}

	if len(urls) == 0 && len(errs) == 0 {
		errs = append(errs, errors.New("FEED_URLS must contain at least one URL"))
	}

	return urls, errors.Join(errs...)
}
