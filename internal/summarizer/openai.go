package summarizer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL     = "https://api.intelligence.io.solutions/api/v1/"
	DefaultModel       = "openai/gpt-oss-120b"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 200
	DefaultTimeout     = 30 * time.Second

	systemPrompt = `Ты — остроумный сатирик в стиле КВН или Comedy Club. ` +
		`Создавай смешные, едкие комментарии к новостям с использованием иронии, сарказма и парадоксов. ` +
		`Будь остроумным, но не злым. ` +
		`Используй современный юмор, отсылки к поп-культуре и неожиданные повороты. ` +
		`Отвечай ТОЛЬКО комментарием. Никаких заголовков, markdown или лишних слов.`

	userPromptPrefix = "Прокомментируй эту новость остроумно и сатирически: "
)

var (
	ErrMissingAPIKey = errors.New("API key is not set")
	ErrNoChoices     = errors.New("response has no choices")

	leadingFenceRe  = regexp.MustCompile("(?i)^```[a-z]*\\s*\\n?")
	trailingFenceRe = regexp.MustCompile("\\n?```$")
)

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// OpenAISummarizer calls an OpenAI-compatible Chat Completions API to
// produce satirical comments.
type OpenAISummarizer struct {
	client openai.Client
	cfg    OpenAIConfig
}

// NewOpenAISummarizer builds a new summarizer instance. Empty base URL and
// model, and non-positive limits, are replaced with defaults. Temperature is
// used as given, zero included. An empty API key is accepted here and reported
// by every Summarize call instead.
func NewOpenAISummarizer(cfg OpenAIConfig) *OpenAISummarizer {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &OpenAISummarizer{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(0),
		),
		cfg: cfg,
	}
}

// Summarize asks the model for one comment on the article.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	if s.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(input)),
		},
		Temperature: openai.Float(s.cfg.Temperature),
		MaxTokens:   openai.Int(s.cfg.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return CleanOutput(resp.Choices[0].Message.Content), nil
}

// CleanOutput strips a surrounding code fence and whitespace from model
// output.
func CleanOutput(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFenceRe.ReplaceAllString(text, "")
	text = trailingFenceRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

func userPrompt(input Input) string {
	userPromptBuilder := strings.Builder{}
	userPromptBuilder.WriteString(userPromptPrefix)
	userPromptBuilder.WriteString(strings.TrimSpace(input.Title))
	userPromptBuilder.WriteString(" - ")
	userPromptBuilder.WriteString(strings.TrimSpace(input.Description))

	return userPromptBuilder.String()
}
