package summarizer

import (
	"context"
)

// Input describes the article a comment is requested for.
type Input struct {
	// Title is the article headline.
	Title string
	// Description is an optional plain-text snippet of the article.
	Description string
}

// Summarizer produces a single short comment for a given article.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}
