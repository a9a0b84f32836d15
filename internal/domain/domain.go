package domain

// FeedItem is one article reference parsed from a feed entry.
type FeedItem struct {
	Title       string
	Description string
	URL         string
}

// CommentedItem is a FeedItem whose description was replaced by generated
// commentary (or the fallback summary).
type CommentedItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type ErrorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
