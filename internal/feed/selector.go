package feed

import (
	"math/rand/v2"
	"slices"

	"newsjester/internal/domain"
)

const DefaultBatchSize = 10

// Select returns a random permutation of items truncated to limit. The input
// slice is left untouched. A nil r uses the global source.
func Select(
	items []domain.FeedItem,
	limit int,
	r *rand.Rand,
) []domain.FeedItem {
	selected := slices.Clone(items)

	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}

	shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	limit = max(limit, 0)
	if len(selected) > limit {
		selected = selected[:limit]
	}

	return selected
}
