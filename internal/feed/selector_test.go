package feed_test

import (
	"fmt"
	"math/rand/v2"
	"newsjester/internal/domain"
	"newsjester/internal/feed"
	"testing"
)

func makeItems(n int) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, n)
	for i := range n {
		items = append(items, domain.FeedItem{
			Title: fmt.Sprintf("title %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		})
	}
	return items
}

func TestSelectTruncatesToLimit(t *testing.T) {
	items := makeItems(15)

	selected := feed.Select(items, 10, rand.New(rand.NewPCG(1, 2)))
	if len(selected) != 10 {
		t.Fatalf("expected 10 items, got %d", len(selected))
	}

	seen := make(map[string]struct{}, len(selected))
	known := make(map[domain.FeedItem]struct{}, len(items))
	for _, item := range items {
		known[item] = struct{}{}
	}

	for _, item := range selected {
		if _, ok := known[item]; !ok {
			t.Fatalf("selected item %v is not from input", item)
		}
		if _, ok := seen[item.URL]; ok {
			t.Fatalf("item %v selected twice", item)
		}
		seen[item.URL] = struct{}{}
	}
}

func TestSelectReturnsAllWhenFewer(t *testing.T) {
	items := makeItems(3)

	selected := feed.Select(items, 10, nil)
	if len(selected) != 3 {
		t.Fatalf("expected 3 items, got %d", len(selected))
	}
}

func TestSelectEmpty(t *testing.T) {
	if selected := feed.Select(nil, 10, nil); len(selected) != 0 {
		t.Fatalf("expected no items, got %d", len(selected))
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	items := makeItems(12)
	original := make([]domain.FeedItem, len(items))
	copy(original, items)

	for seed := range uint64(20) {
		_ = feed.Select(items, 10, rand.New(rand.NewPCG(seed, seed+1)))
	}

	for i := range items {
		if items[i] != original[i] {
			t.Fatalf("input mutated at %d: got %v want %v", i, items[i], original[i])
		}
	}
}

func TestSelectShufflesEveryPosition(t *testing.T) {
	items := makeItems(5)
	r := rand.New(rand.NewPCG(42, 7))

	firstSeen := make(map[string]struct{})
	for range 200 {
		selected := feed.Select(items, len(items), r)
		firstSeen[selected[0].URL] = struct{}{}
	}

	if len(firstSeen) != len(items) {
		t.Fatalf("expected every item to appear first at least once, got %d of %d", len(firstSeen), len(items))
	}
}
