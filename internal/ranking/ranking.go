// Package ranking orders classified items and slices them into presentation tiers.
package ranking

import "github.com/samvad-hq/kannur-news-digest/internal/domain"

const (
	// FeaturedCount is the size of the featured tier.
	FeaturedCount = 3
	// PresentedLimit is the number of ranked items shown across both tiers.
	PresentedLimit = 13
)

// Tiers is the render-ready selection.
type Tiers struct {
	Featured  []domain.NewsItem `json:"featured"`
	Secondary []domain.NewsItem `json:"secondary"`
	// Empty is set when no item survived classification; the page shows a fallback notice.
	Empty bool `json:"empty"`
}

// Rank returns regional items followed by general items, each group in input order.
func Rank(items []domain.NewsItem) []domain.NewsItem {
	ranked := make([]domain.NewsItem, 0, len(items))
	for _, it := range items {
		if it.IsRegional {
			ranked = append(ranked, it)
		}
	}
	for _, it := range items {
		if !it.IsRegional {
			ranked = append(ranked, it)
		}
	}
	return ranked
}

// Select slices an already ranked list into tiers.
func Select(ranked []domain.NewsItem) Tiers {
	t := Tiers{Empty: len(ranked) == 0}
	t.Featured = window(ranked, 0, FeaturedCount)
	t.Secondary = window(ranked, FeaturedCount, PresentedLimit)
	return t
}

// Build ranks items and selects the tiers.
func Build(items []domain.NewsItem) Tiers {
	return Select(Rank(items))
}

// All returns the presented items in display order.
func (t Tiers) All() []domain.NewsItem {
	out := make([]domain.NewsItem, 0, len(t.Featured)+len(t.Secondary))
	out = append(out, t.Featured...)
	return append(out, t.Secondary...)
}

func window(items []domain.NewsItem, from, to int) []domain.NewsItem {
	if from >= len(items) {
		return []domain.NewsItem{}
	}
	if to > len(items) {
		to = len(items)
	}
	out := make([]domain.NewsItem, to-from)
	copy(out, items[from:to])
	return out
}
