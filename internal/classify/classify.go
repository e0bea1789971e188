// Package classify turns raw feed entries into render-ready news items.
package classify

import (
	"strings"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
)

const (
	// MaxDescriptionRunes is the description length kept before the ellipsis.
	MaxDescriptionRunes = 200
	// Ellipsis marks a truncated description.
	Ellipsis = "..."
	// LinkPlaceholder replaces a missing entry link.
	LinkPlaceholder = "#"
)

// Classifier maps raw entries to news items using a fixed keyword set.
type Classifier struct {
	keywords Keywords
}

// New builds a classifier for the given keyword sets.
func New(keywords Keywords) *Classifier {
	return &Classifier{keywords: keywords}
}

// Classify converts one entry. ok is false when the normalized title is empty.
func (c *Classifier) Classify(entry domain.RawEntry) (item domain.NewsItem, ok bool) {
	title := Normalize(entry.Title)
	if title == "" {
		return domain.NewsItem{}, false
	}
	desc := Normalize(entry.Summary)

	link := entry.Link
	if strings.TrimSpace(link) == "" {
		link = LinkPlaceholder
	}

	return domain.NewsItem{
		Title:       title,
		Description: Truncate(desc, MaxDescriptionRunes),
		Link:        link,
		PublishedAt: entry.Published,
		ImageURL:    entry.ImageURL,
		SourceName:  entry.Source.Name,
		SourceIcon:  entry.Source.Icon,
		IsRegional:  c.keywords.IsRegional(title, desc),
	}, true
}

// ClassifyAll converts entries in order, dropping the ones without a title.
func (c *Classifier) ClassifyAll(entries []domain.RawEntry) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(entries))
	for _, entry := range entries {
		if item, ok := c.Classify(entry); ok {
			items = append(items, item)
		}
	}
	return items
}

// Stats summarises a classified list for logging.
type Stats struct {
	Total   int `json:"total"`
	Region  int `json:"regional"`
	General int `json:"general_keyword_hits"`
}

// Summarize counts regional items and general keyword hits.
func (c *Classifier) Summarize(items []domain.NewsItem) Stats {
	st := Stats{Total: len(items)}
	for _, it := range items {
		if it.IsRegional {
			st.Region++
		}
		if c.keywords.MatchesGeneral(it.Title, it.Description) {
			st.General++
		}
	}
	return st
}
