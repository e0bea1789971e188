// Package sources holds the fixed feed catalogue the digest is built from.
package sources

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
)

const (
	TimesOfIndiaKeralaID = "toi-kerala"
	TheHinduKeralaID     = "the-hindu-kerala"
	NDTVSouthID          = "ndtv-south"
)

var defaults = []domain.FeedSource{
	{
		ID:   TimesOfIndiaKeralaID,
		Name: "Times of India Kerala",
		Icon: "🗞️",
		URL:  "https://timesofindia.indiatimes.com/rssfeeds/-2128936835.cms",
	},
	{
		ID:   TheHinduKeralaID,
		Name: "The Hindu Kerala",
		Icon: "📰",
		URL:  "https://www.thehindu.com/news/national/kerala/?service=rss",
	},
	{
		ID:   NDTVSouthID,
		Name: "NDTV South",
		Icon: "📺",
		URL:  "https://feeds.feedburner.com/ndtvnews-south",
	},
}

// Defaults returns a copy of the compiled-in source list in fetch order.
func Defaults() []domain.FeedSource {
	out := make([]domain.FeedSource, len(defaults))
	copy(out, defaults)
	return out
}

// Prepare trims and validates a source list, rejecting duplicate ids.
func Prepare(list []domain.FeedSource) ([]domain.FeedSource, error) {
	if len(list) == 0 {
		return nil, errors.New("no feed sources configured")
	}

	out := make([]domain.FeedSource, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, src := range list {
		src = sanitize(src)
		if err := validate(src); err != nil {
			return nil, fmt.Errorf("source[%d]: %w", i, err)
		}
		if _, exists := seen[src.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", src.ID)
		}
		seen[src.ID] = struct{}{}
		out = append(out, src)
	}
	return out, nil
}

// ByID finds a source by id in list.
func ByID(list []domain.FeedSource, id string) (domain.FeedSource, bool) {
	id = strings.TrimSpace(id)
	for _, src := range list {
		if src.ID == id {
			return src, true
		}
	}
	return domain.FeedSource{}, false
}

func sanitize(src domain.FeedSource) domain.FeedSource {
	src.ID = strings.TrimSpace(src.ID)
	src.Name = strings.TrimSpace(src.Name)
	src.Icon = strings.TrimSpace(src.Icon)
	src.URL = strings.TrimSpace(src.URL)
	return src
}

func validate(src domain.FeedSource) error {
	if src.ID == "" {
		return errors.New("id is required")
	}
	if src.Name == "" {
		return fmt.Errorf("name is required for source %q", src.ID)
	}
	if src.URL == "" {
		return fmt.Errorf("url is required for source %q", src.ID)
	}
	u, err := url.Parse(src.URL)
	if err != nil {
		return fmt.Errorf("parse url for source %q: %w", src.ID, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source %q url must be http(s), got %q", src.ID, u.Scheme)
	}
	return nil
}
