package feeds

import (
	"context"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/pkg/httpclient"
)

// Fetcher retrieves and parses one feed source into raw entries, in feed order.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.FeedSource) ([]domain.RawEntry, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within feeds.
type HTTPClient = httpclient.Client
