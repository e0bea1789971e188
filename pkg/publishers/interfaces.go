package publishers

import (
	"context"

	"github.com/samvad-hq/kannur-news-digest/internal/logger"
)

// Publisher sends events to a downstream sink (SQS, SNS, Pub/Sub, HTTP).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

func logDelivered(log logger.Logger, p Publisher, messageID string) {
	log.DebugObj("publisher delivered event", "publisher_delivery", map[string]any{
		"publisher_id":   p.ID(),
		"publisher_type": p.Type(),
		"message_id":     messageID,
	})
}

func logFailed(log logger.Logger, p Publisher, err error) {
	log.ErrorObj("publisher send failed", "publisher_error", map[string]any{
		"publisher_id":   p.ID(),
		"publisher_type": p.Type(),
		"error":          err.Error(),
	})
}
