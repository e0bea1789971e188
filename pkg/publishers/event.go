package publishers

import (
	"time"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/internal/ranking"
)

// EventKindDigestGenerated marks an event announcing a freshly written page.
const EventKindDigestGenerated = "digest.generated"

// SourceFailure describes a feed source that contributed nothing to the digest.
type SourceFailure struct {
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name"`
	Error      string `json:"error"`
}

// Event represents the payload published downstream.
type Event struct {
	Kind          string            `json:"kind"`
	GeneratedAt   time.Time         `json:"generated_at"`
	OutputPath    string            `json:"output_path"`
	Empty         bool              `json:"empty"`
	TotalItems    int               `json:"total_items"`
	RegionalItems int               `json:"regional_items"`
	Featured      []domain.NewsItem `json:"featured"`
	Secondary     []domain.NewsItem `json:"secondary"`
	Failures      []SourceFailure   `json:"failures,omitempty"`
}

// NewEvent constructs a digest event from the classified items and the selected tiers.
func NewEvent(outputPath string, generatedAt time.Time, items []domain.NewsItem, tiers ranking.Tiers, failures []SourceFailure) Event {
	regional := 0
	for _, it := range items {
		if it.IsRegional {
			regional++
		}
	}
	return Event{
		Kind:          EventKindDigestGenerated,
		GeneratedAt:   generatedAt.UTC(),
		OutputPath:    outputPath,
		Empty:         tiers.Empty,
		TotalItems:    len(items),
		RegionalItems: regional,
		Featured:      tiers.Featured,
		Secondary:     tiers.Secondary,
		Failures:      failures,
	}
}
