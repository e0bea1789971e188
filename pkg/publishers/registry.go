package publishers

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/kannur-news-digest/internal/logger"
)

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error)

// Builders maps a publisher type to its constructor.
type Builders map[string]Builder

// DefaultBuilders covers every supported sink type.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:   newHTTPPublisher,
		TypeSQS:    newSQSPublisher,
		TypeSNS:    newSNSPublisher,
		TypePubSub: newPubSubPublisher,
	}
}

// Build constructs the publisher for one config entry.
func (b Builders) Build(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	typ := strings.ToLower(strings.TrimSpace(cfg.Type))
	if typ == "" {
		return nil, fmt.Errorf("publisher %q has no type configured", cfg.ID)
	}
	build, ok := b[typ]
	if !ok || build == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	return build(ctx, cfg, logger.OrNop(log))
}

// BuildAll constructs every entry in order. On failure the publishers already
// built are closed and nothing is returned.
func (b Builders) BuildAll(ctx context.Context, cfgs []PublisherConfig, log logger.Logger) ([]Publisher, error) {
	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := b.Build(ctx, cfg, log)
		if err != nil {
			_ = NewFanout(pubs).Close()
			return nil, fmt.Errorf("build publisher %q: %w", cfg.ID, err)
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

// FromFile loads the publishers file at path and builds every enabled entry into a Fanout.
func FromFile(ctx context.Context, path string, log logger.Logger) (*Fanout, error) {
	cfgReg, err := LoadRegistry(path)
	if err != nil {
		return nil, err
	}
	pubs, err := DefaultBuilders().BuildAll(ctx, cfgReg.Enabled(), log)
	if err != nil {
		return nil, err
	}
	return NewFanout(pubs), nil
}
