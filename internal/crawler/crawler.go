package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/internal/logger"
	"github.com/samvad-hq/kannur-news-digest/pkg/feeds"
)

const (
	// DefaultEntryLimit caps how many entries one source contributes.
	DefaultEntryLimit   = 12
	defaultFetchTimeout = 15 * time.Second
)

// SourceResult is the outcome of crawling one source: entries on success, Err on failure.
type SourceResult struct {
	Source  domain.FeedSource
	Entries []domain.RawEntry
	Err     error
	Elapsed time.Duration
}

// OK reports whether the source was fetched and parsed.
func (r SourceResult) OK() bool { return r.Err == nil }

// Service crawls sources one at a time in declaration order.
type Service struct {
	fetcher feeds.Fetcher
	log     logger.Logger
	limit   int
	timeout time.Duration
	limiter *rate.Limiter
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-source outcomes.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) { s.log = logger.OrNop(log) }
}

// WithEntryLimit overrides DefaultEntryLimit. Non-positive values are ignored.
func WithEntryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithFetchTimeout bounds each source fetch. Non-positive values are ignored.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSourceDelay spaces consecutive source fetches by at least d.
func WithSourceDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			s.limiter = nil
		}
	}
}

// NewService wires a crawler around the feed fetcher.
func NewService(fetcher feeds.Fetcher, opts ...Option) *Service {
	if fetcher == nil {
		fetcher = feeds.NewRSSFetcher(nil, nil)
	}
	s := &Service{
		fetcher: fetcher,
		log:     logger.NopLogger{},
		limit:   DefaultEntryLimit,
		timeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collect crawls every source and returns one result per source, in input order.
// A failing source never stops the remaining ones.
func (s *Service) Collect(ctx context.Context, srcs []domain.FeedSource) []SourceResult {
	results := make([]SourceResult, 0, len(srcs))
	for _, src := range srcs {
		res := s.collectOne(ctx, src)
		if res.OK() {
			s.log.InfoObj("source crawl completed", "source_result", map[string]any{
				"source_id":  src.ID,
				"entries":    len(res.Entries),
				"elapsed_ms": res.Elapsed.Milliseconds(),
			})
		} else {
			s.log.ErrorObj("source crawl failed", "source_error", map[string]any{
				"source_id": src.ID,
				"source":    src.Name,
				"error":     res.Err.Error(),
			})
		}
		results = append(results, res)
	}
	return results
}

func (s *Service) collectOne(ctx context.Context, src domain.FeedSource) SourceResult {
	start := time.Now()
	res := SourceResult{Source: src}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			res.Err = fmt.Errorf("wait for %s: %w", src.ID, err)
			return res
		}
	}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("crawl %s: %w", src.ID, err)
		return res
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entries, err := s.fetcher.Fetch(fetchCtx, src)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	for i := range entries {
		entries[i].Source = src
	}
	res.Entries = entries
	return res
}

// Entries concatenates the entries of all successful results, preserving order.
func Entries(results []SourceResult) []domain.RawEntry {
	var out []domain.RawEntry
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Entries...)
		}
	}
	return out
}

// Failures joins the errors of failed results, or returns nil.
func Failures(results []SourceResult) error {
	var errs []error
	for _, r := range results {
		if !r.OK() {
			errs = append(errs, fmt.Errorf("source %s: %w", r.Source.ID, r.Err))
		}
	}
	return errors.Join(errs...)
}
