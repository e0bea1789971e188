package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samvad-hq/kannur-news-digest/internal/classify"
	"github.com/samvad-hq/kannur-news-digest/internal/config"
	"github.com/samvad-hq/kannur-news-digest/internal/crawler"
	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/internal/logger"
	"github.com/samvad-hq/kannur-news-digest/internal/ranking"
	"github.com/samvad-hq/kannur-news-digest/pkg/feeds"
	"github.com/samvad-hq/kannur-news-digest/pkg/httpclient"
	"github.com/samvad-hq/kannur-news-digest/pkg/publishers"
	"github.com/samvad-hq/kannur-news-digest/pkg/render"
	"github.com/samvad-hq/kannur-news-digest/pkg/sources"
)

// PageRenderer turns selected tiers into a page.
type PageRenderer interface {
	Render(w io.Writer, p render.Page) error
}

// EventPublisher announces a generated digest. *publishers.Fanout satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Options configures a Digest. Nil dependencies fall back to defaults.
type Options struct {
	Sources      []domain.FeedSource
	Keywords     *classify.Keywords
	Fetcher      feeds.Fetcher
	Renderer     PageRenderer
	Publisher    EventPublisher
	OutputPath   string
	FetchTimeout time.Duration
	SourceDelay  time.Duration
	Log          logger.Logger
	Now          func() time.Time
}

// Result is the outcome of one pipeline pass.
type Result struct {
	Sources     []crawler.SourceResult
	Items       []domain.NewsItem
	Tiers       ranking.Tiers
	GeneratedAt time.Time
}

// Failures lists the sources that contributed nothing.
func (r Result) Failures() []publishers.SourceFailure {
	var out []publishers.SourceFailure
	for _, sr := range r.Sources {
		if sr.OK() {
			continue
		}
		out = append(out, publishers.SourceFailure{
			SourceID:   sr.Source.ID,
			SourceName: sr.Source.Name,
			Error:      sr.Err.Error(),
		})
	}
	return out
}

// Digest runs crawl, classify, rank and render, then announces the page.
type Digest struct {
	sources    []domain.FeedSource
	crawler    *crawler.Service
	classifier *classify.Classifier
	renderer   PageRenderer
	publisher  EventPublisher
	outputPath string
	log        logger.Logger
	now        func() time.Time
	closers    []io.Closer
}

// New builds a Digest from explicit dependencies.
func New(opts Options) (*Digest, error) {
	srcs := opts.Sources
	if srcs == nil {
		srcs = sources.Defaults()
	}
	srcs, err := sources.Prepare(srcs)
	if err != nil {
		return nil, fmt.Errorf("prepare sources: %w", err)
	}

	outputPath := strings.TrimSpace(opts.OutputPath)
	if outputPath == "" {
		return nil, errors.New("output path must not be empty")
	}

	log := logger.OrNop(opts.Log)

	keywords := classify.DefaultKeywords()
	if opts.Keywords != nil {
		keywords = *opts.Keywords
	}

	renderer := opts.Renderer
	if renderer == nil {
		r, err := render.New()
		if err != nil {
			return nil, err
		}
		renderer = r
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	crawlOpts := []crawler.Option{crawler.WithLogger(log)}
	if opts.FetchTimeout > 0 {
		crawlOpts = append(crawlOpts, crawler.WithFetchTimeout(opts.FetchTimeout))
	}
	if opts.SourceDelay > 0 {
		crawlOpts = append(crawlOpts, crawler.WithSourceDelay(opts.SourceDelay))
	}

	return &Digest{
		sources:    srcs,
		crawler:    crawler.NewService(opts.Fetcher, crawlOpts...),
		classifier: classify.New(keywords),
		renderer:   renderer,
		publisher:  opts.Publisher,
		outputPath: outputPath,
		log:        log,
		now:        now,
	}, nil
}

// NewDigest builds the production runtime from config.
func NewDigest(ctx context.Context, cfg *config.Config, log logger.Logger) (*Digest, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.OrNop(log)

	client := httpclient.NewRestyClient(cfg.FetchTimeout, cfg.UserAgent)
	opts := Options{
		Fetcher:      feeds.NewRSSFetcher(client, nil),
		OutputPath:   cfg.OutputPath,
		FetchTimeout: cfg.FetchTimeout,
		SourceDelay:  cfg.SourceDelay,
		Log:          log,
	}

	var fanout *publishers.Fanout
	if path := strings.TrimSpace(cfg.PublishersFile); path != "" {
		f, err := publishers.FromFile(ctx, path, log)
		if err != nil {
			return nil, fmt.Errorf("load publishers: %w", err)
		}
		fanout = f
		opts.Publisher = f
		log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
			"count":   f.Size(),
			"targets": f.Targets(),
			"file":    path,
		})
	}

	d, err := New(opts)
	if err != nil {
		if fanout != nil {
			_ = fanout.Close()
		}
		return nil, err
	}
	if fanout != nil {
		d.closers = append(d.closers, fanout)
	}

	ids := make([]string, 0, len(d.sources))
	for _, src := range d.sources {
		ids = append(ids, src.ID)
	}
	log.InfoObj("feed sources loaded", "sources_meta", map[string]any{
		"count": len(ids),
		"ids":   ids,
	})
	return d, nil
}

// Build crawls every source, classifies the entries and selects the tiers.
// Source failures are reported in the result, never as an error.
func (d *Digest) Build(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	results := d.crawler.Collect(ctx, d.sources)
	items := d.classifier.ClassifyAll(crawler.Entries(results))
	tiers := ranking.Build(items)

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	d.log.InfoObj("crawl finished", "crawl_meta", map[string]any{
		"sources":        len(results),
		"failed_sources": failed,
	})
	d.log.InfoObj("items classified", "classify_stats", d.classifier.Summarize(items))
	if err := crawler.Failures(results); err != nil {
		d.log.WarnObj("some sources contributed no items", "source_failures", err.Error())
	}

	return Result{
		Sources:     results,
		Items:       items,
		Tiers:       tiers,
		GeneratedAt: d.now(),
	}
}

// Run builds the digest, writes the page and publishes the event.
// Only render and write failures are returned.
func (d *Digest) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	res := d.Build(ctx)
	if err := d.write(res); err != nil {
		return err
	}
	d.log.InfoObj("digest written", "digest_meta", map[string]any{
		"output_path": d.outputPath,
		"featured":    len(res.Tiers.Featured),
		"secondary":   len(res.Tiers.Secondary),
		"empty":       res.Tiers.Empty,
	})

	d.publish(ctx, res)
	return nil
}

// Close releases publisher connections.
func (d *Digest) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// write renders into a temp file beside the output and renames it into place.
func (d *Digest) write(res Result) (err error) {
	dir := filepath.Dir(d.outputPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.outputPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp page: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = d.renderer.Render(tmp, render.Page{Tiers: res.Tiers, GeneratedAt: res.GeneratedAt}); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("render page: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp page: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp page: %w", err)
	}
	if err = os.Rename(tmp.Name(), d.outputPath); err != nil {
		return fmt.Errorf("replace page: %w", err)
	}
	return nil
}

func (d *Digest) publish(ctx context.Context, res Result) {
	if d.publisher == nil {
		return
	}
	evt := publishers.NewEvent(d.outputPath, res.GeneratedAt, res.Items, res.Tiers, res.Failures())
	delivered, err := d.publisher.Publish(ctx, evt)
	if err != nil {
		d.log.ErrorObj("digest publish failed", "publish_error", map[string]any{
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	d.log.InfoObj("digest published", "publish_meta", map[string]any{
		"delivered": delivered,
	})
}
