package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/kannur-news-digest/internal/logger"
	"github.com/samvad-hq/kannur-news-digest/pkg/httpclient"
)

type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = httpDefaultTimeoutSeconds * time.Second
	}
	method := cfg.HTTP.Method
	if method == "" {
		method = httpDefaultMethod
	}

	return &httpPublisher{
		id:      cfg.ID,
		method:  method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(timeout),
		log:     logger.OrNop(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	enc, err := encodeEvent(evt)
	if err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetBody(enc.body)

	if len(h.headers) > 0 {
		req.SetHeaders(h.headers)
	}

	req.SetHeader("Content-Type", "application/json")
	req.SetHeader("X-Event-Kind", enc.kind)

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		logFailed(h.log, h, err)
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		err := fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
		logFailed(h.log, h, err)
		return err
	}
	logDelivered(h.log, h, resp.Header().Get("X-Request-Id"))
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
