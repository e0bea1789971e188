// Package feeds downloads RSS/Atom documents and maps their entries to raw entries.
package feeds

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/pkg/httpclient"
)

const (
	defaultTimeout = 15 * time.Second
	acceptHeader   = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
)

// DefaultHTTPClient returns a resty-backed client tuned for feed downloads.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(defaultTimeout, "") }

// rssFetcher implements Fetcher for RSS and Atom documents.
type rssFetcher struct {
	client  HTTPClient
	headers map[string]string
}

// NewRSSFetcher builds a fetcher around client. extraHeaders are sent on every request.
func NewRSSFetcher(client HTTPClient, extraHeaders map[string]string) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	headers := map[string]string{"Accept": acceptHeader}
	for k, v := range extraHeaders {
		if k = strings.TrimSpace(k); k != "" && strings.TrimSpace(v) != "" {
			headers[k] = strings.TrimSpace(v)
		}
	}
	return &rssFetcher{client: client, headers: headers}
}

func (f *rssFetcher) Fetch(ctx context.Context, src domain.FeedSource) ([]domain.RawEntry, error) {
	if strings.TrimSpace(src.URL) == "" {
		return nil, fmt.Errorf("source %q url is empty", src.ID)
	}

	raw, err := f.download(ctx, src)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", src.ID, err)
	}

	entries := make([]domain.RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toRawEntry(src, item))
	}
	return entries, nil
}

func (f *rssFetcher) download(ctx context.Context, src domain.FeedSource) ([]byte, error) {
	resp, err := f.client.Get(ctx, src.URL, f.headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", src.ID, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s feed returned status %d body: %s", src.ID, resp.StatusCode(), responseSnippet(body))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s feed returned an empty body", src.ID)
	}
	return body, nil
}

func toRawEntry(src domain.FeedSource, item *gofeed.Item) domain.RawEntry {
	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	return domain.RawEntry{
		Title:     item.Title,
		Summary:   summary,
		Link:      item.Link,
		Published: item.Published,
		ImageURL:  imageURL(item),
		Source:    src,
	}
}

// imageURL applies the attachment policy: first media:content url (including
// media:content nested in media:group), else the first enclosure url, else "".
// When media content exists its url is used even if blank.
func imageURL(item *gofeed.Item) string {
	if content, ok := firstMediaContent(item.Extensions); ok {
		return strings.TrimSpace(content.Attrs["url"])
	}
	for _, enc := range item.Enclosures {
		if enc != nil {
			return strings.TrimSpace(enc.URL)
		}
	}
	return ""
}

func firstMediaContent(exts ext.Extensions) (ext.Extension, bool) {
	media, ok := exts["media"]
	if !ok {
		return ext.Extension{}, false
	}
	if contents := media["content"]; len(contents) > 0 {
		return contents[0], true
	}
	for _, group := range media["group"] {
		if contents := group.Children["content"]; len(contents) > 0 {
			return contents[0], true
		}
	}
	return ext.Extension{}, false
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
