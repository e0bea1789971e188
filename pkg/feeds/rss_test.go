package feeds

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/pkg/httpclient"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Kerala</title>
    <item>
      <title>Theyyam &amp; temple arts</title>
      <description><![CDATA[<p>Season opens in <b>Kannur</b></p>]]></description>
      <link>https://example.com/theyyam</link>
      <pubDate>Mon, 20 Oct 2025 06:30:00 +0530</pubDate>
      <media:content url="https://example.com/media.jpg" medium="image"/>
      <enclosure url="https://example.com/enclosure.jpg" length="0" type="image/jpeg"/>
    </item>
    <item>
      <title>Monsoon update</title>
      <description>Heavy rain expected</description>
      <link>https://example.com/rain</link>
      <enclosure url="https://example.com/rain.jpg" length="0" type="image/jpeg"/>
    </item>
    <item>
      <title>No attachments</title>
      <description>Plain item</description>
    </item>
    <item>
      <title>Grouped media</title>
      <media:group>
        <media:content url="https://example.com/grouped.jpg"/>
      </media:group>
    </item>
  </channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>South</title>
  <entry>
    <title>Ferry services resume</title>
    <link href="https://example.com/ferry"/>
    <published>2025-10-20T07:00:00+05:30</published>
    <content type="html">&lt;p&gt;Boats back at Azhikkal&lt;/p&gt;</content>
  </entry>
</feed>`

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte        { return r.body }
func (r mockResponse) StatusCode() int     { return r.statusCode }
func (r mockResponse) ContentType() string { return "application/xml" }

type mockHTTPClient struct {
	t       *testing.T
	expect  map[string]string
	status  int
	body    string
	err     error
	gotURLs []string
}

func (m *mockHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.gotURLs = append(m.gotURLs, url)
	for key, want := range m.expect {
		if got := headers[key]; got != want {
			m.t.Fatalf("expected header %s=%q, got %q", key, want, got)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

var testSource = domain.FeedSource{ID: "hindu", Name: "The Hindu Kerala", Icon: "📰", URL: "https://example.com/rss"}

func TestRSSFetcherParsesEntriesInOrder(t *testing.T) {
	client := &mockHTTPClient{
		t:      t,
		body:   sampleRSS,
		expect: map[string]string{"Accept": acceptHeader, "Cache-Control": "no-cache"},
	}
	fetcher := NewRSSFetcher(client, map[string]string{"Cache-Control": "no-cache", " ": "skip"})

	entries, err := fetcher.Fetch(context.Background(), testSource)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if client.gotURLs[0] != testSource.URL {
		t.Fatalf("fetched %q", client.gotURLs[0])
	}

	first := entries[0]
	if first.Title != "Theyyam & temple arts" {
		t.Errorf("Title = %q", first.Title)
	}
	if !strings.Contains(first.Summary, "<b>Kannur</b>") {
		t.Errorf("Summary should be raw markup, got %q", first.Summary)
	}
	if first.Link != "https://example.com/theyyam" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Published != "Mon, 20 Oct 2025 06:30:00 +0530" {
		t.Errorf("Published = %q", first.Published)
	}
	if first.Source != testSource {
		t.Errorf("Source = %+v", first.Source)
	}

	wantImages := []string{
		"https://example.com/media.jpg",
		"https://example.com/rain.jpg",
		"",
		"https://example.com/grouped.jpg",
	}
	for i, want := range wantImages {
		if entries[i].ImageURL != want {
			t.Errorf("entry[%d].ImageURL = %q want %q", i, entries[i].ImageURL, want)
		}
	}
	if entries[2].Link != "" {
		t.Errorf("expected empty link to stay empty for the classifier, got %q", entries[2].Link)
	}
}

const blankMediaRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>South</title>
    <item>
      <title>Boat race at Payyambalam</title>
      <link>https://example.com/boat-race</link>
      <media:content url="" medium="image"/>
      <enclosure url="https://example.com/boat.jpg" length="0" type="image/jpeg"/>
    </item>
  </channel>
</rss>`

func TestRSSFetcherBlankMediaURLDoesNotFallBackToEnclosure(t *testing.T) {
	entries, err := NewRSSFetcher(&mockHTTPClient{t: t, body: blankMediaRSS}, nil).Fetch(context.Background(), testSource)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ImageURL != "" {
		t.Fatalf("media:content present, expected blank image, got %q", entries[0].ImageURL)
	}
}

func TestRSSFetcherAcceptsAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNonAuthoritativeInfo, http.StatusPartialContent} {
		client := &mockHTTPClient{t: t, status: status, body: sampleRSS}
		entries, err := NewRSSFetcher(client, nil).Fetch(context.Background(), testSource)
		if err != nil {
			t.Fatalf("status %d: Fetch: %v", status, err)
		}
		if len(entries) != 4 {
			t.Fatalf("status %d: expected 4 entries, got %d", status, len(entries))
		}
	}
}

func TestRSSFetcherParsesAtomContent(t *testing.T) {
	fetcher := NewRSSFetcher(&mockHTTPClient{t: t, body: sampleAtom}, nil)
	entries, err := fetcher.Fetch(context.Background(), testSource)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Link != "https://example.com/ferry" {
		t.Errorf("Link = %q", entries[0].Link)
	}
	if !strings.Contains(entries[0].Summary, "Azhikkal") {
		t.Errorf("expected content fallback in summary, got %q", entries[0].Summary)
	}
}

func TestRSSFetcherErrors(t *testing.T) {
	cases := []struct {
		name   string
		client *mockHTTPClient
		want   string
	}{
		{name: "transport", client: &mockHTTPClient{err: errors.New("dial tcp: refused")}, want: "fetch hindu feed"},
		{name: "status", client: &mockHTTPClient{status: http.StatusBadGateway, body: "upstream"}, want: "status 502"},
		{name: "redirect status", client: &mockHTTPClient{status: http.StatusNotModified, body: sampleRSS}, want: "status 304"},
		{name: "informational status", client: &mockHTTPClient{status: http.StatusContinue, body: sampleRSS}, want: "status 100"},
		{name: "empty", client: &mockHTTPClient{body: "   "}, want: "empty body"},
		{name: "malformed", client: &mockHTTPClient{body: "<html><body>not a feed</body></html>"}, want: "parse hindu feed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.client.t = t
			_, err := NewRSSFetcher(tc.client, nil).Fetch(context.Background(), testSource)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRSSFetcherRejectsEmptyURL(t *testing.T) {
	client := &mockHTTPClient{t: t}
	_, err := NewRSSFetcher(client, nil).Fetch(context.Background(), domain.FeedSource{ID: "x"})
	if err == nil {
		t.Fatalf("expected error for empty url")
	}
	if len(client.gotURLs) != 0 {
		t.Fatalf("no request expected")
	}
}

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet(nil); got != "<empty>" {
		t.Errorf("responseSnippet(nil) = %q", got)
	}
	long := responseSnippet([]byte(strings.Repeat("x", 600)))
	if len(long) != 515 {
		t.Errorf("expected truncated snippet of 515 bytes, got %d", len(long))
	}
}
