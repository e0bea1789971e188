package classify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
)

var hindu = domain.FeedSource{ID: "the-hindu-kerala", Name: "The Hindu Kerala", Icon: "📰"}

func TestClassifyCopiesFieldsAndProvenance(t *testing.T) {
	c := New(DefaultKeywords())
	item, ok := c.Classify(domain.RawEntry{
		Title:     " <b>Theyyam</b> festival draws crowds ",
		Summary:   "<p>Devotees &amp; tourists gather.</p>",
		Link:      "https://example.com/theyyam",
		Published: "Mon, 20 Oct 2025 06:30:00 +0530",
		ImageURL:  "https://example.com/t.jpg",
		Source:    hindu,
	})
	require.True(t, ok)

	assert.Equal(t, "Theyyam festival draws crowds", item.Title)
	assert.Equal(t, "Devotees & tourists gather.", item.Description)
	assert.Equal(t, "https://example.com/theyyam", item.Link)
	assert.Equal(t, "Mon, 20 Oct 2025 06:30:00 +0530", item.PublishedAt)
	assert.Equal(t, "https://example.com/t.jpg", item.ImageURL)
	assert.Equal(t, "The Hindu Kerala", item.SourceName)
	assert.Equal(t, "📰", item.SourceIcon)
	assert.True(t, item.IsRegional)
}

func TestClassifySkipsEmptyTitle(t *testing.T) {
	c := New(DefaultKeywords())
	_, ok := c.Classify(domain.RawEntry{Title: "  <span></span> ", Summary: "kannur"})
	assert.False(t, ok)
}

func TestClassifyLinkPlaceholder(t *testing.T) {
	c := New(DefaultKeywords())
	item, ok := c.Classify(domain.RawEntry{Title: "No link here"})
	require.True(t, ok)
	assert.Equal(t, LinkPlaceholder, item.Link)
	assert.Equal(t, "", item.ImageURL)
}

func TestClassifyTruncatesDescription(t *testing.T) {
	c := New(DefaultKeywords())
	long := strings.Repeat("a", 180) + " &amp; " + strings.Repeat("b", 100)
	item, ok := c.Classify(domain.RawEntry{Title: "t", Summary: long})
	require.True(t, ok)
	assert.Equal(t, 203, utf8.RuneCountInString(item.Description))
	assert.True(t, strings.HasSuffix(item.Description, Ellipsis))

	short, ok := c.Classify(domain.RawEntry{Title: "t", Summary: "<i>short</i>"})
	require.True(t, ok)
	assert.Equal(t, "short", short.Description)
}

func TestClassifyRegionalUsesFullDescription(t *testing.T) {
	c := New(DefaultKeywords())
	desc := strings.Repeat("x", 250) + " payyanur"
	item, ok := c.Classify(domain.RawEntry{Title: "Late mention", Summary: desc})
	require.True(t, ok)
	assert.True(t, item.IsRegional)
	assert.NotContains(t, item.Description, "payyanur")
}

func TestIsRegional(t *testing.T) {
	k := DefaultKeywords()
	cases := []struct {
		title, desc string
		want        bool
	}{
		{"Theyyam festival draws crowds", "", true},
		{"Budget session begins in Thiruvananthapuram", "", false},
		{"Kerala tourism hits record", "Kochi and Thrissur lead", false},
		{"Rains lash NORTH KERALA", "", true},
		{"Fisheries", "boats return to Thalassery harbour", true},
		{"Kannurians abroad", "", true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, k.IsRegional(tc.title, tc.desc), "IsRegional(%q, %q)", tc.title, tc.desc)
	}
}

func TestKeywordsAreCopied(t *testing.T) {
	regional := []string{"Kannur"}
	k := NewKeywords(regional, nil)
	regional[0] = "changed"
	assert.True(t, k.IsRegional("kannur news", ""))

	got := k.Regional()
	got[0] = "mutated"
	assert.Equal(t, []string{"kannur"}, k.Regional())
}

func TestClassifyAllKeepsOrderAndDuplicates(t *testing.T) {
	c := New(DefaultKeywords())
	entries := []domain.RawEntry{
		{Title: "one"},
		{Title: ""},
		{Title: "two"},
		{Title: "one"},
	}
	items := c.ClassifyAll(entries)
	require.Len(t, items, 3)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, "two", items[1].Title)
	assert.Equal(t, "one", items[2].Title)
}

func TestSummarize(t *testing.T) {
	c := New(DefaultKeywords())
	items := c.ClassifyAll([]domain.RawEntry{
		{Title: "Kannur airport expands"},
		{Title: "Kochi metro extension"},
		{Title: "Markets close flat"},
	})
	st := c.Summarize(items)
	assert.Equal(t, Stats{Total: 3, Region: 1, General: 1}, st)
}
