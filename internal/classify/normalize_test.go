package classify

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "  Kannur beach clean-up  ", want: "Kannur beach clean-up"},
		{name: "tags", in: `<p>Theyyam <b>season</b> opens</p>`, want: "Theyyam season opens"},
		{name: "entities", in: "Fish &amp; chips &quot;fresh&quot; &#8217;", want: "Fish & chips \"fresh\" ’"},
		{name: "unmatched bracket", in: "a < b and c", want: "a < b and c"},
		{name: "dangling open tag", in: "price <10 today", want: "price <10 today"},
		{name: "encoded tag", in: "&lt;script&gt;alert(1)&lt;/script&gt; done", want: "alert(1) done"},
		{name: "img with attrs", in: `<img src="x.jpg" alt="a"/>Caption`, want: "Caption"},
		{name: "decoded comparison forms a span", in: "Sensex &lt; 80,000 while Nifty &gt; 24,000", want: "Sensex  24,000"},
		{name: "single decoded bracket survives", in: "Sensex &lt; 80,000 today", want: "Sensex < 80,000 today"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeNeverLeavesTagSpans(t *testing.T) {
	span := regexp.MustCompile(`<[^>]+>`)
	inputs := []string{
		"<div><a href='#'>x</a></div>",
		"&lt;i&gt;nested &lt;b&gt;tags&lt;/b&gt;&lt;/i&gt;",
		"<<b>>double",
		"text &amp;lt;em&amp;gt; twice encoded",
	}
	for _, in := range inputs {
		out := Normalize(in)
		assert.Falsef(t, span.MatchString(out), "tag span left in %q -> %q", in, out)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("k", 250)
	got := Truncate(long, MaxDescriptionRunes)
	assert.Equal(t, 203, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, Ellipsis))

	exact := strings.Repeat("k", 200)
	assert.Equal(t, exact, Truncate(exact, MaxDescriptionRunes))

	malayalam := strings.Repeat("ക", 201)
	got = Truncate(malayalam, MaxDescriptionRunes)
	assert.Equal(t, 203, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
