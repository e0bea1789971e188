package classify

import (
	"html"
	"regexp"
	"strings"
)

var reTagSpan = regexp.MustCompile(`<[^>]+>`)

// Normalize strips markup tags, decodes HTML entities and trims surrounding
// whitespace. Tag spans produced by entity decoding (&lt;b&gt;) are stripped
// as well, which also drops text between an escaped < and a later escaped >.
// Unbalanced angle brackets are kept.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := reTagSpan.ReplaceAllString(raw, "")
	text = html.UnescapeString(text)
	text = reTagSpan.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Truncate cuts s to max runes and appends Ellipsis when anything was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + Ellipsis
}
