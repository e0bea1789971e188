package classify

import "strings"

// Keywords holds the case-insensitive keyword sets used by the classifier.
// Regional decides IsRegional; General is informational only.
type Keywords struct {
	regional []string
	general  []string
}

// NewKeywords lower-cases and copies the given sets, dropping blanks.
func NewKeywords(regional, general []string) Keywords {
	return Keywords{
		regional: lowerAll(regional),
		general:  lowerAll(general),
	}
}

// DefaultKeywords returns the Kannur (regional) and Kerala (general) sets.
func DefaultKeywords() Keywords {
	return NewKeywords(
		[]string{"kannur", "malabar", "theyyam", "thalassery", "payyanur", "iritty", "north kerala", "kasaragod"},
		[]string{"kerala", "kochi", "thiruvananthapuram", "kozhikode", "thrissur", "tourism"},
	)
}

// Regional returns a copy of the regional keyword set.
func (k Keywords) Regional() []string { return append([]string(nil), k.regional...) }

// General returns a copy of the general keyword set.
func (k Keywords) General() []string { return append([]string(nil), k.general...) }

// IsRegional reports whether title or description mention a regional keyword.
// Matching is plain substring containment, so "kannurians" matches "kannur".
func (k Keywords) IsRegional(title, description string) bool {
	return containsAny(joinLower(title, description), k.regional)
}

// MatchesGeneral reports whether the text mentions a general keyword. It never
// feeds classification or ranking.
func (k Keywords) MatchesGeneral(title, description string) bool {
	return containsAny(joinLower(title, description), k.general)
}

func joinLower(title, description string) string {
	return strings.ToLower(title + " " + description)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
