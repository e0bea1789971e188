// Package render produces the static news page from ranked tiers.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/samvad-hq/kannur-news-digest/internal/domain"
	"github.com/samvad-hq/kannur-news-digest/internal/ranking"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IST is India Standard Time (UTC+05:30).
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Page is the input of a render.
type Page struct {
	Tiers       ranking.Tiers
	GeneratedAt time.Time
}

type pageView struct {
	Featured  []domain.NewsItem
	Secondary []domain.NewsItem
	Empty     bool
	Today     string
	DayMonth  string
	Year      string
	Updated   string
}

// Renderer executes the page template.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/news.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for p to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "news.html.tmpl", newPageView(p)); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

func newPageView(p Page) pageView {
	now := p.GeneratedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(IST)
	return pageView{
		Featured:  p.Tiers.Featured,
		Secondary: p.Tiers.Secondary,
		Empty:     p.Tiers.Empty,
		Today:     now.Format("Monday, 02 January 2006"),
		DayMonth:  now.Format("02 January 2006"),
		Year:      now.Format("2006"),
		Updated:   now.Format("03:04 PM") + " IST",
	}
}
