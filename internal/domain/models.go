package domain

// Domain contains core models shared by the digest pipeline.

// FeedSource is a syndication endpoint the digest pulls from.
type FeedSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// RawEntry is a feed entry as the source returned it, tagged with its origin.
type RawEntry struct {
	Title     string
	Summary   string
	Link      string
	Published string
	ImageURL  string
	Source    FeedSource
}

// NewsItem is a classified, render-ready entry.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	ImageURL    string `json:"image_url"`
	SourceName  string `json:"source_name"`
	SourceIcon  string `json:"source_icon"`
	IsRegional  bool   `json:"is_regional"`
}
