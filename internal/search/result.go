package search

import "time"

// SearchResult is one text-search hit, immutable once created.
type SearchResult struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Snippet     string    `json:"snippet"`
	Source      string    `json:"source"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

type SearchResponse struct {
	Query    string         `json:"query"`
	Results  []SearchResult `json:"results"`
	Engine   string         `json:"engine"`
	Duration time.Duration  `json:"duration"`
}

// ImageResult is one image-search hit. ImageURL points at the image file
// itself, SourceURL at the page it was found on.
type ImageResult struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url"`
}

type ImageResponse struct {
	Query    string        `json:"query"`
	Results  []ImageResult `json:"results"`
	Engine   string        `json:"engine"`
	Duration time.Duration `json:"duration"`
}
