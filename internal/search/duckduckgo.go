package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultDDGHTMLBaseURL   = "https://html.duckduckgo.com"
	defaultDDGImagesBaseURL = "https://duckduckgo.com"
)

// DuckDuckGoEngine scrapes the DuckDuckGo HTML endpoint for text search and
// uses the i.js endpoint for image search. No API key required.
type DuckDuckGoEngine struct {
	name          string
	htmlBaseURL   string
	imagesBaseURL string
	enabled       bool
	priority      int
	client        *http.Client
}

func NewDuckDuckGoEngine(config Config) (Engine, error) {
	htmlBaseURL := config.BaseURL
	if htmlBaseURL == "" {
		htmlBaseURL = defaultDDGHTMLBaseURL
	}
	imagesBaseURL := defaultDDGImagesBaseURL
	if v, ok := config.Options["images_base_url"].(string); ok && v != "" {
		imagesBaseURL = v
	}

	return &DuckDuckGoEngine{
		name:          config.Name,
		htmlBaseURL:   htmlBaseURL,
		imagesBaseURL: imagesBaseURL,
		enabled:       config.Enabled,
		priority:      config.Priority,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (e *DuckDuckGoEngine) Name() string {
	return e.name
}

func (e *DuckDuckGoEngine) Type() string {
	return "duckduckgo"
}

func (e *DuckDuckGoEngine) IsEnabled() bool {
	return e.enabled
}

func (e *DuckDuckGoEngine) Priority() int {
	return e.priority
}

func (e *DuckDuckGoEngine) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	startTime := time.Now()

	searchURL := fmt.Sprintf("%s/html/?q=%s&kl=wt-wt", e.htmlBaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	retrievedAt := time.Now()
	var results []SearchResult
	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= limit {
			return false
		}
		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		resultURL := resolveRedirect(href)
		if resultURL == "" {
			return true
		}
		results = append(results, SearchResult{
			Title:       strings.TrimSpace(link.Text()),
			URL:         resultURL,
			Snippet:     strings.TrimSpace(s.Find("a.result__snippet").First().Text()),
			Source:      e.name,
			RetrievedAt: retrievedAt,
		})
		return true
	})

	return &SearchResponse{
		Query:    query,
		Results:  results,
		Engine:   e.name,
		Duration: time.Since(startTime),
	}, nil
}

// resolveRedirect unwraps the /l/?uddg= redirect DuckDuckGo wraps result
// links in. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return href
	}
	return ""
}

var vqdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`vqd="([^"]+)"`),
	regexp.MustCompile(`vqd=([\d-]+)`),
}

func (e *DuckDuckGoEngine) SearchImages(ctx context.Context, query string, limit int) (*ImageResponse, error) {
	startTime := time.Now()

	vqd, err := e.fetchVQD(ctx, query)
	if err != nil {
		return nil, err
	}

	imagesURL := fmt.Sprintf("%s/i.js?l=wt-wt&o=json&q=%s&vqd=%s&p=1",
		e.imagesBaseURL, url.QueryEscape(query), url.QueryEscape(vqd))
	req, err := http.NewRequestWithContext(ctx, "GET", imagesURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")
	req.Header.Set("Referer", e.imagesBaseURL+"/")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var apiResponse struct {
		Results []struct {
			Title string `json:"title"`
			Image string `json:"image"`
			URL   string `json:"url"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse image response: %w", err)
	}

	results := make([]ImageResult, 0, limit)
	for _, r := range apiResponse.Results {
		if len(results) >= limit {
			break
		}
		if r.Image == "" {
			continue
		}
		results = append(results, ImageResult{
			Title:     r.Title,
			ImageURL:  r.Image,
			SourceURL: r.URL,
		})
	}

	return &ImageResponse{
		Query:    query,
		Results:  results,
		Engine:   e.name,
		Duration: time.Since(startTime),
	}, nil
}

// fetchVQD extracts the vqd token the image endpoint requires from the
// regular search page.
func (e *DuckDuckGoEngine) fetchVQD(ctx context.Context, query string) (string, error) {
	tokenURL := fmt.Sprintf("%s/?q=%s&ia=images&iax=images", e.imagesBaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", tokenURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", err
	}

	for _, pattern := range vqdPatterns {
		if m := pattern.FindSubmatch(body); m != nil {
			return string(m[1]), nil
		}
	}
	return "", fmt.Errorf("vqd token not found in search page")
}
