// Package aggregate fetches the pages behind search results and folds their
// visible text into one bounded context string for summarization.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/aitiwari/aisearch/internal/logger"
	"github.com/aitiwari/aisearch/internal/search"
)

const (
	// PerPageLimit caps the extracted text of a single page.
	PerPageLimit = 2000
	// TotalLimit caps the joined context string.
	TotalLimit = 12000

	fetchTimeout = 10 * time.Second
	probeTimeout = 5 * time.Second

	maxBodyBytes = 2 * 1024 * 1024
)

// FetchOutcome records what happened to one source during aggregation.
// Skipped outcomes are normal operation, not errors.
type FetchOutcome struct {
	URL     string
	Text    string
	Skipped bool
	Reason  string
}

// Aggregator fetches pages sequentially, one request at a time, in result
// order.
type Aggregator struct {
	client      *http.Client
	probeClient *http.Client
	validateURL func(string) error
}

// New returns an Aggregator. validateURL guards every outbound request and
// may be nil to disable validation.
func New(validateURL func(string) error) *Aggregator {
	return &Aggregator{
		client:      &http.Client{Timeout: fetchTimeout},
		probeClient: &http.Client{Timeout: probeTimeout},
		validateURL: validateURL,
	}
}

// Aggregate fetches each result's page, extracts paragraph text, truncates
// per page and in total, and joins the chunks with blank lines. Fetch
// failures skip the source; the returned outcomes record every source's
// fate. An empty string means no source survived.
func (a *Aggregator) Aggregate(ctx context.Context, results []search.SearchResult) (string, []FetchOutcome) {
	outcomes := make([]FetchOutcome, 0, len(results))
	var chunks []string

	for _, r := range results {
		text, err := a.fetchPageText(ctx, r.URL)
		if err != nil {
			logger.Debugf("skipping %s: %v", r.URL, err)
			outcomes = append(outcomes, FetchOutcome{URL: r.URL, Skipped: true, Reason: err.Error()})
			continue
		}
		text = truncate(text, PerPageLimit)
		outcomes = append(outcomes, FetchOutcome{URL: r.URL, Text: text})
		if text != "" {
			chunks = append(chunks, text)
		}
	}

	return truncate(strings.Join(chunks, "\n\n"), TotalLimit), outcomes
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// fetchPageText GETs a page and returns the concatenated text of its
// paragraph elements.
func (a *Aggregator) fetchPageText(ctx context.Context, rawURL string) (string, error) {
	if a.validateURL != nil {
		if err := a.validateURL(rawURL); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " "), nil
}

// Fetched counts non-skipped outcomes.
func Fetched(outcomes []FetchOutcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Skipped {
			n++
		}
	}
	return n
}

// ProbeImages keeps only the images whose URL answers an HTTP HEAD with a
// success status, preserving the provider's order.
func (a *Aggregator) ProbeImages(ctx context.Context, results []search.ImageResult) []search.ImageResult {
	var valid []search.ImageResult
	for _, r := range results {
		if a.probeImage(ctx, r.ImageURL) {
			valid = append(valid, r)
		}
	}
	return valid
}

func (a *Aggregator) probeImage(ctx context.Context, rawURL string) bool {
	if a.validateURL != nil {
		if err := a.validateURL(rawURL); err != nil {
			logger.Debugf("image probe blocked %s: %v", rawURL, err)
			return false
		}
	}

	req, err := http.NewRequestWithContext(ctx, "HEAD", rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")

	resp, err := a.probeClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
