package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/aitiwari/aisearch/internal/catalog"
	"github.com/aitiwari/aisearch/internal/search"
	"github.com/aitiwari/aisearch/internal/video"
)

const (
	// MaxSearchResults bounds web and news searches.
	MaxSearchResults = 4
	// TranscriptLimit caps transcript text passed to summarization.
	TranscriptLimit = 10000

	MinImages = 1
	MaxImages = 20
)

// Options carries per-request settings chosen by the caller.
type Options struct {
	// Categories are the selected news categories (news mode only).
	Categories []string
	// Sites restricts news search to specific domains from the resolved
	// category union.
	Sites []string
	// ImageCount is the requested number of images (image mode only),
	// clamped to [MinImages, MaxImages].
	ImageCount int
}

// TranscriptFetcher fetches a video transcript by video id.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]video.Segment, error)
}

// SearchProvider is the slice of search.Manager the dispatcher needs.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) (*search.SearchResponse, error)
	SearchImages(ctx context.Context, query string, limit int) (*search.ImageResponse, error)
}

// Dispatcher builds the outbound provider requests for each retrieval mode
// and normalizes the responses.
type Dispatcher struct {
	manager     SearchProvider
	transcripts TranscriptFetcher
}

func NewDispatcher(manager SearchProvider, transcripts TranscriptFetcher) *Dispatcher {
	return &Dispatcher{
		manager:     manager,
		transcripts: transcripts,
	}
}

// SearchWeb sends the query unmodified and returns up to MaxSearchResults
// results in provider order.
func (d *Dispatcher) SearchWeb(ctx context.Context, query string) ([]search.SearchResult, error) {
	resp, err := d.manager.Search(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, &RetrievalError{Mode: ModeWeb, Err: err}
	}
	return resp.Results, nil
}

// SearchNews augments the query with the resolved category domain list (and
// any chosen sub-sites) and performs a regular search. The augmented query
// is returned alongside the results for use in summarization. Fails with
// ErrNoCategory before any call when no category is selected.
func (d *Dispatcher) SearchNews(ctx context.Context, query string, opts Options) ([]search.SearchResult, string, error) {
	if len(opts.Categories) == 0 {
		return nil, "", ErrNoCategory
	}

	domains := catalog.Resolve(opts.Categories)
	augmented := AugmentNewsQuery(query, domains, filterSites(opts.Sites, domains))

	resp, err := d.manager.Search(ctx, augmented, MaxSearchResults)
	if err != nil {
		return nil, augmented, &RetrievalError{Mode: ModeNews, Err: err}
	}
	return resp.Results, augmented, nil
}

// filterSites keeps only the sites that belong to the resolved domain
// union; anything outside the selected categories is dropped.
func filterSites(sites, domains []string) []string {
	if len(sites) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(domains))
	for _, d := range domains {
		allowed[d] = true
	}
	var out []string
	for _, s := range sites {
		if allowed[s] {
			out = append(out, s)
		}
	}
	return out
}

// AugmentNewsQuery appends a textual description of the domain set to the
// query. This is deliberate query augmentation, not a provider-side domain
// filter: the search provider offers no native restriction mechanism.
func AugmentNewsQuery(query string, domains, sites []string) string {
	var b strings.Builder
	b.WriteString(query)
	b.WriteString(" in category [")
	b.WriteString(strings.Join(domains, ", "))
	b.WriteString("]")
	if len(sites) > 0 {
		b.WriteString(" sites [")
		b.WriteString(strings.Join(sites, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// FetchTranscript fetches the transcript for a video id and returns its
// joined text, capped at TranscriptLimit.
func (d *Dispatcher) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	segments, err := d.transcripts.Fetch(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("error processing video: %w", err)
	}
	return video.JoinSegments(segments, TranscriptLimit), nil
}

// SearchImages requests count images, clamped to the allowed range.
func (d *Dispatcher) SearchImages(ctx context.Context, query string, count int) ([]search.ImageResult, error) {
	count = ClampImageCount(count)
	resp, err := d.manager.SearchImages(ctx, query, count)
	if err != nil {
		return nil, &RetrievalError{Mode: ModeImage, Err: err}
	}
	return resp.Results, nil
}

func ClampImageCount(count int) int {
	if count < MinImages {
		return MinImages
	}
	if count > MaxImages {
		return MaxImages
	}
	return count
}
