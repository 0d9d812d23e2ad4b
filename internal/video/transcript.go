package video

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultWatchBaseURL = "https://www.youtube.com"

// ErrNoTranscript is returned when a video has no caption tracks (captions
// disabled, private video, or the watch page did not expose any).
var ErrNoTranscript = errors.New("no transcript available for this video")

// Segment is one timed piece of a video transcript.
type Segment struct {
	Text  string
	Start float64
}

// Client fetches video transcripts through the watch page's caption tracks.
type Client struct {
	http         *http.Client
	watchBaseURL string
}

func NewClient() *Client {
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		watchBaseURL: defaultWatchBaseURL,
	}
}

var captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Fetch returns the transcript segments for a video id in temporal order.
// The first caption track offered by the watch page is used.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	page, err := c.get(ctx, fmt.Sprintf("%s/watch?v=%s", c.watchBaseURL, videoID))
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	m := captionTracksPattern.FindSubmatch(page)
	if m == nil {
		return nil, ErrNoTranscript
	}

	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return nil, fmt.Errorf("parse caption tracks: %w", err)
	}
	if len(tracks) == 0 || tracks[0].BaseURL == "" {
		return nil, ErrNoTranscript
	}

	trackURL := tracks[0].BaseURL
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.watchBaseURL + trackURL
	}

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	return parseTimedText(body)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; aisearch/1.0)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
}

type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedText(body []byte) ([]Segment, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript xml: %w", err)
	}
	if len(doc.Texts) == 0 {
		return nil, ErrNoTranscript
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		// timedtext payloads carry entity-escaped text inside the XML
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Text: text, Start: t.Start})
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}
	return segments, nil
}

// JoinSegments concatenates segment texts in order, separated by single
// spaces, truncated to at most limit bytes without splitting a rune. A limit
// of 0 disables truncation.
func JoinSegments(segments []Segment, limit int) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	joined := strings.Join(parts, " ")
	if limit > 0 && len(joined) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(joined[cut]) {
			cut--
		}
		joined = joined[:cut]
	}
	return joined
}
