// Package research routes a user query through one of four retrieval modes,
// aggregates fetched content, and hands it to the summarizer.
package research

import "fmt"

// Mode selects the retrieval strategy for a query.
type Mode string

const (
	ModeWeb   Mode = "web"
	ModeVideo Mode = "video"
	ModeNews  Mode = "news"
	ModeImage Mode = "image"
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "web":
		return ModeWeb, nil
	case "video", "youtube":
		return ModeVideo, nil
	case "news":
		return ModeNews, nil
	case "image", "images":
		return ModeImage, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected web, video, news or image)", s)
	}
}

// Placeholder returns the input hint shown for a mode.
func (m Mode) Placeholder() string {
	switch m {
	case ModeVideo:
		return "Enter YouTube URL..."
	case ModeNews:
		return "Enter news topic..."
	case ModeImage:
		return "Describe images to search..."
	default:
		return "Enter your research query..."
	}
}
