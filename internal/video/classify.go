// Package video recognizes YouTube URLs and fetches video transcripts.
package video

import "regexp"

var (
	watchPattern = regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=([^&]+)`)
	shortPattern = regexp.MustCompile(`^https?://youtu\.be/([^?]+)`)
)

// Classification is the result of classifying a raw query string.
type Classification struct {
	IsVideoURL bool
	VideoID    string
}

// Classify reports whether input is a recognized YouTube URL and, if so,
// the extracted video identifier. Two shapes are recognized: the canonical
// watch-page URL carrying a v parameter and the youtu.be short link with the
// identifier as the final path segment. Anything else is not a video URL.
func Classify(input string) Classification {
	if m := watchPattern.FindStringSubmatch(input); m != nil {
		return Classification{IsVideoURL: true, VideoID: m[2]}
	}
	if m := shortPattern.FindStringSubmatch(input); m != nil {
		return Classification{IsVideoURL: true, VideoID: m[1]}
	}
	return Classification{}
}
