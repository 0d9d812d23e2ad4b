package research

import (
	"context"
	"fmt"

	"github.com/aitiwari/aisearch/internal/aggregate"
	"github.com/aitiwari/aisearch/internal/logger"
	"github.com/aitiwari/aisearch/internal/search"
	"github.com/aitiwari/aisearch/internal/session"
	"github.com/aitiwari/aisearch/internal/video"
)

const (
	invalidVideoURLMessage = "Please provide a valid YouTube URL"
	videoSummaryQuery      = "Summarize this video:"
	newsSourceSuffix       = " Provide with source"
)

// Summarizer is the completion provider used for turn summaries.
type Summarizer interface {
	Summarize(ctx context.Context, query, content string) (string, error)
}

// TurnResult is everything one turn produced for display.
type TurnResult struct {
	Mode    Mode
	Results []search.SearchResult
	Images  []search.ImageResult
	// Context is the aggregated page text or transcript fed to the
	// summarizer.
	Context string
	// Fetched and Skipped count per-source outcomes during aggregation.
	Fetched int
	Skipped int
	Summary string
	// Message is the assistant-facing message for turns that produce no
	// summary (guidance, image counts).
	Message string
	// Warning carries a non-fatal provider error surfaced alongside the
	// result (image mode only).
	Warning string
}

// Assistant runs the full pipeline for one turn: dispatch, aggregate,
// summarize, transcript append. All stages run sequentially; each network
// call completes before the next begins.
type Assistant struct {
	dispatcher *Dispatcher
	aggregator *aggregate.Aggregator
	summarizer Summarizer
	transcript *session.Transcript
}

// NewAssistant wires the pipeline. summarizer may be nil when no API key is
// configured; modes that need it fail with ErrMissingAPIKey before any
// provider call.
func NewAssistant(d *Dispatcher, a *aggregate.Aggregator, s Summarizer, t *session.Transcript) *Assistant {
	return &Assistant{
		dispatcher: d,
		aggregator: a,
		summarizer: s,
		transcript: t,
	}
}

func (a *Assistant) Session() *session.Transcript {
	return a.transcript
}

// Ask processes one user query in the given mode. The user turn is always
// recorded; an assistant turn is appended only when the turn produced a
// summary or a displayable message. Hard failures abort the turn and leave
// prior turns intact.
func (a *Assistant) Ask(ctx context.Context, mode Mode, query string, opts Options) (*TurnResult, error) {
	a.transcript.Append(session.RoleUser, query)

	switch mode {
	case ModeWeb:
		return a.askWeb(ctx, query)
	case ModeNews:
		return a.askNews(ctx, query, opts)
	case ModeVideo:
		return a.askVideo(ctx, query)
	case ModeImage:
		return a.askImages(ctx, query, opts)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func (a *Assistant) askWeb(ctx context.Context, query string) (*TurnResult, error) {
	if a.summarizer == nil {
		return nil, ErrMissingAPIKey
	}

	results, err := a.dispatcher.SearchWeb(ctx, query)
	if err != nil {
		return nil, err
	}

	res := &TurnResult{Mode: ModeWeb, Results: results}
	if len(results) == 0 {
		res.Message = "No results found."
		a.transcript.Append(session.RoleAssistant, res.Message)
		return res, nil
	}

	return a.summarizeResults(ctx, res, query)
}

func (a *Assistant) askNews(ctx context.Context, query string, opts Options) (*TurnResult, error) {
	if a.summarizer == nil {
		return nil, ErrMissingAPIKey
	}

	results, augmented, err := a.dispatcher.SearchNews(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	res := &TurnResult{Mode: ModeNews, Results: results}
	if len(results) == 0 {
		res.Message = "No results found."
		a.transcript.Append(session.RoleAssistant, res.Message)
		return res, nil
	}

	return a.summarizeResults(ctx, res, augmented+newsSourceSuffix)
}

// summarizeResults aggregates the result pages and, when anything was
// fetched, produces a summary. Zero successful fetches skip summarization
// with no assistant turn.
func (a *Assistant) summarizeResults(ctx context.Context, res *TurnResult, summaryQuery string) (*TurnResult, error) {
	content, outcomes := a.aggregator.Aggregate(ctx, res.Results)
	res.Context = content
	res.Fetched = aggregate.Fetched(outcomes)
	res.Skipped = len(outcomes) - res.Fetched
	logger.Debugf("aggregated %d/%d sources, %d chars", res.Fetched, len(outcomes), len(content))

	if content == "" {
		return res, nil
	}

	summary, err := a.summarizer.Summarize(ctx, summaryQuery, content)
	if err != nil {
		return res, &SummarizationError{Err: err}
	}

	res.Summary = summary
	a.transcript.Append(session.RoleAssistant, summary)
	return res, nil
}

func (a *Assistant) askVideo(ctx context.Context, query string) (*TurnResult, error) {
	if a.summarizer == nil {
		return nil, ErrMissingAPIKey
	}

	cls := video.Classify(query)
	if !cls.IsVideoURL {
		res := &TurnResult{Mode: ModeVideo, Message: invalidVideoURLMessage}
		a.transcript.Append(session.RoleAssistant, res.Message)
		return res, nil
	}

	transcript, err := a.dispatcher.FetchTranscript(ctx, cls.VideoID)
	if err != nil {
		return nil, &RetrievalError{Mode: ModeVideo, Err: err}
	}

	res := &TurnResult{Mode: ModeVideo, Context: transcript}
	summary, err := a.summarizer.Summarize(ctx, videoSummaryQuery, transcript)
	if err != nil {
		return res, &SummarizationError{Err: err}
	}

	res.Summary = summary
	a.transcript.Append(session.RoleAssistant, summary)
	return res, nil
}

func (a *Assistant) askImages(ctx context.Context, query string, opts Options) (*TurnResult, error) {
	count := ClampImageCount(opts.ImageCount)
	res := &TurnResult{Mode: ModeImage}

	images, err := a.dispatcher.SearchImages(ctx, query, count)
	if err != nil {
		// provider failure yields an empty list plus a surfaced warning,
		// not an aborted turn
		res.Warning = err.Error()
		images = nil
	}

	valid := a.aggregator.ProbeImages(ctx, images)
	res.Images = valid
	res.Fetched = len(valid)
	res.Skipped = len(images) - len(valid)

	if len(valid) > 0 {
		res.Message = fmt.Sprintf("Found %d/%d images for: %s", len(valid), count, query)
	} else {
		res.Message = fmt.Sprintf("No images found for: %s", query)
	}
	a.transcript.Append(session.RoleAssistant, res.Message)
	return res, nil
}
