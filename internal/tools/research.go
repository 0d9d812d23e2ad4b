// Package tools exposes the research pipeline as MCP tools.
package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aitiwari/aisearch/internal/aggregate"
	"github.com/aitiwari/aisearch/internal/config"
	"github.com/aitiwari/aisearch/internal/llm"
	"github.com/aitiwari/aisearch/internal/research"
	"github.com/aitiwari/aisearch/internal/search"
	"github.com/aitiwari/aisearch/internal/security"
	"github.com/aitiwari/aisearch/internal/session"
	"github.com/aitiwari/aisearch/internal/video"
)

var (
	assistantOnce sync.Once
	assistant     *research.Assistant
	assistantErr  error
	imageCount    int
)

func initAssistant() (*research.Assistant, error) {
	assistantOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			assistantErr = err
			return
		}

		if err := search.InitGlobalManager(cfg.Search); err != nil {
			assistantErr = err
			return
		}

		var validateURL func(string) error
		if cfg.Research.SSRFProtection {
			validateURL = security.ValidateOutboundURL
		}

		var summarizer research.Summarizer
		if cfg.LLM.APIKey != "" {
			s, err := llm.NewSummarizer(cfg.LLM)
			if err != nil {
				assistantErr = err
				return
			}
			summarizer = s
		}

		imageCount = cfg.Research.ImageCount
		assistant = research.NewAssistant(
			research.NewDispatcher(search.GetGlobalManager(), video.NewClient()),
			aggregate.New(validateURL),
			summarizer,
			session.NewTranscript(),
		)
	})
	return assistant, assistantErr
}

func WebResearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := req.Params.Arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	a, err := initAssistant()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research pipeline not configured: %v", err)), nil
	}

	res, err := a.Ask(ctx, research.ModeWeb, query, research.Options{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatTurn(res)), nil
}

func NewsResearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := req.Params.Arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	opts := research.Options{
		Categories: stringList(req.Params.Arguments["categories"]),
		Sites:      stringList(req.Params.Arguments["sites"]),
	}

	a, err := initAssistant()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research pipeline not configured: %v", err)), nil
	}

	res, err := a.Ask(ctx, research.ModeNews, query, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatTurn(res)), nil
}

func VideoSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, ok := req.Params.Arguments["url"].(string)
	if !ok || videoURL == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	a, err := initAssistant()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research pipeline not configured: %v", err)), nil
	}

	res, err := a.Ask(ctx, research.ModeVideo, videoURL, research.Options{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatTurn(res)), nil
}

func ImageSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := req.Params.Arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	a, err := initAssistant()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("research pipeline not configured: %v", err)), nil
	}

	count := imageCount
	if c, ok := req.Params.Arguments["count"].(float64); ok && c > 0 {
		count = int(c)
	}

	res, err := a.Ask(ctx, research.ModeImage, query, research.Options{ImageCount: count})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatTurn(res)), nil
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FormatTurn renders one turn result as readable text.
func FormatTurn(res *research.TurnResult) string {
	var sb strings.Builder

	for i, r := range res.Results {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, r.Title, r.URL))
		if r.Snippet != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Snippet))
		}
	}
	for i, img := range res.Images {
		sb.WriteString(fmt.Sprintf("%d. %s\n   image: %s\n   source: %s\n", i+1, img.Title, img.ImageURL, img.SourceURL))
	}
	if res.Fetched > 0 || res.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("\nSources: %d fetched, %d skipped\n", res.Fetched, res.Skipped))
	}
	if res.Warning != "" {
		sb.WriteString(fmt.Sprintf("\nWarning: %s\n", res.Warning))
	}
	if res.Summary != "" {
		sb.WriteString("\n" + res.Summary + "\n")
	} else if res.Message != "" {
		sb.WriteString("\n" + res.Message + "\n")
	}

	if sb.Len() == 0 {
		return "No results."
	}
	return sb.String()
}
