// Package mcp wires the research tools into an MCP server served over
// stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aitiwari/aisearch/internal/tools"
)

const (
	ServerName    = "aisearch"
	ServerVersion = "0.2.0"
)

func NewServer() *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("web_research",
		mcp.WithDescription("Search the web, read the top results and return a summary with sources."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Research query")),
	), tools.WebResearch)

	s.AddTool(mcp.NewTool("news_research",
		mcp.WithDescription("Search selected news categories for a topic and summarize the coverage."),
		mcp.WithString("query", mcp.Required(), mcp.Description("News topic")),
		mcp.WithArray("categories", mcp.Required(),
			mcp.Description("News categories, e.g. \"Technology\", \"Science\""),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("sites",
			mcp.Description("Optional specific sites from the selected categories"),
			mcp.Items(map[string]any{"type": "string"})),
	), tools.NewsResearch)

	s.AddTool(mcp.NewTool("video_summary",
		mcp.WithDescription("Fetch the transcript of a YouTube video and summarize it."),
		mcp.WithString("url", mcp.Required(), mcp.Description("YouTube video URL")),
	), tools.VideoSummary)

	s.AddTool(mcp.NewTool("image_search",
		mcp.WithDescription("Search for images and return only links that are verified reachable."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Image description")),
		mcp.WithNumber("count", mcp.Description("Number of images to search (1-20)")),
	), tools.ImageSearch)

	return s
}

func ServeStdio() error {
	return server.ServeStdio(NewServer())
}
