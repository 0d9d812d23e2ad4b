package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aitiwari/aisearch/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server over stdio",
	Long: `Expose the research pipeline as MCP tools (web_research,
news_research, video_summary, image_search) for agent hosts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
