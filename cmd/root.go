package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aitiwari/aisearch/internal/aggregate"
	"github.com/aitiwari/aisearch/internal/config"
	"github.com/aitiwari/aisearch/internal/llm"
	"github.com/aitiwari/aisearch/internal/logger"
	"github.com/aitiwari/aisearch/internal/research"
	"github.com/aitiwari/aisearch/internal/search"
	"github.com/aitiwari/aisearch/internal/security"
	"github.com/aitiwari/aisearch/internal/session"
	"github.com/aitiwari/aisearch/internal/tools"
	"github.com/aitiwari/aisearch/internal/video"
)

var (
	logLevel      string
	groqAPIKey    string
	modelName     string
	modeName      string
	categoryList  []string
	siteList      []string
	imageCount    int
	primaryEngine string
	tavilyAPIKey  string
)

var rootCmd = &cobra.Command{
	Use:   "aisearch",
	Short: "AI research assistant",
	Long: `aisearch answers research queries from the terminal.

Modes:
  web     Search the web, read the top results, summarize with Groq
  news    Search selected news categories (see 'aisearch categories')
  video   Summarize a YouTube video from its transcript
  image   Search images and verify the links are reachable

Switch mode inside the chat with /mode web|news|video|image.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runChat,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&groqAPIKey, "groq-api-key", "",
		"Groq API key (or GROQ_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&tavilyAPIKey, "tavily-api-key", "",
		"Tavily search API key (or TAVILY_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&primaryEngine, "search-engine", "",
		"Primary search engine: duckduckgo, tavily")
	rootCmd.Flags().StringVar(&modelName, "model", "",
		fmt.Sprintf("Groq model, one of %v", llm.SupportedModels))
	rootCmd.Flags().StringVar(&modeName, "mode", "web",
		"Search mode: web, news, video, image")
	rootCmd.Flags().StringSliceVar(&categoryList, "categories", nil,
		"News categories for news mode")
	rootCmd.Flags().StringSliceVar(&siteList, "sites", nil,
		"Specific news sites from the selected categories")
	rootCmd.Flags().IntVar(&imageCount, "images", 0,
		"Number of images to search in image mode (1-20)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	return cfg, nil
}

// applyOverrides applies flag > env > file precedence on top of the loaded
// config file.
func applyOverrides(cfg *config.Config) {
	if groqAPIKey != "" {
		cfg.LLM.APIKey = groqAPIKey
	} else if envKey := os.Getenv("GROQ_API_KEY"); envKey != "" {
		cfg.LLM.APIKey = envKey
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}

	tavilyKey := tavilyAPIKey
	if tavilyKey == "" {
		tavilyKey = os.Getenv("TAVILY_API_KEY")
	}
	if tavilyKey != "" {
		for i := range cfg.Search.Engines {
			if cfg.Search.Engines[i].Type == "tavily" {
				cfg.Search.Engines[i].APIKey = tavilyKey
			}
		}
	}
	if primaryEngine != "" {
		cfg.Search.PrimaryEngine = primaryEngine
	}
	if imageCount > 0 {
		cfg.Research.ImageCount = imageCount
	}
}

func buildAssistant(cfg *config.Config) (*research.Assistant, error) {
	manager, err := search.NewManager(cfg.Search, search.NewRegistry())
	if err != nil {
		return nil, err
	}

	var validateURL func(string) error
	if cfg.Research.SSRFProtection {
		validateURL = security.ValidateOutboundURL
	}

	var summarizer research.Summarizer
	if cfg.LLM.APIKey != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return nil, err
		}
		summarizer = s
	} else {
		logger.Warnf("no Groq API key configured; only image mode will work")
	}

	return research.NewAssistant(
		research.NewDispatcher(manager, video.NewClient()),
		aggregate.New(validateURL),
		summarizer,
		session.NewTranscript(),
	), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode, err := research.ParseMode(modeName)
	if err != nil {
		return err
	}

	assistant, err := buildAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Session().Clear()

	opts := research.Options{
		Categories: categoryList,
		Sites:      siteList,
		ImageCount: cfg.Research.ImageCount,
	}

	fmt.Printf("aisearch (%s mode). Type /mode <name> to switch, /quit to exit.\n", mode)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		fmt.Printf("\n[%s] %s\n> ", mode, mode.Placeholder())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}
		if rest, ok := strings.CutPrefix(line, "/mode "); ok {
			next, err := research.ParseMode(strings.TrimSpace(rest))
			if err != nil {
				fmt.Println(err)
				continue
			}
			mode = next
			continue
		}

		res, err := assistant.Ask(context.Background(), mode, line, opts)
		printTurn(res, err)
	}

	return scanner.Err()
}

// printTurn renders the outcome of one turn, including partial results when
// summarization failed.
func printTurn(res *research.TurnResult, err error) {
	if res != nil && (len(res.Results) > 0 || len(res.Images) > 0 || res.Summary != "" || res.Message != "") {
		fmt.Println()
		fmt.Print(tools.FormatTurn(res))
	}
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, research.ErrMissingAPIKey):
		fmt.Println("Error: no Groq API key configured. Pass --groq-api-key or set GROQ_API_KEY.")
	case errors.Is(err, research.ErrNoCategory):
		fmt.Println("Error: select at least one news category with --categories (see 'aisearch categories').")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
