// Package llm issues summarization requests to Groq's OpenAI-compatible
// chat completion endpoint.
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/aitiwari/aisearch/internal/config"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

const (
	ModelLlama33    = "llama-3.3-70b-versatile"
	ModelQwenQwQ    = "qwen-qwq-32b"
	ModelDeepseekR1 = "deepseek-r1-distill-qwen-32b"
)

const systemPrompt = "You are a research assistant. Analyze and summarize this content:"

// SupportedModels lists the selectable completion models, default first.
var SupportedModels = []string{
	ModelLlama33,
	ModelQwenQwQ,
	ModelDeepseekR1,
}

func IsSupportedModel(model string) bool {
	for _, m := range SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// Summarizer makes exactly one completion request per Summarize call.
// No retries, no streaming.
type Summarizer struct {
	client *openai.Client
	model  string
}

func NewSummarizer(cfg config.LLMConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = ModelLlama33
	}
	if !IsSupportedModel(model) {
		return nil, fmt.Errorf("unsupported model %q (supported: %v)", model, SupportedModels)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

func (s *Summarizer) Model() string {
	return s.model
}

// Summarize asks the model to summarize content in the context of query.
// content must be non-empty; callers skip summarization when aggregation
// produced nothing.
func (s *Summarizer) Summarize(ctx context.Context, query, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("nothing to summarize")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Query: %s\nContent: %s", query, content),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
