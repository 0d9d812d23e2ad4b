package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aitiwari/aisearch/internal/config"
)

func TestNewSummarizerRequiresAPIKey(t *testing.T) {
	if _, err := NewSummarizer(config.LLMConfig{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestNewSummarizerRejectsUnknownModel(t *testing.T) {
	_, err := NewSummarizer(config.LLMConfig{APIKey: "k", Model: "gpt-9"})
	if err == nil {
		t.Fatalf("expected error for unknown model")
	}
}

func TestNewSummarizerDefaultsModel(t *testing.T) {
	s, err := NewSummarizer(config.LLMConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("new summarizer: %v", err)
	}
	if s.Model() != ModelLlama33 {
		t.Fatalf("unexpected default model: %q", s.Model())
	}
}

func TestSummarizeSendsOneRequestWithQueryAndContent(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != ModelQwenQwQ {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || !strings.Contains(req.Messages[0].Content, "research assistant") {
			t.Errorf("unexpected system message: %+v", req.Messages[0])
		}
		user := req.Messages[1].Content
		if !strings.Contains(user, "Query: chips") || !strings.Contains(user, "Content: the context") {
			t.Errorf("unexpected user message: %q", user)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a summary"}}]}`)
	}))
	defer srv.Close()

	s, err := NewSummarizer(config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: ModelQwenQwQ})
	if err != nil {
		t.Fatalf("new summarizer: %v", err)
	}

	summary, err := s.Summarize(context.Background(), "chips", "the context")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != "a summary" {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if requests != 1 {
		t.Fatalf("expected exactly 1 request, got %d", requests)
	}
}

func TestSummarizeRejectsEmptyContent(t *testing.T) {
	s, err := NewSummarizer(config.LLMConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("new summarizer: %v", err)
	}
	if _, err := s.Summarize(context.Background(), "q", ""); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestSummarizeSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s, err := NewSummarizer(config.LLMConfig{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new summarizer: %v", err)
	}
	if _, err := s.Summarize(context.Background(), "q", "content"); err == nil {
		t.Fatalf("expected provider error to surface")
	}
}
