package llm

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
	"github.com/platepulse/backend/internal/domain"
)

// Config holds settings for the deep-analysis client
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	FallbackModel string
	MaxTokens     int
}

// Client produces deep-analysis reports through a chat-completions API.
// An unconfigured client (no API key) degrades to a static placeholder
// analysis instead of failing the request.
type Client struct {
	api           *openai.Client
	model         string
	fallbackModel string
	maxTokens     int
}

// NewClient creates a deep-analysis client. With an empty API key the
// client is inert and every Analyze call returns the placeholder.
func NewClient(cfg Config) *Client {
	client := &Client{
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		maxTokens:     cfg.MaxTokens,
	}
	if client.model == "" {
		client.model = openai.GPT4oMini
	}
	if client.maxTokens == 0 {
		client.maxTokens = 1500
	}

	if cfg.APIKey != "" {
		apiConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			apiConfig.BaseURL = cfg.BaseURL
		}
		client.api = openai.NewClientWithConfig(apiConfig)
	}

	return client
}

// Analyze sends the health report to the model and parses the structured
// analysis. The primary model is tried first, then the fallback model.
func (c *Client) Analyze(ctx context.Context, report *domain.HealthReport) (*domain.DeepAnalysis, error) {
	if c.api == nil {
		return placeholderAnalysis(), nil
	}

	prompt, err := BuildAnalysisPrompt(report)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := c.complete(ctx, c.model, prompt)
	if err != nil && c.fallbackModel != "" && c.fallbackModel != c.model {
		log.Printf("[LLM] model %s failed (%v), falling back to %s", c.model, err, c.fallbackModel)
		raw, err = c.complete(ctx, c.fallbackModel, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	return ParseAnalysis(raw), nil
}

// complete runs one chat completion and returns the raw text reply
func (c *Client) complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   c.maxTokens,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// placeholderAnalysis is returned when no API key is configured
func placeholderAnalysis() *domain.DeepAnalysis {
	return &domain.DeepAnalysis{
		OverallSummary: "Deep analysis is not configured; only the rule-based scores are shown.",
		KeyFindings:    []string{},
		Risks:          []string{},
		DataGaps:       []string{"analysis model not configured"},
	}
}
