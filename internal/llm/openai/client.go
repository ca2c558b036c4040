package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"legal-backend/internal/llm"
	"legal-backend/internal/shared/telemetry"
)

const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultGroqModel   = "llama3-70b-8192"
	GroqBaseURL        = "https://api.groq.com/openai/v1"

	defaultTimeout = 120 * time.Second
)

// Options configures a chat completions client.
type Options struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.Generator on any OpenAI compatible endpoint.
type Client struct {
	name   string
	model  string
	hasKey bool
	api    *openai.Client
}

// NewClient builds a client. A missing key is reported on Generate so the
// caller can still assemble a chain from partial configuration.
func NewClient(opts Options) (*Client, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, fmt.Errorf("model is required for provider %q", opts.Name)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		name:   opts.Name,
		model:  model,
		hasKey: strings.TrimSpace(opts.APIKey) != "",
		api:    openai.NewClientWithConfig(cfg),
	}, nil
}

func (c *Client) Name() string {
	return c.name
}

// Generate sends one chat completion and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.hasKey {
		return "", fmt.Errorf("%s: %w", c.name, llm.ErrMissingCredential)
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%s request timeout: %w", c.name, err)
		}
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	telemetry.Info("llm.response", map[string]any{
		"provider":          c.name,
		"model":             c.model,
		"duration_ms":       time.Since(start).Milliseconds(),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.name, llm.ErrEmptyResponse)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%s: %w", c.name, llm.ErrEmptyResponse)
	}
	return content, nil
}

var _ llm.Generator = (*Client)(nil)
