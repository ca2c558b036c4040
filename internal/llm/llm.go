package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces free-form text from a system and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var (
	// ErrMissingCredential means the provider has no API key configured.
	ErrMissingCredential = errors.New("llm credential missing")
	// ErrQuotaExceeded marks a provider quota or rate limit failure.
	ErrQuotaExceeded = errors.New("llm quota exceeded")
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("llm returned empty response")
	ErrNoProviders   = errors.New("llm chain has no providers")
)

// IsQuotaError reports whether err is a quota or rate limit failure.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "quota") || strings.Contains(msg, "Rate limit")
}
