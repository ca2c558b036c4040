package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"legal-backend/internal/llm"
)

func newTestServer(t *testing.T, status int, body any, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestGenerateReturnsFirstChoice(t *testing.T) {
	var seen map[string]any
	srv := newTestServer(t, http.StatusOK, map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-4o",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": "  Section 302 IPC applies.  "}},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}, &seen)
	defer srv.Close()

	client, err := NewClient(Options{Name: "openai", APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL + "/v1/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	text, err := client.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Section 302 IPC applies." {
		t.Fatalf("unexpected text %q", text)
	}
	if seen["model"] != "gpt-4o" {
		t.Fatalf("unexpected model %v", seen["model"])
	}
	msgs, _ := seen["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}

func TestGenerateQuotaErrorIsClassified(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{
			"message": "You exceeded your current quota, please check your plan and billing details.",
			"type":    "insufficient_quota",
			"code":    "insufficient_quota",
		},
	}, nil)
	defer srv.Close()

	client, err := NewClient(Options{Name: "openai", APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Generate(context.Background(), "system", "user")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !llm.IsQuotaError(err) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestGenerateServerErrorIsNotQuota(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, map[string]any{
		"error": map[string]any{"message": "boom", "type": "server_error"},
	}, nil)
	defer srv.Close()

	client, _ := NewClient(Options{Name: "groq", APIKey: "test-key", Model: DefaultGroqModel, BaseURL: srv.URL + "/v1"})
	_, err := client.Generate(context.Background(), "system", "user")
	if err == nil {
		t.Fatalf("expected error")
	}
	if llm.IsQuotaError(err) {
		t.Fatalf("did not expect quota classification: %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]any{"id": "x", "choices": []any{}}, nil)
	defer srv.Close()

	client, _ := NewClient(Options{Name: "openai", APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
	_, err := client.Generate(context.Background(), "system", "user")
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	client, err := NewClient(Options{Name: "openai", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Generate(context.Background(), "system", "user")
	if !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewClientRequiresModel(t *testing.T) {
	if _, err := NewClient(Options{Name: "openai", APIKey: "k"}); err == nil {
		t.Fatalf("expected model error")
	}
}
