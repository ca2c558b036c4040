package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"legal-backend/internal/llm"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/verification"
)

type cannedGateway struct {
	text string
	user string
}

func (g *cannedGateway) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	g.user = userPrompt
	return g.text, nil
}

func stubEnv(t *testing.T, cfg config.Config, gw llm.Generator) {
	t.Helper()
	prevLoad, prevGateway := loadConfig, gatewayFor
	loadConfig = func() config.Config { return cfg }
	gatewayFor = func(config.Config) (llm.Generator, error) { return gw, nil }
	t.Cleanup(func() {
		loadConfig, gatewayFor = prevLoad, prevGateway
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScoreCommand(t *testing.T) {
	stubEnv(t, config.Config{}, nil)
	path := writeFile(t, "answer.txt", "Section 302 IPC clearly establishes murder as a criminal offense warranting imprisonment")

	out, err := execute(t, "score", "--file", path, "--law-type", "Criminal Law")
	if err != nil {
		t.Fatalf("score: %v\n%s", err, out)
	}
	var got verification.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Confidence != 95 || got.RiskLevel != verification.RiskHigh || got.IsValid {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.LawType != "Criminal Law" || got.Jurisdiction != verification.DefaultJurisdiction {
		t.Fatalf("unexpected jurisdiction/lawType %q %q", got.Jurisdiction, got.LawType)
	}
}

func TestScoreRequiresFile(t *testing.T) {
	stubEnv(t, config.Config{}, nil)
	if _, err := execute(t, "score"); err == nil {
		t.Fatalf("expected error without --file")
	}
	empty := writeFile(t, "empty.txt", "  \n")
	if _, err := execute(t, "score", "--file", empty); err == nil {
		t.Fatalf("expected error for empty output")
	}
}

func TestAskCommand(t *testing.T) {
	gw := &cannedGateway{text: "The position is unclear."}
	stubEnv(t, config.Config{OpenAIAPIKey: "sk-test"}, gw)

	out, err := execute(t, "ask", "--content", "Can my employer withhold salary?")
	if err != nil {
		t.Fatalf("ask: %v\n%s", err, out)
	}
	var got verification.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Confidence != 55 || got.RiskLevel != verification.RiskMedium {
		t.Fatalf("unexpected result %+v", got)
	}
	if !strings.Contains(gw.user, "legal query") {
		t.Fatalf("unexpected prompt %q", gw.user)
	}
}

func TestAskDocumentFile(t *testing.T) {
	gw := &cannedGateway{text: "The position is unclear."}
	stubEnv(t, config.Config{OpenAIAPIKey: "sk-test"}, gw)
	path := writeFile(t, "lease.txt", "The tenant shall vacate within 30 days.")

	if out, err := execute(t, "ask", "--file", path); err != nil {
		t.Fatalf("ask: %v\n%s", err, out)
	}
	if !strings.Contains(gw.user, "legal document") || !strings.Contains(gw.user, "vacate within 30 days") {
		t.Fatalf("unexpected prompt %q", gw.user)
	}
}

func TestAskErrors(t *testing.T) {
	gw := &cannedGateway{text: "unused"}
	stubEnv(t, config.Config{}, gw)

	if _, err := execute(t, "ask", "--content", "q"); err == nil || !strings.Contains(err.Error(), "configuration_error") {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := execute(t, "ask", "--content", "q", "--kind", "essay"); err == nil {
		t.Fatalf("expected validation error for unknown kind")
	}
}
