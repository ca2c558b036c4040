package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"legal-backend/internal/bootstrap"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/config"
)

// gatewayFor builds the provider chain used by ask. Tests swap it out.
var gatewayFor = func(cfg config.Config) (llm.Generator, error) {
	return bootstrap.BuildGateway(cfg)
}

// loadConfig is swapped in tests to avoid reading .env files.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "verifyctl",
		Short: "Run legal verifications from the terminal",
		Long: `verifyctl exercises the verification pipeline without the HTTP server.

Examples:
  verifyctl score --file answer.txt --jurisdiction "Delhi High Court"
  verifyctl ask --content "Can my employer withhold salary?"
  verifyctl ask --file lease.pdf`,
		SilenceUsage: true,
	}
	root.AddCommand(newScoreCmd(), newAskCmd())
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
