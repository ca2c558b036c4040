package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"legal-backend/internal/extract"
	"legal-backend/internal/verification"
)

type askOptions struct {
	content      string
	file         string
	kind         string
	jurisdiction string
	lawType      string
}

func newAskCmd() *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Run a full verification against the configured providers",
		Long: `Send a query or document through the provider chain and print the scored
result. Provider keys and models come from the same environment as the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.content, "content", "", "query or document text")
	cmd.Flags().StringVar(&opts.file, "file", "", "read a PDF, DOCX or TXT document instead of --content")
	cmd.Flags().StringVar(&opts.kind, "kind", "query", "query or document")
	cmd.Flags().StringVar(&opts.jurisdiction, "jurisdiction", "", "jurisdiction to analyse under")
	cmd.Flags().StringVar(&opts.lawType, "law-type", "", "area of law to focus on")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	return cmd
}

func runAsk(cmd *cobra.Command, opts *askOptions) error {
	ctx := commandContext(cmd)
	raw := verification.RawRequest{
		Content:      opts.content,
		Jurisdiction: opts.jurisdiction,
		LawType:      opts.lawType,
		Kind:         opts.kind,
	}
	if strings.TrimSpace(opts.file) != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		text, err := extract.Text(ctx, data, "", filepath.Base(opts.file))
		if err != nil {
			return fmt.Errorf("extract document text: %w", err)
		}
		raw.Content = text
		raw.Kind = string(verification.KindDocument)
	}
	req, err := verification.NormalizeRequest(raw)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	gateway, err := gatewayFor(cfg)
	if err != nil {
		return err
	}
	svc := verification.NewService(gateway, nil, cfg.HasPrimaryCredential)
	result, err := svc.Verify(ctx, req)
	if err != nil {
		return fmt.Errorf("verification failed (%s): %w", verification.ErrorCode(err), err)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
