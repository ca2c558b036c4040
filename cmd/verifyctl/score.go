package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"legal-backend/internal/feedback"
	"legal-backend/internal/shared/storage/db"
	"legal-backend/internal/verification"
)

type scoreOptions struct {
	file         string
	content      string
	jurisdiction string
	lawType      string
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score saved model output offline",
		Long: `Run the heuristic analyzer over a saved model answer.

When --content is set and DATABASE_URL points at the feedback database, the
feedback recorded for that content adjusts the score like the server does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "path to the raw model output (required)")
	cmd.Flags().StringVar(&opts.content, "content", "", "original query or document, used to look up feedback")
	cmd.Flags().StringVar(&opts.jurisdiction, "jurisdiction", "", "jurisdiction the answer was produced for")
	cmd.Flags().StringVar(&opts.lawType, "law-type", "", "area of law the answer was produced for")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions) error {
	raw, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read model output: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("model output in %s is empty", opts.file)
	}

	adj, err := scoreAdjustment(cmd, opts.content)
	if err != nil {
		return err
	}

	result := verification.NewAnalyzer().Analyze(verification.AnalyzeInput{
		RawText:      string(raw),
		AnalysisID:   verification.NewAnalysisID(time.Now()),
		Jurisdiction: strings.TrimSpace(opts.jurisdiction),
		LawType:      strings.TrimSpace(opts.lawType),
		Adjustment:   adj,
	})
	return writeJSON(cmd.OutOrStdout(), result)
}

func scoreAdjustment(cmd *cobra.Command, content string) (feedback.Adjustment, error) {
	cfg := loadConfig()
	if strings.TrimSpace(content) == "" || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return feedback.Adjustment{}, nil
	}
	ctx := commandContext(cmd)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return feedback.Adjustment{}, err
	}
	defer sqlDB.Close()
	return feedback.NewAdjuster(&feedback.PGLedger{DB: sqlDB}).Adjust(ctx, content)
}
