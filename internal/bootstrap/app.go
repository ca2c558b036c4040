package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/feedback"
	"legal-backend/internal/llm"
	openai "legal-backend/internal/llm/openai"
	"legal-backend/internal/services/health"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/shared/server"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/storage/db"
	"legal-backend/internal/shared/storage/object"
	localstore "legal-backend/internal/shared/storage/object/local"
	miniostore "legal-backend/internal/shared/storage/object/minio"
	s3store "legal-backend/internal/shared/storage/object/s3"
	"legal-backend/internal/shared/telemetry"
	"legal-backend/internal/verification"
)

const archiveDefaultRegion = "us-east-1"

// App holds shared dependencies.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Archive             object.ObjectStore
	Ledger              feedback.Ledger
	Gateway             *llm.Chain
	FeedbackService     *feedback.Service
	VerificationService *verification.Service
	FeedbackHandler     *feedback.Handler
	VerificationHandler *verification.Handler
	Health              *health.Service
}

// Build prepares all dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	gateway, err := BuildGateway(cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Archive: archive,
		Gateway: gateway,
	}
	app.Ledger = buildLedger(sqlDB, archive)
	app.FeedbackService = feedback.NewService(app.Ledger)
	app.VerificationService = verification.NewService(gateway, feedback.NewAdjuster(app.Ledger), cfg.HasPrimaryCredential)
	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService)
	app.VerificationHandler = verification.NewHandler(app.VerificationService, cfg.MaxUploadBytes)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Health = health.NewService(pinger, ledgerKind(sqlDB), gateway.Names())

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		VerificationHandler: app.VerificationHandler,
		FeedbackHandler:     app.FeedbackHandler,
		Health:              app.Health,
		RateLimiter:         middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"providers":       gateway.Names(),
		"ledger":          ledgerKind(sqlDB),
		"feedbackArchive": cfg.FeedbackArchive,
	})
	return app, nil
}

// Close releases the database pool if one was opened.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildGateway assembles the provider chain: OpenAI first, Groq only when a
// key is configured.
func BuildGateway(cfg config.Config) (*llm.Chain, error) {
	primary, err := openai.NewClient(openai.Options{
		Name:    "openai",
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("openai provider: %w", err)
	}
	providers := []llm.Provider{{Name: "openai", Generator: primary}}

	if strings.TrimSpace(cfg.GroqAPIKey) != "" {
		baseURL := cfg.GroqBaseURL
		if strings.TrimSpace(baseURL) == "" {
			baseURL = openai.GroqBaseURL
		}
		fallback, err := openai.NewClient(openai.Options{
			Name:    "groq",
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			BaseURL: baseURL,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("groq provider: %w", err)
		}
		providers = append(providers, llm.Provider{Name: "groq", Generator: fallback})
	}
	return llm.NewChain(providers...), nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.memory_ledger", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.ConnectAndMigrate(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_ledger", map[string]any{
				"reason": "database unavailable",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	region := strings.TrimSpace(cfg.AWSRegion)
	if region == "" {
		region = archiveDefaultRegion
	}
	switch cfg.FeedbackArchive {
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("FEEDBACK_ARCHIVE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, region, cfg.S3Bucket, cfg.S3Prefix)
	case "minio":
		return miniostore.New(ctx, cfg.MinioEndpoint, region, cfg.MinioBucket, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	default:
		return nil, nil
	}
}

func buildLedger(sqlDB *sql.DB, archive object.ObjectStore) feedback.Ledger {
	var ledger feedback.Ledger
	if sqlDB != nil {
		ledger = &feedback.PGLedger{DB: sqlDB}
	} else {
		ledger = feedback.NewMemoryLedger()
	}
	if archive != nil {
		ledger = feedback.NewArchivingLedger(ledger, archive)
	}
	return ledger
}

func ledgerKind(sqlDB *sql.DB) string {
	if sqlDB != nil {
		return "postgres"
	}
	return "memory"
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
