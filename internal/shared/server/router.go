package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/feedback"
	"legal-backend/internal/services/health"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/verification"
)

const (
	rateGroupVerify = "VERIFY"
	rateGroupRead   = "READ"
	rateGroupWrite  = "DEFAULT"

	readRateMultiplier = 10
)

// RouterDeps bundles handlers required to build the router.
type RouterDeps struct {
	Config              config.Config
	VerificationHandler *verification.Handler
	FeedbackHandler     *feedback.Handler
	Health              *health.Service
	RateLimiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, "memory", nil)
	}
	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	api.GET("/health/ready", func(c *gin.Context) {
		report := healthSvc.Ready(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(rateLimitConfig(deps.Config, deps.RateLimiter)))
	if deps.VerificationHandler != nil {
		deps.VerificationHandler.RegisterRoutes(limited)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(limited)
	}

	return r
}

// rateLimitConfig gives LLM backed routes the configured bucket and lets
// reads through at a multiple of it. A non-positive rate disables limiting.
func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 {
		burst := max(cfg.RateLimitBurst, 1)
		rules[rateGroupVerify] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: burst}
		rules[rateGroupWrite] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: burst}
		rules[rateGroupRead] = middleware.RateLimitRule{
			Rate:  cfg.RateLimitRPS * readRateMultiplier,
			Burst: burst * readRateMultiplier,
		}
	}
	return middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: rateGroupWrite,
		Limiter:      limiter,
		GroupFor: func(c *gin.Context) string {
			switch {
			case strings.HasPrefix(c.FullPath(), "/api/v1/verify-legal"):
				return rateGroupVerify
			case c.Request.Method == http.MethodGet:
				return rateGroupRead
			default:
				return rateGroupWrite
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
