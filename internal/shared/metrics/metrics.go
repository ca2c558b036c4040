package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	verificationStartedTotal = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "verification_started_total",
		Help: "Total verification requests that reached the language model",
	})
	verificationCompletedTotal = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "verification_completed_total",
		Help: "Total verifications that produced a result",
	})
	verificationFailedTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "verification_failed_total",
		Help: "Total verifications that failed, by error code",
	}, []string{"code"})
	llmFallbackTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "llm_fallback_total",
		Help: "Quota fallbacks from one provider to the next",
	}, []string{"from", "to"})
	feedbackSubmittedTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submitted_total",
		Help: "Feedback records accepted, by accuracy",
	}, []string{"accuracy"})

	verificationDuration = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "verification_duration_ms",
		Help:    "Verification duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
	verificationConfidence = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "verification_confidence",
		Help:    "Final confidence scores",
		Buckets: []float64{35, 45, 55, 65, 75, 85, 95},
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func IncVerificationStarted() {
	verificationStartedTotal.Inc()
}

func IncVerificationCompleted() {
	verificationCompletedTotal.Inc()
}

// IncVerificationFailed counts a failure under its error envelope code.
func IncVerificationFailed(code string) {
	verificationFailedTotal.WithLabelValues(code).Inc()
}

func IncLLMFallback(from, to string) {
	llmFallbackTotal.WithLabelValues(from, to).Inc()
}

func IncFeedbackSubmitted(accuracy string) {
	feedbackSubmittedTotal.WithLabelValues(accuracy).Inc()
}

// ObserveVerificationDurationMs records a verification duration in milliseconds.
func ObserveVerificationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	verificationDuration.Observe(value)
}

func ObserveConfidence(score int) {
	verificationConfidence.Observe(float64(score))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
