package feedback

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
	rg.GET("/feedback", h.stats)
}

type submitRequest struct {
	AnalysisID  string `json:"analysisId" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Accuracy    string `json:"accuracy" binding:"required,oneof=accurate somewhat_accurate inaccurate"`
	Helpfulness string `json:"helpfulness" binding:"required,oneof=very_helpful helpful not_helpful"`
	Comments    string `json:"comments"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid feedback data", validationDetails(err))
		return
	}
	c.Set("analysisId", req.AnalysisID)

	_, err := h.Svc.Submit(c.Request.Context(), SubmitInput{
		AnalysisID:  req.AnalysisID,
		Rating:      req.Rating,
		Accuracy:    req.Accuracy,
		Helpfulness: req.Helpfulness,
		Comments:    req.Comments,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid feedback data", nil)
			return
		}
		telemetry.Error("feedback.submit_failed", map[string]any{
			"analysis_id": req.AnalysisID,
			"error":       err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to submit feedback", nil)
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"message": "Feedback submitted successfully",
	})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		telemetry.Error("feedback.stats_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to get feedback stats", nil)
		return
	}
	respond.OK(c, stats)
}

func validationDetails(err error) []map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []map[string]string{{"field": "body", "issue": "invalid_json"}}
	}
	out := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, map[string]string{
			"field": jsonField(fe.Field()),
			"issue": fe.Tag(),
		})
	}
	return out
}

func jsonField(name string) string {
	if name == "AnalysisID" {
		return "analysisId"
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
