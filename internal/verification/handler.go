package verification

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/extract"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/shared/telemetry"
	"legal-backend/internal/shared/util"
)

const (
	msgMissingKey = "OpenAI API key is missing. Please set OPENAI_API_KEY in your environment."
	msgQuota      = "Your OpenAI quota has been exceeded. Add billing to your OpenAI account or set GROQ_API_KEY to use the Groq fallback."
	msgUpstream   = "Failed to process legal verification. Please try again later."

	defaultMaxUploadBytes = 10 << 20
)

// Handler wires HTTP handlers to the verification service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches verification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify-legal", h.verify)
	rg.POST("/verify-legal/upload", h.upload)
}

type verifyRequest struct {
	Content      string `json:"content"`
	Query        string `json:"query"`
	Document     string `json:"document"`
	Jurisdiction string `json:"jurisdiction"`
	LawType      string `json:"lawType"`
	Kind         string `json:"kind"`
	Type         string `json:"type"`
}

func (h *Handler) verify(c *gin.Context) {
	// Configuration problems are reported before the body is looked at.
	if err := h.Svc.CheckCredential(); err != nil {
		h.fail(c, err)
		return
	}

	var body verifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", nil)
		return
	}
	req, err := NormalizeRequest(RawRequest{
		Content:      body.Content,
		Query:        body.Query,
		Document:     body.Document,
		Jurisdiction: body.Jurisdiction,
		LawType:      body.LawType,
		Kind:         body.Kind,
		Type:         body.Type,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.run(c, req)
}

func (h *Handler) upload(c *gin.Context) {
	if err := h.Svc.CheckCredential(); err != nil {
		h.fail(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodeValidation, "File exceeds upload limit", gin.H{"maxBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid file name", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}

	text, err := extract.Text(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		telemetry.Warn("verification.extract_failed", map[string]any{
			"file_name":  fileName,
			"size_bytes": fileHeader.Size,
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		issue := "unreadable"
		switch {
		case errors.Is(err, extract.ErrUnsupported):
			issue = "unsupported_type"
		case errors.Is(err, extract.ErrNoText):
			issue = "no_text"
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Could not extract text from document", []map[string]string{
			{"field": "file", "issue": issue},
		})
		return
	}

	h.run(c, Request{
		Content:      text,
		Jurisdiction: c.PostForm("jurisdiction"),
		LawType:      c.PostForm("lawType"),
		Kind:         KindDocument,
	})
}

func (h *Handler) run(c *gin.Context, req Request) {
	result, err := h.Svc.Verify(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("analysisId", result.AnalysisID)
	respond.OK(c, result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, validationMessage(err), nil)
	case errors.Is(err, llm.ErrMissingCredential):
		respond.Error(c, http.StatusInternalServerError, respond.CodeConfiguration, msgMissingKey, nil)
	case llm.IsQuotaError(err):
		respond.Error(c, http.StatusTooManyRequests, respond.CodeQuotaExceeded, msgQuota, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeUpstream, msgUpstream, nil)
	}
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
}
