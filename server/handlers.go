package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnlens/errs"
	"learnlens/extract"
	"learnlens/pipeline"
)

// Handler translates HTTP requests into pipeline service calls
type Handler struct {
	svc *pipeline.Service
	log *zap.Logger
}

// NewHandler creates a Handler over the pipeline service
func NewHandler(svc *pipeline.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Upload accepts a multipart document and returns {documentId, outline}
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	// Reject unsupported types before reading the body
	mimeType := fileHeader.Header.Get("Content-Type")
	if !extract.Supported(mimeType) {
		respondServiceError(c, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, mimeType))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	result, err := h.svc.Upload(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DocumentStatus returns the outline with per-topic video status
func (h *Handler) DocumentStatus(c *gin.Context) {
	out, err := h.svc.DocumentStatus(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type generateVideoRequest struct {
	TopicID string `json:"topicId" binding:"required"`
}

// GenerateVideo starts a gated generation and returns {videoId}
func (h *Handler) GenerateVideo(c *gin.Context) {
	var req generateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	videoID, err := h.svc.RequestVideoGeneration(req.TopicID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoId": videoID})
}

// VideoStatus returns the current state of one video
func (h *Handler) VideoStatus(c *gin.Context) {
	v, err := h.svc.VideoStatus(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Subscription returns {isPremium, freeVideosUsed}
func (h *Handler) Subscription(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Subscription())
}

// Subscribe activates the premium plan
func (h *Handler) Subscribe(c *gin.Context) {
	plan := c.Query("plan")
	if plan == "" {
		respondError(c, http.StatusBadRequest, "bad_request", errors.New("plan is required"))
		return
	}
	h.svc.Subscribe()
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan})
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// respondServiceError maps sentinel errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrUnsupportedType),
		errors.Is(err, errs.ErrNoContent),
		errors.Is(err, errs.ErrExtraction):
		respondError(c, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, errs.ErrEntitlementDenied):
		respondError(c, http.StatusForbidden, "entitlement_denied", err)
	case errors.Is(err, errs.ErrGenerationInFlight):
		respondError(c, http.StatusConflict, "generation_in_flight", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
