package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	apperrors "github.com/yanqian/carbon-footprint/pkg/errors"
)

// Handler wires the HTTP transport to the estimator.
type Handler struct {
	svc    footprint.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc footprint.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// CreateEstimate scores a JSON survey. Omitted answers take the form defaults.
func (h *Handler) CreateEstimate(c *gin.Context) {
	survey := footprint.DefaultSurvey()
	if err := c.ShouldBindJSON(&survey); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.svc.Estimate(c.Request.Context(), survey)
	if err != nil {
		abortWithError(c, estimateError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SurveySchema returns the sectioned form definition.
func (h *Handler) SurveySchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":    h.svc.Form(),
		"columns": footprint.Columns(),
	})
}

// ModelStatus describes the loaded model artifact.
func (h *Handler) ModelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status().Model)
}

// Health reports liveness plus estimator counters. A missing model does not
// make the process unhealthy; it only makes predictions fail.
func (h *Handler) Health(c *gin.Context) {
	status := h.svc.Status()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  status.Model,
		"stats":  status.Stats,
	})
}

func estimateError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", apperrors.MessageOf(err), err)
	case apperrors.IsCode(err, apperrors.CodePredictionError):
		return NewHTTPError(http.StatusInternalServerError, "prediction_failed", footprint.PredictionFailedMessage, err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "estimate_failed", "something went wrong", err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
