package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/platepulse/backend/internal/domain"
	"github.com/platepulse/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	diagnostics *usecase.DiagnosticService
	analysis    *usecase.AnalysisService
}

// NewHandler creates a new HTTP handler
func NewHandler(diagnostics *usecase.DiagnosticService, analysis *usecase.AnalysisService) *Handler {
	return &Handler{
		diagnostics: diagnostics,
		analysis:    analysis,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "platepulse-backend",
		"version": "1.0.0",
	})
}

// Diagnose runs the rule-based health diagnostic for a business
func (h *Handler) Diagnose(c *gin.Context) {
	var request domain.DiagnoseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	report, err := h.diagnostics.Diagnose(c.Request.Context(), &request)
	if err != nil {
		status, message := mapError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, report)
}

// DiagnoseWithAnalysis runs the diagnostic and attaches the model's
// narrative analysis to the report
func (h *Handler) DiagnoseWithAnalysis(c *gin.Context) {
	var request domain.DiagnoseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.analysis.DiagnoseAndAnalyze(c.Request.Context(), &request)
	if err != nil {
		status, message := mapError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// mapError translates domain errors into HTTP status codes
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPlaceNotFound):
		return http.StatusNotFound, "business not found"
	case errors.Is(err, domain.ErrPlacesAPIFailure):
		return http.StatusBadGateway, "places lookup failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
