package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/climate-advisor/internal/domain/analysis"
	apperrors "github.com/yanqian/climate-advisor/pkg/errors"
	"github.com/yanqian/climate-advisor/pkg/util"
)

// Handler wires the HTTP transport to the analysis service.
type Handler struct {
	analysisSvc analysis.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(analysisSvc analysis.Service, logger *slog.Logger) *Handler {
	return &Handler{
		analysisSvc: analysisSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Climate advisor backend active",
		"timestamp": util.NowUTC().Format(time.RFC3339),
	})
}

// Zones lists the predefined locations.
func (h *Handler) Zones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"zones": h.analysisSvc.Zones()})
}

// Geocode searches locations by name.
func (h *Handler) Geocode(c *gin.Context) {
	places, err := h.analysisSvc.SearchLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": places})
}

// Analyze runs the climate pipeline.
func (h *Handler) Analyze(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return
	}

	resp, err := h.analysisSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportCSV downloads the daily series as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return
	}

	file, err := h.analysisSvc.Export(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "text/csv", file.Content)
}
