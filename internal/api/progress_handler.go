package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the occurrence/progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- Request/Response Structs ---

type RecordOccurrenceRequest struct {
	AnalyticsID string                  `json:"analytics_id" binding:"required"`
	Date        string                  `json:"date" binding:"required"`
	Status      domain.OccurrenceStatus `json:"status" binding:"required,oneof=completed uncompleted skipped"`
}

type OccurrenceResponse struct {
	ID             string                  `json:"id"`
	AnalyticsID    string                  `json:"analytics_id"`
	Date           string                  `json:"date"`
	Status         domain.OccurrenceStatus `json:"status"`
	CaloriesBurned *float64                `json:"calories_burned,omitempty"`
}

// --- Handler Methods ---

// RecordOccurrence creates or replaces the occurrence for one goal on
// one date. Re-submitting the same (goal, date) updates the status in
// place rather than adding a row.
func (h *ProgressHandler) RecordOccurrence(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RecordOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	analyticsID, err := primitive.ObjectIDFromHex(req.AnalyticsID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid analytics ID format")
		return
	}

	occ, err := h.progressService.RecordOccurrence(c.Request.Context(), userID, analyticsID, req.Date, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record occurrence")
		}
		return
	}

	c.JSON(http.StatusOK, OccurrenceResponse{
		ID:             occ.ID.Hex(),
		AnalyticsID:    occ.AnalyticsID.Hex(),
		Date:           occ.Date,
		Status:         occ.Status,
		CaloriesBurned: occ.CaloriesBurned,
	})
}

// ProgressSummary returns one report row per goal of the requested
// cadence (?type=Daily).
func (h *ProgressHandler) ProgressSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	cadence := domain.Cadence(c.DefaultQuery("type", string(domain.CadenceDaily)))

	reports, err := h.progressService.ProgressSummary(c.Request.Context(), userID, cadence)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build progress summary")
		}
		return
	}

	c.JSON(http.StatusOK, reports)
}

// BurnSummary returns total calories burned per day across all of the
// caller's completed occurrences.
func (h *ProgressHandler) BurnSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	rows, err := h.progressService.BurnSummary(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build burn summary")
		return
	}

	c.JSON(http.StatusOK, rows)
}
