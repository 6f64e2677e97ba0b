package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsHandler holds the recurring-goal service dependency.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// --- Request/Response Structs ---

type CreateGoalRequest struct {
	ExerciseID      string         `json:"exerciseId" binding:"required"`
	ExerciseType    domain.Cadence `json:"exerciseType" binding:"required,oneof=Daily Weekly Monthly"`
	OccurrenceCount int            `json:"occurrenceCount" binding:"required,gt=0"`
}

type GoalResponse struct {
	ID              string            `json:"id"`
	ExerciseID      string            `json:"exerciseId"`
	ExerciseType    domain.Cadence    `json:"exerciseType"`
	OccurrenceCount int               `json:"occurrenceCount"`
	Status          domain.GoalStatus `json:"status"`
	ProgressPercent float64           `json:"progressPercent"`
	CreationDate    time.Time         `json:"creationDate"`
	EndDate         time.Time         `json:"endDate"`
}

// --- Handler Methods ---

// CreateGoal registers a recurring exercise goal for the caller. The
// end date is derived server-side from the cadence and target count.
func (h *AnalyticsHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	goal, err := h.analyticsService.CreateGoal(c.Request.Context(), userID, exerciseID, req.ExerciseType, req.OccurrenceCount)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create goal")
		}
		return
	}

	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// DeleteGoal removes a goal and its occurrence history. Only the
// owning user can delete; anyone else sees a 404.
func (h *AnalyticsHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	if err := h.analyticsService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete goal")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DueToday lists goals whose cadence expects an occurrence today and
// that are not already done for the day.
func (h *AnalyticsHandler) DueToday(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	goals, err := h.analyticsService.DueToday(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve due goals")
		return
	}

	resp := make([]GoalResponse, len(goals))
	for i := range goals {
		resp[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, resp)
}

// AchievementSummary returns completed / in progress / uncompleted
// counts for the caller's goals of one cadence (?type=Weekly).
func (h *AnalyticsHandler) AchievementSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	cadence := domain.Cadence(c.DefaultQuery("type", string(domain.CadenceDaily)))

	summary, err := h.analyticsService.AchievementSummary(c.Request.Context(), userID, cadence)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build achievement summary")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MapGoalToResponse converts a domain Analytics record to its DTO.
func MapGoalToResponse(goal *domain.Analytics) GoalResponse {
	if goal == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:              goal.ID.Hex(),
		ExerciseID:      goal.ExerciseID.Hex(),
		ExerciseType:    goal.Cadence,
		OccurrenceCount: goal.TargetCount,
		Status:          goal.Status,
		ProgressPercent: goal.ProgressPercent,
		CreationDate:    goal.CreatedAt,
		EndDate:         goal.EndDate,
	}
}
