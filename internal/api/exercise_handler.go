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

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type CreateExerciseRequest struct {
	Name            string                 `json:"name" binding:"required"`
	GoalCategory    domain.GoalCategory    `json:"goalCategory" binding:"required"`
	AgeMin          int                    `json:"ageMin" binding:"gte=0"`
	AgeMax          int                    `json:"ageMax" binding:"gtefield=AgeMin"`
	MeasurementType domain.MeasurementType `json:"measurementType" binding:"required,oneof=duration reps_sets"`
	DurationMinutes int                    `json:"durationMinutes" binding:"omitempty,gt=0"`
	Reps            int                    `json:"reps" binding:"omitempty,gt=0"`
	Sets            int                    `json:"sets" binding:"omitempty,gt=0"`
	CaloriesBurned  float64                `json:"caloriesBurned" binding:"gte=0"`
	Intensity       domain.Intensity       `json:"intensity" binding:"required,oneof=Low Moderate High"`
}

type ExerciseResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	GoalCategory    domain.GoalCategory    `json:"goalCategory"`
	AgeMin          int                    `json:"ageMin"`
	AgeMax          int                    `json:"ageMax"`
	MeasurementType domain.MeasurementType `json:"measurementType"`
	DurationMinutes int                    `json:"durationMinutes,omitempty"`
	Reps            int                    `json:"reps,omitempty"`
	Sets            int                    `json:"sets,omitempty"`
	CaloriesBurned  float64                `json:"caloriesBurned"`
	Intensity       domain.Intensity       `json:"intensity"`
	CreatedAt       time.Time              `json:"createdAt"`
}

type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type MediaDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handler Methods ---

// CreateExercise adds a catalog entry. Admin only.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), &domain.Exercise{
		Name:            req.Name,
		GoalCategory:    req.GoalCategory,
		AgeMin:          req.AgeMin,
		AgeMax:          req.AgeMax,
		MeasurementType: req.MeasurementType,
		DurationMinutes: req.DurationMinutes,
		Reps:            req.Reps,
		Sets:            req.Sets,
		CaloriesBurned:  req.CaloriesBurned,
		Intensity:       req.Intensity,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises returns the catalog, optionally filtered by goal
// category (?goalCategory=Weight+Loss).
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	goalCategory := domain.GoalCategory(c.Query("goalCategory"))

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), goalCategory)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}

	resp := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		resp[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetExercise returns a single catalog entry by ID.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// RequestMediaUpload returns a presigned PUT URL for the exercise's
// demo media. Admin only.
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare media upload")
		}
		return
	}

	c.JSON(http.StatusOK, MediaUploadResponse{
		UploadURL: ticket.UploadURL,
		ObjectKey: ticket.ObjectKey,
	})
}

// GetMediaDownloadURL returns a presigned GET URL for the exercise's
// demo media.
func (h *ExerciseHandler) GetMediaDownloadURL(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	url, err := h.exerciseService.GetMediaDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) || errors.Is(err, service.ErrNoMediaAttached) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare media download")
		}
		return
	}

	c.JSON(http.StatusOK, MediaDownloadResponse{DownloadURL: url})
}

// MapExerciseToResponse converts a domain Exercise to its DTO.
func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	if exercise == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:              exercise.ID.Hex(),
		Name:            exercise.Name,
		GoalCategory:    exercise.GoalCategory,
		AgeMin:          exercise.AgeMin,
		AgeMax:          exercise.AgeMax,
		MeasurementType: exercise.MeasurementType,
		DurationMinutes: exercise.DurationMinutes,
		Reps:            exercise.Reps,
		Sets:            exercise.Sets,
		CaloriesBurned:  exercise.CaloriesBurned,
		Intensity:       exercise.Intensity,
		CreatedAt:       exercise.CreatedAt,
	}
}
