package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthHandler holds the check-in/device service dependency.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// --- Request/Response Structs ---

type CheckInRequest struct {
	HeartRate   *int     `json:"heartRate" binding:"omitempty,gt=0"`
	SystolicBP  *int     `json:"systolicBp" binding:"omitempty,gt=0"`
	DiastolicBP *int     `json:"diastolicBp" binding:"omitempty,gt=0"`
	Weight      *float64 `json:"weight" binding:"omitempty,gt=0"`
	SleepHours  *float64 `json:"sleepHours" binding:"omitempty,gte=0,lte=24"`
	WaterIntake *float64 `json:"waterIntake" binding:"omitempty,gte=0"`
	Mood        *int     `json:"mood" binding:"omitempty,gte=1,lte=10"`
	Stress      *int     `json:"stress" binding:"omitempty,gte=1,lte=10"`
	Steps       *int     `json:"steps" binding:"omitempty,gte=0"`
	DeviceID    string   `json:"deviceId"`
}

type RegisterDeviceRequest struct {
	Name       string `json:"name" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}

// --- Handler Methods ---

// SubmitCheckIn records today's vitals for the caller, overwriting any
// earlier submission for the same day.
func (h *HealthHandler) SubmitCheckIn(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.CheckInInput{
		HeartRate:   req.HeartRate,
		SystolicBP:  req.SystolicBP,
		DiastolicBP: req.DiastolicBP,
		Weight:      req.Weight,
		SleepHours:  req.SleepHours,
		WaterIntake: req.WaterIntake,
		Mood:        req.Mood,
		Stress:      req.Stress,
		Steps:       req.Steps,
	}
	if req.DeviceID != "" {
		deviceID, err := primitive.ObjectIDFromHex(req.DeviceID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid device ID format")
			return
		}
		input.DeviceID = &deviceID
	}

	checkIn, err := h.healthService.SubmitCheckIn(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record check-in")
		}
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

// CheckInHistory lists the caller's check-ins over a date range
// (?start=YYYY-MM-DD&end=YYYY-MM-DD), defaulting to the last 30 days.
func (h *HealthHandler) CheckInHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	checkIns, err := h.healthService.CheckInHistory(c.Request.Context(), userID, c.Query("start"), c.Query("end"))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve check-ins")
		}
		return
	}

	c.JSON(http.StatusOK, checkIns)
}

// RegisterDevice registers a health-tracking device for the caller.
func (h *HealthHandler) RegisterDevice(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	device, err := h.healthService.RegisterDevice(c.Request.Context(), userID, req.Name, req.Identifier)
	if err != nil {
		if errors.Is(err, service.ErrDeviceExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to register device")
		}
		return
	}

	c.JSON(http.StatusCreated, device)
}

// ListDevices lists the caller's registered devices.
func (h *HealthHandler) ListDevices(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	devices, err := h.healthService.ListDevices(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve devices")
		return
	}

	c.JSON(http.StatusOK, devices)
}
