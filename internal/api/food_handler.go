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

// FoodHandler holds the food catalog/consumption service dependency.
type FoodHandler struct {
	foodService service.FoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foodService service.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// --- Request/Response Structs ---

type LogConsumptionRequest struct {
	MealType   domain.MealType `json:"mealType" binding:"required,oneof=breakfast lunch dinner"`
	FoodItemID string          `json:"foodItemId" binding:"required"`
	SizeID     string          `json:"sizeId"`
	Quantity   float64         `json:"quantity" binding:"required,gt=0"`
}

type ConsumptionResponse struct {
	ID               string          `json:"id"`
	MealType         domain.MealType `json:"mealType"`
	FoodItemID       string          `json:"foodItemId"`
	SizeID           *string         `json:"sizeId,omitempty"`
	Quantity         float64         `json:"quantity"`
	CaloriesConsumed float64         `json:"caloriesConsumed"`
	LoggedAt         time.Time       `json:"loggedAt"`
}

// --- Handler Methods ---

// ListCategories returns the food category catalog.
func (h *FoodHandler) ListCategories(c *gin.Context) {
	categories, err := h.foodService.ListCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve food categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListUnits returns the measurement unit catalog.
func (h *FoodHandler) ListUnits(c *gin.Context) {
	units, err := h.foodService.ListUnits(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve food units")
		return
	}
	c.JSON(http.StatusOK, units)
}

// ListItems returns food items, optionally filtered by category
// (?categoryId=...).
func (h *FoodHandler) ListItems(c *gin.Context) {
	var categoryID *primitive.ObjectID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid category ID format")
			return
		}
		categoryID = &id
	}

	items, err := h.foodService.ListItems(c.Request.Context(), categoryID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve food items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListSizes returns the portion-size catalog.
func (h *FoodHandler) ListSizes(c *gin.Context) {
	sizes, err := h.foodService.ListSizes(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve food sizes")
		return
	}
	c.JSON(http.StatusOK, sizes)
}

// LogConsumption records one meal entry for the caller. Calories are
// computed server-side from the catalog.
func (h *FoodHandler) LogConsumption(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.FoodItemID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food item ID format")
		return
	}

	var sizeID *primitive.ObjectID
	if req.SizeID != "" {
		id, err := primitive.ObjectIDFromHex(req.SizeID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid size ID format")
			return
		}
		sizeID = &id
	}

	consumption, err := h.foodService.LogConsumption(c.Request.Context(), userID, req.MealType, itemID, sizeID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrFoodItemNotFound) || errors.Is(err, service.ErrFoodSizeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log consumption")
		}
		return
	}

	c.JSON(http.StatusCreated, MapConsumptionToResponse(consumption))
}

// ConsumptionSummary returns kcal consumed per day over a date range
// (?start=YYYY-MM-DD&end=YYYY-MM-DD&mealType=lunch), defaulting to the
// last 30 days.
func (h *FoodHandler) ConsumptionSummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var mealType *domain.MealType
	if raw := c.Query("mealType"); raw != "" {
		mt := domain.MealType(raw)
		if !mt.Valid() {
			abortWithError(c, http.StatusBadRequest, "Invalid meal type")
			return
		}
		mealType = &mt
	}

	rows, err := h.foodService.ConsumptionSummary(c.Request.Context(), userID, c.Query("start"), c.Query("end"), mealType)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build consumption summary")
		}
		return
	}

	c.JSON(http.StatusOK, rows)
}

// MapConsumptionToResponse converts a domain FoodConsumption to its DTO.
func MapConsumptionToResponse(consumption *domain.FoodConsumption) ConsumptionResponse {
	if consumption == nil {
		return ConsumptionResponse{}
	}
	resp := ConsumptionResponse{
		ID:               consumption.ID.Hex(),
		MealType:         consumption.MealType,
		FoodItemID:       consumption.FoodItemID.Hex(),
		Quantity:         consumption.Quantity,
		CaloriesConsumed: consumption.CaloriesConsumed,
		LoggedAt:         consumption.LoggedAt,
	}
	if consumption.SizeID != nil {
		sizeHex := consumption.SizeID.Hex()
		resp.SizeID = &sizeHex
	}
	return resp
}
