package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BillingHandler holds the billing service dependency.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// --- Request/Response Structs ---

type ChoosePlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type RecordPaymentRequest struct {
	PaymentMethodID string  `json:"paymentMethodId" binding:"required"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Currency        string  `json:"currency" binding:"required,len=3"`
}

// --- Handler Methods ---

// ListPlans returns all subscription plans.
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.billingService.ListPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// ChoosePlan subscribes the caller to a plan.
func (h *BillingHandler) ChoosePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ChoosePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	plan, err := h.billingService.ChoosePlan(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to choose plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListPaymentMethods returns the active payment methods.
func (h *BillingHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.billingService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payment methods")
		return
	}
	c.JSON(http.StatusOK, methods)
}

// RecordPayment stores a pending payment for the caller.
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	methodID, err := primitive.ObjectIDFromHex(req.PaymentMethodID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid payment method ID format")
		return
	}

	payment, err := h.billingService.RecordPayment(c.Request.Context(), userID, methodID, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record payment")
		}
		return
	}

	c.JSON(http.StatusCreated, payment)
}
