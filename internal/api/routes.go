package api

import (
	"net/http"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	analyticsService service.AnalyticsService,
	progressService service.ProgressService,
	foodService service.FoodService,
	healthService service.HealthService,
	billingService service.BillingService,
) {

	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	progressHandler := NewProgressHandler(progressService)
	foodHandler := NewFoodHandler(foodService)
	healthHandler := NewHealthHandler(healthService)
	billingHandler := NewBillingHandler(billingService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile ---
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", adminOnly, exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("/:id/media/upload-url", adminOnly, exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media/download-url", exerciseHandler.GetMediaDownloadURL)
		}

		// --- Recurring Goals ---
		analyticsGroup := protected.Group("/exercise-analytics")
		{
			analyticsGroup.POST("", analyticsHandler.CreateGoal)
			analyticsGroup.DELETE("/:id", analyticsHandler.DeleteGoal)
			analyticsGroup.GET("/today", analyticsHandler.DueToday)
		}
		protected.GET("/achievement-summary", analyticsHandler.AchievementSummary)

		// --- Occurrences & Progress ---
		protected.POST("/occurrences/create-or-update", progressHandler.RecordOccurrence)
		protected.GET("/analytics/progress-summary", progressHandler.ProgressSummary)
		protected.GET("/burn-summary", progressHandler.BurnSummary)

		// --- Food ---
		foodGroup := protected.Group("/food")
		{
			foodGroup.GET("/categories", foodHandler.ListCategories)
			foodGroup.GET("/units", foodHandler.ListUnits)
			foodGroup.GET("/items", foodHandler.ListItems)
			foodGroup.GET("/sizes", foodHandler.ListSizes)
			foodGroup.POST("/consumptions", foodHandler.LogConsumption)
			foodGroup.GET("/consumption-summary", foodHandler.ConsumptionSummary)
		}

		// --- Health ---
		healthGroup := protected.Group("/health")
		{
			healthGroup.POST("/checkins", healthHandler.SubmitCheckIn)
			healthGroup.GET("/checkins", healthHandler.CheckInHistory)
			healthGroup.POST("/devices", healthHandler.RegisterDevice)
			healthGroup.GET("/devices", healthHandler.ListDevices)
		}

		// --- Billing ---
		billingGroup := protected.Group("/billing")
		{
			billingGroup.GET("/plans", billingHandler.ListPlans)
			billingGroup.POST("/plans/choose", billingHandler.ChoosePlan)
			billingGroup.GET("/payment-methods", billingHandler.ListPaymentMethods)
			billingGroup.POST("/payments", billingHandler.RecordPayment)
		}
	}
}
