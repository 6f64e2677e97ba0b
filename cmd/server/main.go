package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/api"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/config"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository/mongo"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/scheduler"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting Fitness Tracker server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("Could not load config")
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureAllIndexes(ctx, appDB)
	}()

	// --- Initialize Storage ---
	log.Info("Initializing media storage service...")
	mediaStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	analyticsRepo := mongo.NewMongoAnalyticsRepository(appDB)
	occurrenceRepo := mongo.NewMongoOccurrenceRepository(appDB)
	foodRepo := mongo.NewMongoFoodRepository(appDB)
	healthRepo := mongo.NewMongoHealthRepository(appDB)
	billingRepo := mongo.NewMongoBillingRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo, mediaStorage)
	analyticsService := service.NewAnalyticsService(analyticsRepo, occurrenceRepo, exerciseRepo, time.Now)
	progressService := service.NewProgressService(analyticsRepo, occurrenceRepo, exerciseRepo, time.Now)
	foodService := service.NewFoodService(foodRepo, time.Now)
	healthService := service.NewHealthService(healthRepo, time.Now)
	billingService := service.NewBillingService(billingRepo, userRepo, time.Now)

	// --- Background Status Refresh ---
	if cfg.Scheduler.Enabled {
		refresher := scheduler.NewStatusRefresher(progressService, cfg.Scheduler.RefreshInterval)
		if err := refresher.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start status refresher")
		}
		defer refresher.Stop()
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, exerciseService, analyticsService, progressService,
		foodService, healthService, billingService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("Server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exiting.")
}
