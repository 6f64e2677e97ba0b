package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoMediaAttached = errors.New("exercise has no demo media")

// MediaUploadTicket carries a presigned PUT URL and the object key it
// will be stored under.
type MediaUploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ExerciseService manages the exercise catalog and its demo media.
type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, goalCategory domain.GoalCategory) ([]domain.Exercise, error)
	RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*MediaUploadTicket, error)
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	mediaStorage storage.MediaStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, mediaStorage storage.MediaStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		mediaStorage: mediaStorage,
	}
}

// CreateExercise adds a catalog entry. Admin-only at the API layer.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" || exercise.CaloriesBurned <= 0 {
		return nil, ErrValidationFailed
	}
	if exercise.AgeMin < 0 || exercise.AgeMax < exercise.AgeMin {
		return nil, ErrValidationFailed
	}

	switch exercise.MeasurementType {
	case domain.MeasureDuration:
		if exercise.DurationMinutes <= 0 {
			return nil, ErrValidationFailed
		}
	case domain.MeasureRepsSets:
		if exercise.Reps <= 0 || exercise.Sets <= 0 {
			return nil, ErrValidationFailed
		}
	default:
		return nil, ErrValidationFailed
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single catalog entry.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises retrieves the catalog, optionally filtered by goal category.
func (s *exerciseService) ListExercises(ctx context.Context, goalCategory domain.GoalCategory) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, goalCategory)
}

// RequestMediaUpload issues a presigned PUT URL for an exercise's demo
// media and records the object key on the exercise.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*MediaUploadTicket, error) {
	if contentType == "" {
		return nil, ErrValidationFailed
	}

	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exercise-media/%s/%s", exerciseID.Hex(), uuid.NewString())
	uploadURL, err := s.mediaStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.SetMediaObjectKey(ctx, exerciseID, objectKey); err != nil {
		return nil, err
	}

	// Replacing media orphans the previous object; clean it up.
	if exercise.MediaObjectKey != "" {
		if err := s.mediaStorage.DeleteObject(ctx, exercise.MediaObjectKey); err != nil {
			logrus.WithError(err).WithField("key", exercise.MediaObjectKey).Warn("failed to delete replaced media object")
		}
	}

	return &MediaUploadTicket{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// GetMediaDownloadURL issues a presigned GET URL for an exercise's
// demo media.
func (s *exerciseService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaObjectKey == "" {
		return "", ErrNoMediaAttached
	}
	return s.mediaStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, 1*time.Hour)
}
