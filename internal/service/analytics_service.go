package service

import (
	"context"
	"errors"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrGoalNotFound     = errors.New("analytics record not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

// StatusCount is one row of the achievement summary.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsService manages recurring exercise goals: creation with
// end-date derivation, deletion with occurrence cascade, the
// due-today selection and the status summary.
type AnalyticsService interface {
	CreateGoal(ctx context.Context, userID, exerciseID primitive.ObjectID, cadence domain.Cadence, targetCount int) (*domain.Analytics, error)
	DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error
	DueToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error)
	AchievementSummary(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]StatusCount, error)
}

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	analyticsRepo  repository.AnalyticsRepository
	occurrenceRepo repository.OccurrenceRepository
	exerciseRepo   repository.ExerciseRepository
	now            func() time.Time
}

// NewAnalyticsService creates a new instance of analyticsService.
// The now function supplies the current time so date arithmetic is
// deterministic under test; pass time.Now in production.
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	occurrenceRepo repository.OccurrenceRepository,
	exerciseRepo repository.ExerciseRepository,
	now func() time.Time,
) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{
		analyticsRepo:  analyticsRepo,
		occurrenceRepo: occurrenceRepo,
		exerciseRepo:   exerciseRepo,
		now:            now,
	}
}

// CreateGoal creates a recurring goal against a catalog exercise.
// The end date is derived here, once; nothing ever recomputes it.
func (s *analyticsService) CreateGoal(ctx context.Context, userID, exerciseID primitive.ObjectID, cadence domain.Cadence, targetCount int) (*domain.Analytics, error) {
	if !cadence.Valid() || targetCount <= 0 {
		return nil, ErrValidationFailed
	}
	if userID.IsZero() || exerciseID.IsZero() {
		return nil, ErrValidationFailed
	}

	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	created := s.now().UTC()
	goal := &domain.Analytics{
		UserID:          userID,
		ExerciseID:      exerciseID,
		Cadence:         cadence,
		TargetCount:     targetCount,
		Status:          domain.GoalInProgress,
		ProgressPercent: 0,
		CreatedAt:       created,
	}
	goal.EndDate = goal.ComputeEndDate(created)

	goalID, err := s.analyticsRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = goalID
	return goal, nil
}

// DeleteGoal removes a goal and cascades to its occurrence ledger so
// no occurrence ever references a missing goal.
func (s *analyticsService) DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error {
	if err := s.analyticsRepo.Delete(ctx, goalID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return s.occurrenceRepo.DeleteByAnalyticsID(ctx, goalID)
}

// DueToday returns the user's goals that expect an occurrence today:
// not completed, not structurally finished, not already actioned
// today, and due per the goal's cadence.
func (s *analyticsService) DueToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error) {
	goals, err := s.analyticsRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	todayStr := today.Format(domain.DateLayout)

	due := []domain.Analytics{}
	for _, goal := range goals {
		if goal.Status == domain.GoalCompleted {
			continue
		}

		done, err := s.occurrenceRepo.CountByStatuses(ctx, goal.ID, domain.OccurrenceCompleted, domain.OccurrenceSkipped)
		if err != nil {
			return nil, err
		}
		if done >= goal.TargetCount {
			continue
		}

		actioned, err := s.occurrenceRepo.ExistsForDate(ctx, goal.ID, todayStr, domain.OccurrenceCompleted, domain.OccurrenceSkipped)
		if err != nil {
			return nil, err
		}
		if actioned {
			continue
		}

		if goal.DueOn(today) {
			due = append(due, goal)
		}
	}
	return due, nil
}

// AchievementSummary counts the user's goals of one cadence by status.
func (s *analyticsService) AchievementSummary(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]StatusCount, error) {
	if !cadence.Valid() {
		return nil, ErrValidationFailed
	}

	goals, err := s.analyticsRepo.ListByUserAndCadence(ctx, userID, cadence)
	if err != nil {
		return nil, err
	}

	var completed, inProgress, uncompleted int
	for _, goal := range goals {
		switch goal.Status {
		case domain.GoalCompleted:
			completed++
		case domain.GoalInProgress:
			inProgress++
		case domain.GoalUncompleted:
			uncompleted++
		}
	}

	return []StatusCount{
		{Name: "Completed", Value: completed},
		{Name: "In Progress", Value: inProgress},
		{Name: "Uncompleted", Value: uncompleted},
	}, nil
}
