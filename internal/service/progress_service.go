package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalProgressReport is one row of the per-goal progress summary.
type GoalProgressReport struct {
	ID          string            `json:"id"`
	Exercise    string            `json:"exercise"`
	Type        domain.Cadence    `json:"type"`
	Completed   int               `json:"completed"`
	Skipped     int               `json:"skipped"`
	Uncompleted int               `json:"uncompleted"`
	Progress    float64           `json:"progress"`
	Status      domain.GoalStatus `json:"status"`
}

// ProgressService owns the occurrence ledger and the progress
// aggregation derived from it.
type ProgressService interface {
	RecordOccurrence(ctx context.Context, userID, analyticsID primitive.ObjectID, date string, status domain.OccurrenceStatus) (*domain.Occurrence, error)
	ProgressSummary(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]GoalProgressReport, error)
	BurnSummary(ctx context.Context, userID primitive.ObjectID) ([]repository.DateCalories, error)
	// RefreshGoalStatuses reruns the aggregate for every unfinished
	// goal, flipping goals past their end date to uncompleted. Run
	// periodically by the scheduler.
	RefreshGoalStatuses(ctx context.Context) error
}

// progressService implements the ProgressService interface.
type progressService struct {
	analyticsRepo  repository.AnalyticsRepository
	occurrenceRepo repository.OccurrenceRepository
	exerciseRepo   repository.ExerciseRepository
	now            func() time.Time
}

// NewProgressService creates a new instance of progressService.
// The now function supplies the current time; pass time.Now in production.
func NewProgressService(
	analyticsRepo repository.AnalyticsRepository,
	occurrenceRepo repository.OccurrenceRepository,
	exerciseRepo repository.ExerciseRepository,
	now func() time.Time,
) ProgressService {
	if now == nil {
		now = time.Now
	}
	return &progressService{
		analyticsRepo:  analyticsRepo,
		occurrenceRepo: occurrenceRepo,
		exerciseRepo:   exerciseRepo,
		now:            now,
	}
}

// RecordOccurrence upserts the occurrence for (goal, date) and, when
// the new status counts toward progress, reruns the aggregate.
// Recording the same date twice never creates a second row; a second
// call with the same status is a no-op.
func (s *progressService) RecordOccurrence(ctx context.Context, userID, analyticsID primitive.ObjectID, date string, status domain.OccurrenceStatus) (*domain.Occurrence, error) {
	if analyticsID.IsZero() || date == "" || status == "" {
		return nil, ErrValidationFailed
	}
	if !status.Valid() {
		return nil, ErrValidationFailed
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, ErrValidationFailed
	}

	goal, err := s.analyticsRepo.GetByIDAndUser(ctx, analyticsID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	occ := &domain.Occurrence{
		AnalyticsID: analyticsID,
		UserID:      userID,
		Date:        date,
		Status:      status,
	}

	// Completion stamps the exercise's fixed per-occurrence burn onto
	// the ledger row, so later catalog edits don't rewrite history.
	if status == domain.OccurrenceCompleted {
		exercise, err := s.exerciseRepo.GetByID(ctx, goal.ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		calories := exercise.CaloriesBurned
		occ.CaloriesBurned = &calories
	}

	stored, err := s.occurrenceRepo.Upsert(ctx, occ)
	if err != nil {
		return nil, err
	}

	// The ledger write is the source of truth. A failed recompute is
	// only logged; the aggregate re-runs on the next summary read or
	// scheduler pass.
	if status.Done() {
		if _, _, err := s.recomputeGoal(ctx, goal, s.now().UTC()); err != nil {
			logrus.WithError(err).WithField("goalId", goal.ID.Hex()).Warn("progress recompute failed after occurrence write")
		}
	}

	return stored, nil
}

// ProgressSummary reports, per goal of the given cadence, how many
// occurrences were completed and skipped up to today, how many were
// expected but not actioned, and the refreshed progress/status.
func (s *progressService) ProgressSummary(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]GoalProgressReport, error) {
	if !cadence.Valid() {
		return nil, ErrValidationFailed
	}

	goals, err := s.analyticsRepo.ListByUserAndCadence(ctx, userID, cadence)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	todayStr := today.Format(domain.DateLayout)

	report := []GoalProgressReport{}
	for i := range goals {
		goal := &goals[i]

		expected := goal.ExpectedByDate(today)
		if expected < 1 {
			// Goal created in the future; nothing to report yet.
			continue
		}

		completed, err := s.occurrenceRepo.CountByStatusUpTo(ctx, goal.ID, todayStr, domain.OccurrenceCompleted)
		if err != nil {
			return nil, err
		}
		skipped, err := s.occurrenceRepo.CountByStatusUpTo(ctx, goal.ID, todayStr, domain.OccurrenceSkipped)
		if err != nil {
			return nil, err
		}

		uncompleted := expected - (completed + skipped)
		if uncompleted < 0 {
			uncompleted = 0
		}

		progress, status, err := s.recomputeGoal(ctx, goal, today)
		if err != nil {
			return nil, err
		}

		exerciseName := ""
		if exercise, err := s.exerciseRepo.GetByID(ctx, goal.ExerciseID); err == nil {
			exerciseName = exercise.Name
		}

		report = append(report, GoalProgressReport{
			ID:          goal.ID.Hex(),
			Exercise:    exerciseName,
			Type:        goal.Cadence,
			Completed:   completed,
			Skipped:     skipped,
			Uncompleted: uncompleted,
			Progress:    progress,
			Status:      status,
		})
	}
	return report, nil
}

// BurnSummary returns the user's completed-occurrence calories summed
// per day.
func (s *progressService) BurnSummary(ctx context.Context, userID primitive.ObjectID) ([]repository.DateCalories, error) {
	rows, err := s.occurrenceRepo.SumCaloriesByDate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.DateCalories{}
	}
	return rows, nil
}

// RefreshGoalStatuses reruns the aggregate for every unfinished goal.
func (s *progressService) RefreshGoalStatuses(ctx context.Context) error {
	goals, err := s.analyticsRepo.ListUnfinished(ctx)
	if err != nil {
		return err
	}

	today := s.now().UTC()
	for i := range goals {
		if _, _, err := s.recomputeGoal(ctx, &goals[i], today); err != nil {
			logrus.WithError(err).WithField("goalId", goals[i].ID.Hex()).Warn("goal status refresh failed")
		}
	}
	return nil
}

// recomputeGoal is the single authoritative progress rule. Both the
// occurrence write path and the summary read path go through it:
//
//	done     = count(completed) + count(skipped)
//	progress = round(100 * done / target, 2)
//	status   = completed   when done >= target
//	           uncompleted when past the end date with progress < 100
//	           inprogress  otherwise
//
// The end date is never modified here; it stays the value derived at
// goal creation.
func (s *progressService) recomputeGoal(ctx context.Context, goal *domain.Analytics, today time.Time) (float64, domain.GoalStatus, error) {
	done, err := s.occurrenceRepo.CountByStatuses(ctx, goal.ID, domain.OccurrenceCompleted, domain.OccurrenceSkipped)
	if err != nil {
		return 0, "", err
	}

	progress := round2(100 * float64(done) / float64(goal.TargetCount))

	status := domain.GoalInProgress
	switch {
	case done >= goal.TargetCount:
		status = domain.GoalCompleted
	case goal.Expired(today):
		status = domain.GoalUncompleted
	}

	if err := s.analyticsRepo.UpdateProgress(ctx, goal.ID, progress, status); err != nil {
		return 0, "", err
	}

	goal.ProgressPercent = progress
	goal.Status = status
	return progress, status, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
