package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type progressFixture struct {
	analyticsRepo  *fakeAnalyticsRepo
	occurrenceRepo *fakeOccurrenceRepo
	exerciseRepo   *fakeExerciseRepo
	progress       service.ProgressService
	analytics      service.AnalyticsService
	userID         primitive.ObjectID
	exerciseID     primitive.ObjectID
}

func newProgressFixture(t *testing.T, now time.Time) *progressFixture {
	t.Helper()

	analyticsRepo := newFakeAnalyticsRepo()
	occurrenceRepo := newFakeOccurrenceRepo()
	exerciseRepo := newFakeExerciseRepo()

	exerciseID, err := exerciseRepo.Create(context.Background(), &domain.Exercise{
		Name:           "Push Ups",
		GoalCategory:   domain.GoalBuildMuscle,
		CaloriesBurned: 150,
	})
	require.NoError(t, err)

	clock := fixedClock(now)
	return &progressFixture{
		analyticsRepo:  analyticsRepo,
		occurrenceRepo: occurrenceRepo,
		exerciseRepo:   exerciseRepo,
		progress:       service.NewProgressService(analyticsRepo, occurrenceRepo, exerciseRepo, clock),
		analytics:      service.NewAnalyticsService(analyticsRepo, occurrenceRepo, exerciseRepo, clock),
		userID:         primitive.NewObjectID(),
		exerciseID:     exerciseID,
	}
}

func TestRecordOccurrence_UpdatesProgress(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	occ, err := f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", occ.Date)
	require.NotNil(t, occ.CaloriesBurned)
	assert.Equal(t, 150.0, *occ.CaloriesBurned)

	stored := f.analyticsRepo.get(goal.ID)
	require.NotNil(t, stored)
	assert.Equal(t, 20.0, stored.ProgressPercent)
	assert.Equal(t, domain.GoalInProgress, stored.Status)
}

func TestRecordOccurrence_SameDateIsIdempotent(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)
	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	assert.Equal(t, 1, f.occurrenceRepo.count())
	assert.Equal(t, 20.0, f.analyticsRepo.get(goal.ID).ProgressPercent)
}

func TestRecordOccurrence_StatusFlipKeepsSingleRow(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	occ, err := f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceSkipped)
	require.NoError(t, err)

	assert.Equal(t, 1, f.occurrenceRepo.count())
	assert.Equal(t, domain.OccurrenceSkipped, occ.Status)
	// Skipped still counts toward progress.
	assert.Equal(t, 20.0, f.analyticsRepo.get(goal.ID).ProgressPercent)
}

func TestRecordOccurrence_CompletesGoalAtTarget(t *testing.T) {
	now := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 3)
	require.NoError(t, err)

	for _, date := range []string{"2024-01-05", "2024-01-06", "2024-01-07"} {
		_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, date, domain.OccurrenceCompleted)
		require.NoError(t, err)
	}

	stored := f.analyticsRepo.get(goal.ID)
	assert.Equal(t, 100.0, stored.ProgressPercent)
	assert.Equal(t, domain.GoalCompleted, stored.Status)
}

func TestRecordOccurrence_OtherUsersGoalIsNotFound(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	otherUser := primitive.NewObjectID()
	_, err = f.progress.RecordOccurrence(context.Background(), otherUser, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	assert.ErrorIs(t, err, service.ErrGoalNotFound)
}

func TestRecordOccurrence_RejectsBadInput(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "01/01/2024", domain.OccurrenceCompleted)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", "done")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestProgressSummary(t *testing.T) {
	created := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, created)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)
	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-02", domain.OccurrenceSkipped)
	require.NoError(t, err)

	// Three days in: two actioned, one expected-but-missed.
	later := service.NewProgressService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)))

	reports, err := later.ProgressSummary(context.Background(), f.userID, domain.CadenceDaily)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "Push Ups", report.Exercise)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Uncompleted)
	assert.Equal(t, 40.0, report.Progress)
	assert.Equal(t, domain.GoalInProgress, report.Status)
}

func TestProgressSummary_SkipsFutureGoals(t *testing.T) {
	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, created)

	_, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	earlier := service.NewProgressService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)))

	reports, err := earlier.ProgressSummary(context.Background(), f.userID, domain.CadenceDaily)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRefreshGoalStatuses_ExpiresOverdueGoals(t *testing.T) {
	created := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, created)

	// Three-day goal, one occurrence recorded, then checked well past
	// the end date.
	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 3)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	later := service.NewProgressService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)))

	require.NoError(t, later.RefreshGoalStatuses(context.Background()))

	stored := f.analyticsRepo.get(goal.ID)
	assert.Equal(t, domain.GoalUncompleted, stored.Status)
	assert.Equal(t, 33.33, stored.ProgressPercent)
	assert.Equal(t, goal.EndDate, stored.EndDate, "end date stays as derived at creation")
}

func TestBurnSummary(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 10)
	require.NoError(t, err)

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, date, domain.OccurrenceCompleted)
		require.NoError(t, err)
	}
	// Skipped occurrences carry no calories.
	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-03", domain.OccurrenceSkipped)
	require.NoError(t, err)

	rows, err := f.progress.BurnSummary(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.Equal(t, 150.0, rows[0].TotalCalories)
	assert.Equal(t, "2024-01-02", rows[1].Date)
}
