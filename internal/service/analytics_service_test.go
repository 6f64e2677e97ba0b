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

func TestCreateGoal_DerivesEndDate(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	tests := []struct {
		name    string
		cadence domain.Cadence
		target  int
		wantEnd time.Time
	}{
		{"daily", domain.CadenceDaily, 5, time.Date(2024, time.January, 6, 10, 0, 0, 0, time.UTC)},
		{"weekly", domain.CadenceWeekly, 2, time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)},
		{"monthly", domain.CadenceMonthly, 1, time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, tt.cadence, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, goal.EndDate)
			assert.Equal(t, domain.GoalInProgress, goal.Status)
			assert.Zero(t, goal.ProgressPercent)
		})
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	_, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, "Yearly", 5)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 0)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = f.analytics.CreateGoal(context.Background(), f.userID, primitive.NewObjectID(), domain.CadenceDaily, 5)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestDeleteGoal_CascadesToOccurrences(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)
	require.Equal(t, 1, f.occurrenceRepo.count())

	require.NoError(t, f.analytics.DeleteGoal(context.Background(), f.userID, goal.ID))

	assert.Nil(t, f.analyticsRepo.get(goal.ID))
	assert.Equal(t, 0, f.occurrenceRepo.count())
}

func TestDeleteGoal_OtherUserSeesNotFound(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	err = f.analytics.DeleteGoal(context.Background(), primitive.NewObjectID(), goal.ID)
	assert.ErrorIs(t, err, service.ErrGoalNotFound)
	assert.NotNil(t, f.analyticsRepo.get(goal.ID))
}

func TestDueToday_DailyGoal(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	due, err := f.analytics.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, goal.ID, due[0].ID)
}

func TestDueToday_ExcludesActionedToday(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceSkipped)
	require.NoError(t, err)

	due, err := f.analytics.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDueToday_UncompletedTodayStillDue(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	// An uncompleted mark doesn't action the day; the goal can still
	// be done later today.
	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceUncompleted)
	require.NoError(t, err)

	due, err := f.analytics.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestDueToday_ExcludesFinishedGoals(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	goal, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 1)
	require.NoError(t, err)

	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, goal.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	nextDay := service.NewAnalyticsService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)))

	due, err := nextDay.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDueToday_WeeklyOnlyOnAnniversary(t *testing.T) {
	created := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, created)

	_, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceWeekly, 4)
	require.NoError(t, err)

	midWeek := service.NewAnalyticsService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.January, 4, 9, 0, 0, 0, time.UTC)))
	due, err := midWeek.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, due)

	weekLater := service.NewAnalyticsService(f.analyticsRepo, f.occurrenceRepo, f.exerciseRepo,
		fixedClock(time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)))
	due, err = weekLater.DueToday(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestAchievementSummary(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	done, err := f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 1)
	require.NoError(t, err)
	_, err = f.progress.RecordOccurrence(context.Background(), f.userID, done.ID, "2024-01-01", domain.OccurrenceCompleted)
	require.NoError(t, err)

	_, err = f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceDaily, 5)
	require.NoError(t, err)

	// Weekly goals stay out of the Daily summary.
	_, err = f.analytics.CreateGoal(context.Background(), f.userID, f.exerciseID, domain.CadenceWeekly, 2)
	require.NoError(t, err)

	summary, err := f.analytics.AchievementSummary(context.Background(), f.userID, domain.CadenceDaily)
	require.NoError(t, err)
	require.Len(t, summary, 3)

	assert.Equal(t, service.StatusCount{Name: "Completed", Value: 1}, summary[0])
	assert.Equal(t, service.StatusCount{Name: "In Progress", Value: 1}, summary[1])
	assert.Equal(t, service.StatusCount{Name: "Uncompleted", Value: 0}, summary[2])
}

func TestAchievementSummary_RejectsUnknownCadence(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	f := newProgressFixture(t, now)

	_, err := f.analytics.AchievementSummary(context.Background(), f.userID, "Fortnightly")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}
