package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAnalyticsService struct {
	createGoalFn func(ctx context.Context, userID, exerciseID primitive.ObjectID, cadence domain.Cadence, targetCount int) (*domain.Analytics, error)
	dueTodayFn   func(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error)
}

func (s *stubAnalyticsService) CreateGoal(ctx context.Context, userID, exerciseID primitive.ObjectID, cadence domain.Cadence, targetCount int) (*domain.Analytics, error) {
	return s.createGoalFn(ctx, userID, exerciseID, cadence, targetCount)
}

func (s *stubAnalyticsService) DeleteGoal(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}

func (s *stubAnalyticsService) DueToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error) {
	return s.dueTodayFn(ctx, userID)
}

func (s *stubAnalyticsService) AchievementSummary(context.Context, primitive.ObjectID, domain.Cadence) ([]service.StatusCount, error) {
	return nil, nil
}

func newTestRouter(userID primitive.ObjectID, handler *AnalyticsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Set(ContextUserRoleKey, domain.RoleRegistered)
	})
	router.POST("/exercise-analytics", handler.CreateGoal)
	router.GET("/exercise-analytics/today", handler.DueToday)
	return router
}

func TestAnalyticsHandler_CreateGoal(t *testing.T) {
	userID := primitive.NewObjectID()
	exerciseID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	stub := &stubAnalyticsService{
		createGoalFn: func(_ context.Context, gotUser, gotExercise primitive.ObjectID, cadence domain.Cadence, target int) (*domain.Analytics, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, exerciseID, gotExercise)
			assert.Equal(t, domain.CadenceWeekly, cadence)
			assert.Equal(t, 4, target)
			created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
			return &domain.Analytics{
				ID:          goalID,
				UserID:      gotUser,
				ExerciseID:  gotExercise,
				Cadence:     cadence,
				TargetCount: target,
				Status:      domain.GoalInProgress,
				CreatedAt:   created,
				EndDate:     created.AddDate(0, 0, 28),
			}, nil
		},
	}

	router := newTestRouter(userID, NewAnalyticsHandler(stub))

	body := `{"exerciseId":"` + exerciseID.Hex() + `","exerciseType":"Weekly","occurrenceCount":4}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exercise-analytics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp GoalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, goalID.Hex(), resp.ID)
	assert.Equal(t, domain.CadenceWeekly, resp.ExerciseType)
	assert.Equal(t, 4, resp.OccurrenceCount)
}

func TestAnalyticsHandler_CreateGoal_BadCadence(t *testing.T) {
	router := newTestRouter(primitive.NewObjectID(), NewAnalyticsHandler(&stubAnalyticsService{}))

	body := `{"exerciseId":"` + primitive.NewObjectID().Hex() + `","exerciseType":"Hourly","occurrenceCount":4}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exercise-analytics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_DueToday(t *testing.T) {
	userID := primitive.NewObjectID()
	stub := &stubAnalyticsService{
		dueTodayFn: func(_ context.Context, gotUser primitive.ObjectID) ([]domain.Analytics, error) {
			assert.Equal(t, userID, gotUser)
			return []domain.Analytics{
				{ID: primitive.NewObjectID(), Cadence: domain.CadenceDaily, TargetCount: 3},
			}, nil
		},
	}

	router := newTestRouter(userID, NewAnalyticsHandler(stub))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/exercise-analytics/today", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []GoalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, domain.CadenceDaily, resp[0].ExerciseType)
}
