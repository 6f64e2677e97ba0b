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

func seedFoodItem(t *testing.T, repo *fakeFoodRepo, name string, kcal float64) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	repo.items[id] = &domain.FoodItem{
		ID:                 id,
		CategoryID:         primitive.NewObjectID(),
		Name:               name,
		CaloriesPerDefault: kcal,
	}
	return id
}

func seedFoodSize(t *testing.T, repo *fakeFoodRepo, name string, multiplier float64) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	repo.sizes[id] = &domain.FoodSize{ID: id, Name: name, Multiplier: multiplier}
	return id
}

func TestLogConsumption_ComputesCalories(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	foodRepo := newFakeFoodRepo()
	svc := service.NewFoodService(foodRepo, fixedClock(now))

	userID := primitive.NewObjectID()
	itemID := seedFoodItem(t, foodRepo, "Banana", 80)
	sizeID := seedFoodSize(t, foodRepo, "Small", 0.5)

	consumption, err := svc.LogConsumption(context.Background(), userID, domain.MealLunch, itemID, &sizeID, 2)
	require.NoError(t, err)

	// 80 kcal * qty 2 * multiplier 0.5
	assert.Equal(t, 80.0, consumption.CaloriesConsumed)
	assert.Equal(t, domain.MealLunch, consumption.MealType)
	assert.Equal(t, now, consumption.LoggedAt)
	assert.False(t, consumption.ID.IsZero())
}

func TestLogConsumption_DefaultsMultiplierWithoutSize(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	foodRepo := newFakeFoodRepo()
	svc := service.NewFoodService(foodRepo, fixedClock(now))

	itemID := seedFoodItem(t, foodRepo, "Oatmeal", 150)

	consumption, err := svc.LogConsumption(context.Background(), primitive.NewObjectID(), domain.MealBreakfast, itemID, nil, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 225.0, consumption.CaloriesConsumed)
}

func TestLogConsumption_Errors(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	foodRepo := newFakeFoodRepo()
	svc := service.NewFoodService(foodRepo, fixedClock(now))

	userID := primitive.NewObjectID()
	itemID := seedFoodItem(t, foodRepo, "Banana", 80)

	_, err := svc.LogConsumption(context.Background(), userID, domain.MealDinner, primitive.NewObjectID(), nil, 1)
	assert.ErrorIs(t, err, service.ErrFoodItemNotFound)

	missingSize := primitive.NewObjectID()
	_, err = svc.LogConsumption(context.Background(), userID, domain.MealDinner, itemID, &missingSize, 1)
	assert.ErrorIs(t, err, service.ErrFoodSizeNotFound)

	_, err = svc.LogConsumption(context.Background(), userID, "brunch", itemID, nil, 1)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.LogConsumption(context.Background(), userID, domain.MealDinner, itemID, nil, 0)
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestConsumptionSummary_GroupsByDay(t *testing.T) {
	foodRepo := newFakeFoodRepo()
	itemID := seedFoodItem(t, foodRepo, "Banana", 100)
	userID := primitive.NewObjectID()

	day1 := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.January, 2, 19, 0, 0, 0, time.UTC)

	morning := service.NewFoodService(foodRepo, fixedClock(day1))
	_, err := morning.LogConsumption(context.Background(), userID, domain.MealBreakfast, itemID, nil, 1)
	require.NoError(t, err)
	_, err = morning.LogConsumption(context.Background(), userID, domain.MealLunch, itemID, nil, 2)
	require.NoError(t, err)

	evening := service.NewFoodService(foodRepo, fixedClock(day2))
	_, err = evening.LogConsumption(context.Background(), userID, domain.MealDinner, itemID, nil, 1)
	require.NoError(t, err)

	rows, err := evening.ConsumptionSummary(context.Background(), userID, "2024-01-01", "2024-01-02", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.Equal(t, 300.0, rows[0].TotalCalories)
	assert.Equal(t, "2024-01-02", rows[1].Date)
	assert.Equal(t, 100.0, rows[1].TotalCalories)
}

func TestConsumptionSummary_MealTypeFilterAndDefaults(t *testing.T) {
	foodRepo := newFakeFoodRepo()
	itemID := seedFoodItem(t, foodRepo, "Banana", 100)
	userID := primitive.NewObjectID()

	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	svc := service.NewFoodService(foodRepo, fixedClock(now))

	_, err := svc.LogConsumption(context.Background(), userID, domain.MealBreakfast, itemID, nil, 1)
	require.NoError(t, err)
	_, err = svc.LogConsumption(context.Background(), userID, domain.MealDinner, itemID, nil, 3)
	require.NoError(t, err)

	dinner := domain.MealDinner
	rows, err := svc.ConsumptionSummary(context.Background(), userID, "", "", &dinner)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 300.0, rows[0].TotalCalories)

	_, err = svc.ConsumptionSummary(context.Background(), userID, "bad-date", "", nil)
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}
