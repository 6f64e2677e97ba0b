package service

import (
	"context"
	"errors"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrFoodItemNotFound = errors.New("food item not found")
	ErrFoodSizeNotFound = errors.New("food size not found")
)

// Default window for the consumption summary when no range is given.
const defaultConsumptionWindowDays = 30

// FoodService covers the food catalog, the consumption log and the
// kcal-per-day summary.
type FoodService interface {
	ListCategories(ctx context.Context) ([]domain.FoodCategory, error)
	ListUnits(ctx context.Context) ([]domain.FoodUnit, error)
	ListItems(ctx context.Context, categoryID *primitive.ObjectID) ([]domain.FoodItem, error)
	ListSizes(ctx context.Context) ([]domain.FoodSize, error)
	LogConsumption(ctx context.Context, userID primitive.ObjectID, mealType domain.MealType, itemID primitive.ObjectID, sizeID *primitive.ObjectID, quantity float64) (*domain.FoodConsumption, error)
	ConsumptionSummary(ctx context.Context, userID primitive.ObjectID, start, end string, mealType *domain.MealType) ([]repository.DateCalories, error)
}

// foodService implements the FoodService interface.
type foodService struct {
	foodRepo repository.FoodRepository
	now      func() time.Time
}

// NewFoodService creates a new instance of foodService.
func NewFoodService(foodRepo repository.FoodRepository, now func() time.Time) FoodService {
	if now == nil {
		now = time.Now
	}
	return &foodService{foodRepo: foodRepo, now: now}
}

func (s *foodService) ListCategories(ctx context.Context) ([]domain.FoodCategory, error) {
	return s.foodRepo.ListCategories(ctx)
}

func (s *foodService) ListUnits(ctx context.Context) ([]domain.FoodUnit, error) {
	return s.foodRepo.ListUnits(ctx)
}

func (s *foodService) ListItems(ctx context.Context, categoryID *primitive.ObjectID) ([]domain.FoodItem, error) {
	return s.foodRepo.ListItems(ctx, categoryID)
}

func (s *foodService) ListSizes(ctx context.Context) ([]domain.FoodSize, error) {
	return s.foodRepo.ListSizes(ctx)
}

// LogConsumption records a meal entry. Calories are computed here,
// never accepted from the client:
//
//	calories = round(base_kcal * quantity * size_multiplier, 2)
//
// with multiplier 1 when no size is given.
func (s *foodService) LogConsumption(ctx context.Context, userID primitive.ObjectID, mealType domain.MealType, itemID primitive.ObjectID, sizeID *primitive.ObjectID, quantity float64) (*domain.FoodConsumption, error) {
	if userID.IsZero() || itemID.IsZero() || quantity <= 0 || !mealType.Valid() {
		return nil, ErrValidationFailed
	}

	item, err := s.foodRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodItemNotFound
		}
		return nil, err
	}

	multiplier := 1.0
	if sizeID != nil {
		size, err := s.foodRepo.GetSizeByID(ctx, *sizeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrFoodSizeNotFound
			}
			return nil, err
		}
		multiplier = size.Multiplier
	}

	consumption := &domain.FoodConsumption{
		UserID:           userID,
		MealType:         mealType,
		CategoryID:       item.CategoryID,
		FoodItemID:       itemID,
		SizeID:           sizeID,
		Quantity:         quantity,
		CaloriesConsumed: round2(item.CaloriesPerDefault * quantity * multiplier),
		LoggedAt:         s.now().UTC(),
	}

	consumptionID, err := s.foodRepo.CreateConsumption(ctx, consumption)
	if err != nil {
		return nil, err
	}
	consumption.ID = consumptionID
	return consumption, nil
}

// ConsumptionSummary aggregates consumed kcal per day. Missing range
// bounds default to the last 30 days, matching the dashboard view.
func (s *foodService) ConsumptionSummary(ctx context.Context, userID primitive.ObjectID, start, end string, mealType *domain.MealType) ([]repository.DateCalories, error) {
	today := s.now().UTC()
	if end == "" {
		end = today.Format(domain.DateLayout)
	}
	if start == "" {
		start = today.AddDate(0, 0, -defaultConsumptionWindowDays).Format(domain.DateLayout)
	}

	if _, err := domain.ParseDate(start); err != nil {
		return nil, ErrValidationFailed
	}
	if _, err := domain.ParseDate(end); err != nil {
		return nil, ErrValidationFailed
	}

	rows, err := s.foodRepo.SumConsumedByDate(ctx, userID, start, end, mealType)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.DateCalories{}
	}
	return rows, nil
}
