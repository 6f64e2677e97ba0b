package repository

import (
	"context"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetSubscriptionPlan(ctx context.Context, userID, planID primitive.ObjectID) error
	SetPaymentMethod(ctx context.Context, userID, methodID primitive.ObjectID) error
}

// ProfileRepository manages customer profiles (one per user).
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.CustomerProfile, error)
	Upsert(ctx context.Context, profile *domain.CustomerProfile) (*domain.CustomerProfile, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, goalCategory domain.GoalCategory) ([]domain.Exercise, error)
	SetMediaObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// AnalyticsRepository manages recurring-goal records.
type AnalyticsRepository interface {
	Create(ctx context.Context, goal *domain.Analytics) (primitive.ObjectID, error)
	GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Analytics, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error)
	ListByUserAndCadence(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]domain.Analytics, error)
	// ListUnfinished returns every goal not yet completed, across all
	// users. Used by the status refresh job.
	ListUnfinished(ctx context.Context) ([]domain.Analytics, error)
	UpdateProgress(ctx context.Context, id primitive.ObjectID, percent float64, status domain.GoalStatus) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// DateCalories is one row of a kcal-per-day aggregation.
type DateCalories struct {
	Date          string  `bson:"_id" json:"date"`
	TotalCalories float64 `bson:"totalCalories" json:"total_calories"`
}

// OccurrenceRepository manages the per-date occurrence ledger.
type OccurrenceRepository interface {
	// Upsert atomically creates or replaces the occurrence for the
	// (AnalyticsID, Date) pair and returns the persisted record.
	Upsert(ctx context.Context, occ *domain.Occurrence) (*domain.Occurrence, error)
	CountByStatuses(ctx context.Context, analyticsID primitive.ObjectID, statuses ...domain.OccurrenceStatus) (int, error)
	// CountByStatusUpTo counts occurrences with the given status dated
	// on or before the given day.
	CountByStatusUpTo(ctx context.Context, analyticsID primitive.ObjectID, date string, status domain.OccurrenceStatus) (int, error)
	ExistsForDate(ctx context.Context, analyticsID primitive.ObjectID, date string, statuses ...domain.OccurrenceStatus) (bool, error)
	SumCaloriesByDate(ctx context.Context, userID primitive.ObjectID) ([]DateCalories, error)
	DeleteByAnalyticsID(ctx context.Context, analyticsID primitive.ObjectID) error
}

// FoodRepository covers the food catalog and consumption log.
type FoodRepository interface {
	ListCategories(ctx context.Context) ([]domain.FoodCategory, error)
	ListUnits(ctx context.Context) ([]domain.FoodUnit, error)
	ListItems(ctx context.Context, categoryID *primitive.ObjectID) ([]domain.FoodItem, error)
	GetItemByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodItem, error)
	ListSizes(ctx context.Context) ([]domain.FoodSize, error)
	GetSizeByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodSize, error)
	CreateConsumption(ctx context.Context, c *domain.FoodConsumption) (primitive.ObjectID, error)
	// SumConsumedByDate aggregates kcal per day over [start, end]
	// (inclusive, YYYY-MM-DD), optionally filtered by meal type.
	SumConsumedByDate(ctx context.Context, userID primitive.ObjectID, start, end string, mealType *domain.MealType) ([]DateCalories, error)
}

// HealthRepository covers devices and daily check-ins.
type HealthRepository interface {
	UpsertCheckIn(ctx context.Context, checkIn *domain.DailyCheckIn) (*domain.DailyCheckIn, error)
	ListCheckIns(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.DailyCheckIn, error)
	CreateDevice(ctx context.Context, device *domain.Device) (primitive.ObjectID, error)
	ListDevices(ctx context.Context, userID primitive.ObjectID) ([]domain.Device, error)
}

// BillingRepository covers subscription plans, payment methods and payments.
type BillingRepository interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetPlanByID(ctx context.Context, id primitive.ObjectID) (*domain.SubscriptionPlan, error)
	ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	GetPaymentMethodByID(ctx context.Context, id primitive.ObjectID) (*domain.PaymentMethod, error)
	CreatePayment(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
}
