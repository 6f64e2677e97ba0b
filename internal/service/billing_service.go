package service

import (
	"context"
	"errors"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound          = errors.New("subscription plan not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// BillingService covers subscription plans, payment methods and
// payment recording. No payment provider is called; payments are
// recorded as pending with an external reference.
type BillingService interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	ChoosePlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.SubscriptionPlan, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	RecordPayment(ctx context.Context, userID, methodID primitive.ObjectID, amount float64, currency string) (*domain.Payment, error)
}

// billingService implements the BillingService interface.
type billingService struct {
	billingRepo repository.BillingRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewBillingService creates a new instance of billingService.
func NewBillingService(billingRepo repository.BillingRepository, userRepo repository.UserRepository, now func() time.Time) BillingService {
	if now == nil {
		now = time.Now
	}
	return &billingService{billingRepo: billingRepo, userRepo: userRepo, now: now}
}

func (s *billingService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	plans, err := s.billingRepo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.SubscriptionPlan{}
	}
	return plans, nil
}

// ChoosePlan subscribes the user to the given plan.
func (s *billingService) ChoosePlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.SubscriptionPlan, error) {
	if userID.IsZero() || planID.IsZero() {
		return nil, ErrValidationFailed
	}
	plan, err := s.billingRepo.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if err := s.userRepo.SetSubscriptionPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *billingService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.billingRepo.ListActivePaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}
	return methods, nil
}

// RecordPayment stores a pending payment with a fresh reference and
// remembers the chosen method on the user.
func (s *billingService) RecordPayment(ctx context.Context, userID, methodID primitive.ObjectID, amount float64, currency string) (*domain.Payment, error) {
	if userID.IsZero() || methodID.IsZero() || amount <= 0 || currency == "" {
		return nil, ErrValidationFailed
	}
	method, err := s.billingRepo.GetPaymentMethodByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	if !method.IsActive {
		return nil, ErrPaymentMethodNotFound
	}

	nowUTC := s.now().UTC()
	payment := &domain.Payment{
		UserID:          userID,
		PaymentMethodID: methodID,
		Reference:       uuid.NewString(),
		Amount:          amount,
		Currency:        currency,
		Status:          domain.PaymentPending,
		CreatedAt:       nowUTC,
		UpdatedAt:       nowUTC,
	}
	paymentID, err := s.billingRepo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID

	if err := s.userRepo.SetPaymentMethod(ctx, userID, methodID); err != nil {
		return nil, err
	}
	return payment, nil
}
