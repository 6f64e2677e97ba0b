package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	planCollectionName          = "subscription_plans"
	paymentMethodCollectionName = "payment_methods"
	paymentCollectionName       = "payments"
)

// mongoBillingRepository implements repository.BillingRepository
type mongoBillingRepository struct {
	plans    *mongo.Collection
	methods  *mongo.Collection
	payments *mongo.Collection
}

// NewMongoBillingRepository creates a billing repository backed by MongoDB.
func NewMongoBillingRepository(db *mongo.Database) repository.BillingRepository {
	return &mongoBillingRepository{
		plans:    db.Collection(planCollectionName),
		methods:  db.Collection(paymentMethodCollectionName),
		payments: db.Collection(paymentCollectionName),
	}
}

// ListPlans retrieves all subscription plans.
func (r *mongoBillingRepository) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	var plans []domain.SubscriptionPlan
	if err := findAll(ctx, r.plans, bson.M{}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlanByID retrieves a subscription plan by its ID.
func (r *mongoBillingRepository) GetPlanByID(ctx context.Context, id primitive.ObjectID) (*domain.SubscriptionPlan, error) {
	var plan domain.SubscriptionPlan
	err := r.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ListActivePaymentMethods retrieves payment methods available for use.
func (r *mongoBillingRepository) ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := findAll(ctx, r.methods, bson.M{"isActive": true}, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// GetPaymentMethodByID retrieves a payment method by its ID.
func (r *mongoBillingRepository) GetPaymentMethodByID(ctx context.Context, id primitive.ObjectID) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod
	err := r.methods.FindOne(ctx, bson.M{"_id": id}).Decode(&method)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// CreatePayment records a new payment attempt.
func (r *mongoBillingRepository) CreatePayment(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.UserID == primitive.NilObjectID || payment.PaymentMethodID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and payment method ID are required")
	}

	payment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	result, err := r.payments.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// EnsureBillingIndexes creates necessary indexes for the billing collections.
func EnsureBillingIndexes(ctx context.Context, db *mongo.Database) {
	createIndexes(ctx, db.Collection(planCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	createIndexes(ctx, db.Collection(paymentCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index()},
	})
}
