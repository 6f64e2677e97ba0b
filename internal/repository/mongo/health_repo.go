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
	checkInCollectionName = "daily_checkins"
	deviceCollectionName  = "devices"
)

// mongoHealthRepository implements repository.HealthRepository
type mongoHealthRepository struct {
	checkIns *mongo.Collection
	devices  *mongo.Collection
}

// NewMongoHealthRepository creates a health repository backed by MongoDB.
func NewMongoHealthRepository(db *mongo.Database) repository.HealthRepository {
	return &mongoHealthRepository{
		checkIns: db.Collection(checkInCollectionName),
		devices:  db.Collection(deviceCollectionName),
	}
}

// UpsertCheckIn creates or replaces the check-in for (userId, date)
// and returns the stored document. A second check-in on the same day
// overwrites the first.
func (r *mongoHealthRepository) UpsertCheckIn(ctx context.Context, checkIn *domain.DailyCheckIn) (*domain.DailyCheckIn, error) {
	if checkIn.UserID == primitive.NilObjectID || checkIn.Date == "" {
		return nil, errors.New("user ID and date are required")
	}

	filter := bson.M{"userId": checkIn.UserID, "date": checkIn.Date}
	update := bson.M{
		"$set": bson.M{
			"source":      checkIn.Source,
			"deviceId":    checkIn.DeviceID,
			"heartRate":   checkIn.HeartRate,
			"systolicBp":  checkIn.SystolicBP,
			"diastolicBp": checkIn.DiastolicBP,
			"weight":      checkIn.Weight,
			"sleepHours":  checkIn.SleepHours,
			"waterIntake": checkIn.WaterIntake,
			"mood":        checkIn.Mood,
			"stress":      checkIn.Stress,
			"steps":       checkIn.Steps,
		},
		"$setOnInsert": bson.M{
			"userId": checkIn.UserID,
			"date":   checkIn.Date,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.DailyCheckIn
	if err := r.checkIns.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListCheckIns retrieves a user's check-ins within [start, end]
// inclusive, ascending by date. Empty bounds are open-ended.
func (r *mongoHealthRepository) ListCheckIns(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.DailyCheckIn, error) {
	filter := bson.M{"userId": userID}

	dateRange := bson.M{}
	if start != "" {
		dateRange["$gte"] = start
	}
	if end != "" {
		dateRange["$lte"] = end
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.checkIns.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkIns []domain.DailyCheckIn
	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return checkIns, nil
}

// CreateDevice registers a device for a user.
func (r *mongoHealthRepository) CreateDevice(ctx context.Context, device *domain.Device) (primitive.ObjectID, error) {
	if device.UserID == primitive.NilObjectID || device.Identifier == "" {
		return primitive.NilObjectID, errors.New("user ID and device identifier are required")
	}

	device.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	device.LastSeen = &now

	result, err := r.devices.InsertOne(ctx, device)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// ListDevices retrieves all devices registered by a user.
func (r *mongoHealthRepository) ListDevices(ctx context.Context, userID primitive.ObjectID) ([]domain.Device, error) {
	cursor, err := r.devices.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []domain.Device
	if err = cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// EnsureHealthIndexes creates necessary indexes for the health collections.
// The unique (userId, date) index backs the one-check-in-per-day invariant.
func EnsureHealthIndexes(ctx context.Context, db *mongo.Database) {
	createIndexes(ctx, db.Collection(checkInCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	createIndexes(ctx, db.Collection(deviceCollectionName), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	})
}
