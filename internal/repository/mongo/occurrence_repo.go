package mongo

import (
	"context"
	"errors"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const occurrenceCollectionName = "occurrences"

// mongoOccurrenceRepository implements repository.OccurrenceRepository
type mongoOccurrenceRepository struct {
	collection *mongo.Collection
}

// NewMongoOccurrenceRepository creates an occurrence ledger backed by MongoDB.
func NewMongoOccurrenceRepository(db *mongo.Database) repository.OccurrenceRepository {
	return &mongoOccurrenceRepository{
		collection: db.Collection(occurrenceCollectionName),
	}
}

// Upsert atomically creates or replaces the occurrence for the
// (analyticsId, date) pair. A single FindOneAndUpdate keyed by the
// unique index closes the lookup-then-write race between concurrent
// record calls, and makes retries idempotent.
func (r *mongoOccurrenceRepository) Upsert(ctx context.Context, occ *domain.Occurrence) (*domain.Occurrence, error) {
	if occ.AnalyticsID == primitive.NilObjectID || occ.Date == "" || occ.Status == "" {
		return nil, errors.New("analytics ID, date and status are required")
	}

	filter := bson.M{"analyticsId": occ.AnalyticsID, "date": occ.Date}

	set := bson.M{
		"status": occ.Status,
		"userId": occ.UserID,
	}
	// Calories are only stamped on completion; a later skip leaves the
	// previously recorded burn in place.
	if occ.CaloriesBurned != nil {
		set["caloriesBurned"] = *occ.CaloriesBurned
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"analyticsId": occ.AnalyticsID,
			"date":        occ.Date,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.Occurrence
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// CountByStatuses counts a goal's occurrences with any of the given statuses.
func (r *mongoOccurrenceRepository) CountByStatuses(ctx context.Context, analyticsID primitive.ObjectID, statuses ...domain.OccurrenceStatus) (int, error) {
	filter := bson.M{
		"analyticsId": analyticsID,
		"status":      bson.M{"$in": statuses},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CountByStatusUpTo counts occurrences with the given status dated on
// or before the given day. Lexicographic comparison works because
// dates are stored as YYYY-MM-DD.
func (r *mongoOccurrenceRepository) CountByStatusUpTo(ctx context.Context, analyticsID primitive.ObjectID, date string, status domain.OccurrenceStatus) (int, error) {
	filter := bson.M{
		"analyticsId": analyticsID,
		"status":      status,
		"date":        bson.M{"$lte": date},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ExistsForDate reports whether an occurrence with any of the given
// statuses exists for the goal on the given day.
func (r *mongoOccurrenceRepository) ExistsForDate(ctx context.Context, analyticsID primitive.ObjectID, date string, statuses ...domain.OccurrenceStatus) (bool, error) {
	filter := bson.M{
		"analyticsId": analyticsID,
		"date":        date,
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumCaloriesByDate aggregates the user's completed-occurrence
// calories per day, ascending by date.
func (r *mongoOccurrenceRepository) SumCaloriesByDate(ctx context.Context, userID primitive.ObjectID) ([]repository.DateCalories, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId": userID,
			"status": domain.OccurrenceCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$date",
			"totalCalories": bson.M{"$sum": "$caloriesBurned"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []repository.DateCalories
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByAnalyticsID removes every occurrence of a goal. Called when
// the goal itself is deleted so the ledger never outlives its goal.
func (r *mongoOccurrenceRepository) DeleteByAnalyticsID(ctx context.Context, analyticsID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"analyticsId": analyticsID})
	return err
}

// EnsureOccurrenceIndexes creates necessary indexes for the
// occurrences collection. The unique (analyticsId, date) index backs
// the one-row-per-date invariant.
func EnsureOccurrenceIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "analyticsId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	})
}
