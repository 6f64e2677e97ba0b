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

const analyticsCollectionName = "analytics"

// mongoAnalyticsRepository implements repository.AnalyticsRepository
type mongoAnalyticsRepository struct {
	collection *mongo.Collection
}

// NewMongoAnalyticsRepository creates a goal repository backed by MongoDB.
func NewMongoAnalyticsRepository(db *mongo.Database) repository.AnalyticsRepository {
	return &mongoAnalyticsRepository{
		collection: db.Collection(analyticsCollectionName),
	}
}

// Create inserts a new goal. CreatedAt and EndDate are expected to be
// set by the service; the repository never recomputes them.
func (r *mongoAnalyticsRepository) Create(ctx context.Context, goal *domain.Analytics) (primitive.ObjectID, error) {
	if goal.UserID == primitive.NilObjectID || goal.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and exercise ID are required")
	}

	goal.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByIDAndUser retrieves a goal only if it belongs to the given user.
// Ownership failures surface as ErrNotFound, same as a missing record.
func (r *mongoAnalyticsRepository) GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Analytics, error) {
	var goal domain.Analytics
	filter := bson.M{"_id": id, "userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ListByUser retrieves all goals belonging to a user.
func (r *mongoAnalyticsRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Analytics, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListByUserAndCadence retrieves a user's goals with the given cadence.
func (r *mongoAnalyticsRepository) ListByUserAndCadence(ctx context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]domain.Analytics, error) {
	return r.list(ctx, bson.M{"userId": userID, "exerciseType": cadence})
}

// ListUnfinished retrieves every goal not yet marked completed, across users.
func (r *mongoAnalyticsRepository) ListUnfinished(ctx context.Context) ([]domain.Analytics, error) {
	return r.list(ctx, bson.M{"status": bson.M{"$ne": domain.GoalCompleted}})
}

func (r *mongoAnalyticsRepository) list(ctx context.Context, filter bson.M) ([]domain.Analytics, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "creationDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []domain.Analytics
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// UpdateProgress persists the recomputed progress percent and status.
// EndDate and TargetCount are deliberately untouched.
func (r *mongoAnalyticsRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, percent float64, status domain.GoalStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"progressPercent": percent,
			"status":          status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a goal, ensuring it belongs to the given user.
// Occurrence cleanup is the caller's responsibility.
func (r *mongoAnalyticsRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAnalyticsIndexes creates necessary indexes for the analytics collection.
func EnsureAnalyticsIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseType", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	})
}
