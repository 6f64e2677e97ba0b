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
	foodCategoryCollectionName    = "food_categories"
	foodUnitCollectionName        = "food_units"
	foodItemCollectionName        = "food_items"
	foodSizeCollectionName        = "food_sizes"
	foodConsumptionCollectionName = "food_consumptions"
)

// mongoFoodRepository implements repository.FoodRepository
type mongoFoodRepository struct {
	categories   *mongo.Collection
	units        *mongo.Collection
	items        *mongo.Collection
	sizes        *mongo.Collection
	consumptions *mongo.Collection
}

// NewMongoFoodRepository creates a food catalog/consumption repository
// backed by MongoDB.
func NewMongoFoodRepository(db *mongo.Database) repository.FoodRepository {
	return &mongoFoodRepository{
		categories:   db.Collection(foodCategoryCollectionName),
		units:        db.Collection(foodUnitCollectionName),
		items:        db.Collection(foodItemCollectionName),
		sizes:        db.Collection(foodSizeCollectionName),
		consumptions: db.Collection(foodConsumptionCollectionName),
	}
}

// ListCategories retrieves all food categories.
func (r *mongoFoodRepository) ListCategories(ctx context.Context) ([]domain.FoodCategory, error) {
	var categories []domain.FoodCategory
	if err := findAll(ctx, r.categories, bson.M{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListUnits retrieves all measurement units.
func (r *mongoFoodRepository) ListUnits(ctx context.Context) ([]domain.FoodUnit, error) {
	var units []domain.FoodUnit
	if err := findAll(ctx, r.units, bson.M{}, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListItems retrieves catalog items, optionally filtered by category.
func (r *mongoFoodRepository) ListItems(ctx context.Context, categoryID *primitive.ObjectID) ([]domain.FoodItem, error) {
	filter := bson.M{}
	if categoryID != nil {
		filter["categoryId"] = *categoryID
	}

	var items []domain.FoodItem
	if err := findAll(ctx, r.items, filter, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByID retrieves a food item by its ID.
func (r *mongoFoodRepository) GetItemByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodItem, error) {
	var item domain.FoodItem
	err := r.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListSizes retrieves all portion sizes.
func (r *mongoFoodRepository) ListSizes(ctx context.Context) ([]domain.FoodSize, error) {
	var sizes []domain.FoodSize
	if err := findAll(ctx, r.sizes, bson.M{}, &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

// GetSizeByID retrieves a portion size by its ID.
func (r *mongoFoodRepository) GetSizeByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodSize, error) {
	var size domain.FoodSize
	err := r.sizes.FindOne(ctx, bson.M{"_id": id}).Decode(&size)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &size, nil
}

// CreateConsumption inserts a new consumption log entry.
func (r *mongoFoodRepository) CreateConsumption(ctx context.Context, c *domain.FoodConsumption) (primitive.ObjectID, error) {
	if c.UserID == primitive.NilObjectID || c.FoodItemID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and food item ID are required")
	}

	c.ID = primitive.NewObjectID()
	if c.LoggedAt.IsZero() {
		c.LoggedAt = time.Now().UTC()
	}

	result, err := r.consumptions.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// SumConsumedByDate aggregates kcal per day over [start, end]
// inclusive, optionally filtered by meal type.
func (r *mongoFoodRepository) SumConsumedByDate(ctx context.Context, userID primitive.ObjectID, start, end string, mealType *domain.MealType) ([]repository.DateCalories, error) {
	startDay, err := domain.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endDay, err := domain.ParseDate(end)
	if err != nil {
		return nil, err
	}

	match := bson.M{
		"userId": userID,
		"loggedAt": bson.M{
			"$gte": startDay,
			"$lt":  endDay.AddDate(0, 0, 1),
		},
	}
	if mealType != nil {
		match["mealType"] = *mealType
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$loggedAt"}},
			"totalCalories": bson.M{"$sum": "$caloriesConsumed"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.consumptions.Aggregate(ctx, pipeline)
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

// findAll runs a Find with the given filter and decodes every result.
func findAll(ctx context.Context, collection *mongo.Collection, filter bson.M, results interface{}) error {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, results); err != nil {
		return err
	}
	return cursor.Err()
}

// EnsureFoodIndexes creates necessary indexes for the food collections.
func EnsureFoodIndexes(ctx context.Context, db *mongo.Database) {
	createIndexes(ctx, db.Collection(foodCategoryCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	createIndexes(ctx, db.Collection(foodItemCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index()},
	})
	createIndexes(ctx, db.Collection(foodConsumptionCollectionName), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "loggedAt", Value: -1}}, Options: options.Index()},
	})
}
