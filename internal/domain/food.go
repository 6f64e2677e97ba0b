package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType for food consumption entries.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

func (m MealType) Valid() bool {
	return m == MealBreakfast || m == MealLunch || m == MealDinner
}

// FoodCategory groups food items, e.g. "Fruit", "Dairy".
type FoodCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // Unique
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// UnitType for food measurement units.
type UnitType string

const (
	UnitMass   UnitType = "mass"
	UnitVolume UnitType = "volume"
	UnitCount  UnitType = "count"
)

// FoodUnit is a measurement unit for a default serving, e.g. gram/"g".
type FoodUnit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"` // Unique
	Abbreviation string             `bson:"abbreviation" json:"abbreviation"`
	UnitType     UnitType           `bson:"unitType" json:"unitType"`
}

// FoodItem is a catalog entry with calories for one default serving.
type FoodItem struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID         primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Name               string             `bson:"name" json:"name"` // Unique
	DefaultServingSize float64            `bson:"defaultServingSize" json:"defaultServingSize"`
	DefaultServingUnit primitive.ObjectID `bson:"defaultServingUnitId" json:"defaultServingUnitId"`
	CaloriesPerDefault float64            `bson:"caloriesPerDefault" json:"caloriesPerDefault"` // kcal per default serving
}

// FoodSize is a portion-size category with a multiplier relative to
// the default serving, e.g. Small=0.5, Medium=0.75, Large=1.0.
type FoodSize struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"` // Unique
	Multiplier float64            `bson:"multiplier" json:"multiplier"`
}

// FoodConsumption is one logged meal entry. CaloriesConsumed is
// computed at creation from the item's base kcal, quantity and size
// multiplier, rounded to two decimals.
type FoodConsumption struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	MealType         MealType            `bson:"mealType" json:"mealType"`
	CategoryID       primitive.ObjectID  `bson:"categoryId" json:"categoryId"`
	FoodItemID       primitive.ObjectID  `bson:"foodItemId" json:"foodItemId"`
	SizeID           *primitive.ObjectID `bson:"sizeId,omitempty" json:"sizeId,omitempty"`
	Quantity         float64             `bson:"quantity" json:"quantity"`
	CaloriesConsumed float64             `bson:"caloriesConsumed" json:"caloriesConsumed"`
	LoggedAt         time.Time           `bson:"loggedAt" json:"loggedAt"`
}
