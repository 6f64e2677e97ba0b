package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalCategory classifies which fitness goal an exercise serves.
type GoalCategory string

const (
	GoalWeightLoss  GoalCategory = "Weight Loss"
	GoalWeightGain  GoalCategory = "Weight Gain"
	GoalBuildMuscle GoalCategory = "Build Muscle"
	GoalNormal      GoalCategory = "Normal"
)

// Intensity levels for an exercise.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
)

// MeasurementType says how an exercise is quantified.
type MeasurementType string

const (
	MeasureDuration MeasurementType = "duration"
	MeasureRepsSets MeasurementType = "reps_sets"
)

// Exercise represents a single entry in the exercise catalog.
// CaloriesBurned is the fixed per-occurrence burn copied onto
// completed occurrences.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	GoalCategory    GoalCategory       `bson:"goalCategory" json:"goalCategory"`
	AgeMin          int                `bson:"ageMin" json:"ageMin"`
	AgeMax          int                `bson:"ageMax" json:"ageMax"`
	MeasurementType MeasurementType    `bson:"measurementType" json:"measurementType"`
	DurationMinutes int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Reps            int                `bson:"reps,omitempty" json:"reps,omitempty"`
	Sets            int                `bson:"sets,omitempty" json:"sets,omitempty"`
	CaloriesBurned  float64            `bson:"caloriesBurned" json:"caloriesBurned"`
	Intensity       Intensity          `bson:"intensity" json:"intensity"`
	MediaObjectKey  string             `bson:"mediaObjectKey,omitempty" json:"-"` // Demo image/video in S3, internal use
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
