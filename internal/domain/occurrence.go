package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire and storage format for occurrence dates.
const DateLayout = "2006-01-02"

// OccurrenceStatus for a single dated occurrence of a goal.
type OccurrenceStatus string

const (
	OccurrenceCompleted   OccurrenceStatus = "completed"
	OccurrenceUncompleted OccurrenceStatus = "uncompleted"
	OccurrenceSkipped     OccurrenceStatus = "skipped"
)

func (s OccurrenceStatus) Valid() bool {
	return s == OccurrenceCompleted || s == OccurrenceUncompleted || s == OccurrenceSkipped
}

// Done reports whether the occurrence counts toward goal progress.
func (s OccurrenceStatus) Done() bool {
	return s == OccurrenceCompleted || s == OccurrenceSkipped
}

// Occurrence is one dated record of whether a goal's exercise was
// completed, skipped, or left uncompleted on that date. At most one
// exists per (AnalyticsID, Date) pair.
type Occurrence struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AnalyticsID primitive.ObjectID `bson:"analyticsId" json:"analyticsId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Denormalized for per-user aggregations
	Date        string             `bson:"date" json:"date"`     // YYYY-MM-DD
	Status      OccurrenceStatus   `bson:"status" json:"status"`
	// CaloriesBurned is copied from the exercise catalog when the
	// occurrence is completed; nil otherwise.
	CaloriesBurned *float64 `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
}

// ParseDate validates a YYYY-MM-DD occurrence date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
