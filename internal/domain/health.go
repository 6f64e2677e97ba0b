package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckInSource says where a check-in came from.
type CheckInSource string

const (
	SourceManual CheckInSource = "manual"
	SourceDevice CheckInSource = "device"
)

// Device is a registered health-tracking device belonging to a user.
type Device struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Name       string             `bson:"name" json:"name"`
	Identifier string             `bson:"identifier" json:"identifier"` // Unique hardware identifier
	LastSeen   *time.Time         `bson:"lastSeen,omitempty" json:"lastSeen,omitempty"`
}

// DailyCheckIn records a user's vitals for one calendar date.
// At most one exists per (UserID, Date).
type DailyCheckIn struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	Date        string              `bson:"date" json:"date"` // YYYY-MM-DD
	Source      CheckInSource       `bson:"source" json:"source"`
	DeviceID    *primitive.ObjectID `bson:"deviceId,omitempty" json:"deviceId,omitempty"`
	HeartRate   *int                `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	SystolicBP  *int                `bson:"systolicBp,omitempty" json:"systolicBp,omitempty"`
	DiastolicBP *int                `bson:"diastolicBp,omitempty" json:"diastolicBp,omitempty"`
	Weight      *float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	SleepHours  *float64            `bson:"sleepHours,omitempty" json:"sleepHours,omitempty"`
	WaterIntake *float64            `bson:"waterIntake,omitempty" json:"waterIntake,omitempty"`
	Mood        *int                `bson:"mood,omitempty" json:"mood,omitempty"`
	Stress      *int                `bson:"stress,omitempty" json:"stress,omitempty"`
	Steps       *int                `bson:"steps,omitempty" json:"steps,omitempty"`
}
