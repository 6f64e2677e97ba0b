package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cadence is the recurrence pattern of a goal.
type Cadence string

const (
	CadenceDaily   Cadence = "Daily"
	CadenceWeekly  Cadence = "Weekly"
	CadenceMonthly Cadence = "Monthly"
)

func (c Cadence) Valid() bool {
	return c == CadenceDaily || c == CadenceWeekly || c == CadenceMonthly
}

// GoalStatus tracks the lifecycle of an analytics goal.
type GoalStatus string

const (
	GoalInProgress  GoalStatus = "inprogress"
	GoalCompleted   GoalStatus = "completed"
	GoalUncompleted GoalStatus = "uncompleted"
)

// Analytics is a user's recurring exercise commitment: do the
// referenced exercise TargetCount times on the given cadence.
// EndDate is derived once at creation and never recomputed.
type Analytics struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID      primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Cadence         Cadence            `bson:"exerciseType" json:"exerciseType"`
	TargetCount     int                `bson:"occurrenceCount" json:"occurrenceCount"`
	Status          GoalStatus         `bson:"status" json:"status"`
	ProgressPercent float64            `bson:"progressPercent" json:"progressPercent"`
	CreatedAt       time.Time          `bson:"creationDate" json:"creationDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
}

// ComputeEndDate derives the goal's end date from its cadence and
// target count, anchored at the creation instant. Monthly uses a
// fixed 30-day month, not calendar months.
func (a *Analytics) ComputeEndDate(created time.Time) time.Time {
	switch a.Cadence {
	case CadenceDaily:
		return created.AddDate(0, 0, a.TargetCount)
	case CadenceWeekly:
		return created.AddDate(0, 0, 7*a.TargetCount)
	case CadenceMonthly:
		return created.AddDate(0, 0, 30*a.TargetCount)
	}
	return created
}

// DueOn reports whether the goal expects an occurrence on the given
// calendar day. Weekly goals are due on whole-week anniversaries of
// the creation day; Monthly goals on the same day-of-month, which
// means a goal created on the 29th-31st is never due in a month that
// lacks that day.
func (a *Analytics) DueOn(today time.Time) bool {
	elapsed := daysBetween(a.CreatedAt, today)
	if elapsed < 0 {
		return false
	}
	switch a.Cadence {
	case CadenceDaily:
		return true
	case CadenceWeekly:
		return elapsed%7 == 0
	case CadenceMonthly:
		return a.CreatedAt.Day() == today.Day()
	}
	return false
}

// ExpectedByDate returns how many occurrences should have happened by
// the given day: one per elapsed calendar day since creation, capped
// at the target. The count is deliberately not scaled by the cadence
// (7 for Weekly, 30 for Monthly), matching the reporting behavior the
// progress summary has always had.
func (a *Analytics) ExpectedByDate(today time.Time) int {
	elapsed := daysBetween(a.CreatedAt, today)
	if elapsed < 0 {
		return 0
	}
	expected := elapsed + 1
	if expected > a.TargetCount {
		expected = a.TargetCount
	}
	return expected
}

// Expired reports whether the given day falls after the goal's end date.
func (a *Analytics) Expired(today time.Time) bool {
	return midnightUTC(today).After(midnightUTC(a.EndDate))
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(midnightUTC(b).Sub(midnightUTC(a)).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
