package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin      Role = "admin"
	RoleRegistered Role = "registered"
)

// User represents a registered account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Billing references, optional until the user picks a plan / method.
	SubscriptionPlanID *primitive.ObjectID `bson:"subscriptionPlanId,omitempty" json:"subscriptionPlanId,omitempty"`
	PaymentMethodID    *primitive.ObjectID `bson:"paymentMethodId,omitempty" json:"paymentMethodId,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CustomerProfile holds the fitness profile attached to a User.
type CustomerProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"` // One profile per user
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Age             int                `bson:"age,omitempty" json:"age,omitempty"`
	GoalDescription string             `bson:"goalDescription,omitempty" json:"goalDescription,omitempty"`
	PointBalance    int                `bson:"pointBalance" json:"pointBalance"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
