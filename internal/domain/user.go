package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account in the gallery. New accounts start unapproved and
// cannot log in until an operator flips IsApproved.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	IsApproved   bool          `bson:"isApproved" json:"isApproved"`
	LastLogin    *time.Time    `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
