package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Album groups images for one owner. Images reference the album by ID;
// they are never embedded, so deleting an album must cascade over the
// images collection first.
type Album struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID     bson.ObjectID `bson:"userId" json:"userId"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	IsPrivate   bool          `bson:"isPrivate" json:"isPrivate"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
