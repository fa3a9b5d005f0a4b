package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Image is the metadata record for one stored picture. The bytes live in
// the blob store under StoredObjectID; this record is only created after
// the blob store has confirmed the object exists. StoredObjectID may be
// empty transiently when an upload was rolled back.
type Image struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	AlbumID        bson.ObjectID `bson:"albumId" json:"albumId"`
	OwnerID        bson.ObjectID `bson:"userId" json:"userId"`
	FileName       string        `bson:"filename" json:"filename"`
	OriginalName   string        `bson:"originalName" json:"originalName"`
	StoredObjectID string        `bson:"publicId,omitempty" json:"publicId,omitempty"`
	URL            string        `bson:"url" json:"url"`
	ThumbnailURL   string        `bson:"thumbnailUrl" json:"thumbnailUrl"`
	Format         string        `bson:"format" json:"format"`
	Width          int           `bson:"width" json:"width"`
	Height         int           `bson:"height" json:"height"`
	ByteSize       int64         `bson:"size" json:"size"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
