package image

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/blobstore"
	"gallery/internal/domain"
)

// ImageRepository is the slice of the image collection this module needs.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) error
	FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Image, error)
	FindByAlbum(ctx context.Context, albumID bson.ObjectID, sort string, skip, limit int64) ([]domain.Image, error)
	CountByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) error
}

// AlbumReader verifies album existence and ownership.
type AlbumReader interface {
	FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Album, error)
}

// BlobStore is the remote object store holding the actual image bytes.
type BlobStore interface {
	Put(ctx context.Context, content []byte, pathPrefix, contentType string) (*blobstore.StoredObject, error)
	Delete(ctx context.Context, objectID string) error
	ThumbnailURL(objectID string) string
}
