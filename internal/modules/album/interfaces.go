package album

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/domain"
	"gallery/internal/repository"
)

type AlbumRepository interface {
	Create(ctx context.Context, a *domain.Album) error
	FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Album, error)
	FindPage(ctx context.Context, ownerID bson.ObjectID, page repository.AlbumPage) ([]domain.Album, error)
	CountByOwner(ctx context.Context, ownerID bson.ObjectID, search string) (int64, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

// ImageRepository is the slice of the image collection the album module
// needs: counts and covers for listings, enumeration and bulk delete for
// the cascade.
type ImageRepository interface {
	ListByAlbum(ctx context.Context, albumID bson.ObjectID) ([]domain.Image, error)
	CountByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error)
	LatestByAlbum(ctx context.Context, albumID bson.ObjectID) (*domain.Image, error)
	DeleteByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error)
}

// BlobDeleter removes stored objects by key. The cascade only ever needs
// deletion.
type BlobDeleter interface {
	Delete(ctx context.Context, objectID string) error
}
