package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"gallery/internal/domain"
)

type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection("images")}
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	res, err := r.coll.InsertOne(ctx, img)
	if err != nil {
		return err
	}
	img.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// FindByID is ownership-scoped, matching the album repository.
func (r *ImageRepository) FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Image, error) {
	var img domain.Image
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&img)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// FindByAlbum returns one page of an album's images.
func (r *ImageRepository) FindByAlbum(ctx context.Context, albumID bson.ObjectID, sort string, skip, limit int64) ([]domain.Image, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	if s := imageSort(sort); s != nil {
		opts = opts.SetSort(s)
	}

	cur, err := r.coll.Find(ctx, bson.M{"albumId": albumID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	images := []domain.Image{}
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// ListByAlbum enumerates every image of an album, unpaged. Used by the
// album cascade to collect the blob keys before metadata cleanup.
func (r *ImageRepository) ListByAlbum(ctx context.Context, albumID bson.ObjectID) ([]domain.Image, error) {
	cur, err := r.coll.Find(ctx, bson.M{"albumId": albumID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	images := []domain.Image{}
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) CountByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"albumId": albumID})
}

// LatestByAlbum returns the newest image of an album, used as its cover.
func (r *ImageRepository) LatestByAlbum(ctx context.Context, albumID bson.ObjectID) (*domain.Image, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var img domain.Image
	err := r.coll.FindOne(ctx, bson.M{"albumId": albumID}, opts).Decode(&img)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByAlbum bulk-deletes every image record of an album.
func (r *ImageRepository) DeleteByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"albumId": albumID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func imageSort(sort string) bson.D {
	switch sort {
	case "newest":
		return bson.D{{Key: "createdAt", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "largest":
		return bson.D{{Key: "size", Value: -1}}
	case "smallest":
		return bson.D{{Key: "size", Value: 1}}
	default: // "random" and unknown values keep natural order
		return nil
	}
}
