package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"gallery/internal/domain"
)

type AlbumRepository struct {
	coll *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) *AlbumRepository {
	return &AlbumRepository{coll: db.Collection("albums")}
}

// AlbumPage selects one page of an owner's albums.
type AlbumPage struct {
	Search string
	Sort   string
	Skip   int64
	Limit  int64
}

func (r *AlbumRepository) Create(ctx context.Context, a *domain.Album) error {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// FindByID is ownership-scoped: an album belonging to another user is
// indistinguishable from a missing one.
func (r *AlbumRepository) FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Album, error) {
	var a domain.Album
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) FindPage(ctx context.Context, ownerID bson.ObjectID, page AlbumPage) ([]domain.Album, error) {
	opts := options.Find().SetSort(albumSort(page.Sort)).SetSkip(page.Skip).SetLimit(page.Limit)

	cur, err := r.coll.Find(ctx, albumFilter(ownerID, page.Search), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	albums := []domain.Album{}
	if err := cur.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *AlbumRepository) CountByOwner(ctx context.Context, ownerID bson.ObjectID, search string) (int64, error) {
	return r.coll.CountDocuments(ctx, albumFilter(ownerID, search))
}

func (r *AlbumRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *AlbumRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func albumFilter(ownerID bson.ObjectID, search string) bson.M {
	filter := bson.M{"userId": ownerID}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	return filter
}

func albumSort(sort string) bson.D {
	switch sort {
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	default: // newest; "images" is re-sorted by count at the service layer
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}
