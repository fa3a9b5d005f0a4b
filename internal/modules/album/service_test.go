package album

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gallery/internal/domain"
	"gallery/internal/repository"
)

// Mock repositories

type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) Create(ctx context.Context, a *domain.Album) error {
	args := m.Called(ctx, a)
	if a != nil {
		a.ID = bson.NewObjectID() // simulate insert
	}
	return args.Error(0)
}

func (m *MockAlbumRepository) FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*domain.Album, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *MockAlbumRepository) FindPage(ctx context.Context, ownerID bson.ObjectID, page repository.AlbumPage) ([]domain.Album, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Album), args.Error(1)
}

func (m *MockAlbumRepository) CountByOwner(ctx context.Context, ownerID bson.ObjectID, search string) (int64, error) {
	args := m.Called(ctx, ownerID, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlbumRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) error {
	args := m.Called(ctx, id, set)
	return args.Error(0)
}

func (m *MockAlbumRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) ListByAlbum(ctx context.Context, albumID bson.ObjectID) ([]domain.Image, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *MockImageRepository) CountByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) LatestByAlbum(ctx context.Context, albumID bson.ObjectID) (*domain.Image, error) {
	args := m.Called(ctx, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteByAlbum(ctx context.Context, albumID bson.ObjectID) (int64, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlobDeleter struct {
	mock.Mock
}

func (m *MockBlobDeleter) Delete(ctx context.Context, objectID string) error {
	args := m.Called(ctx, objectID)
	return args.Error(0)
}

func TestService_Create_TrimsName(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albums.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(albums, images, blobs)

	a, err := service.Create(context.Background(), ownerID, CreateAlbumRequest{Name: "  Trip 2026  "})
	require.NoError(t, err)
	assert.Equal(t, "Trip 2026", a.Name)
	assert.Equal(t, ownerID, a.OwnerID)
	assert.False(t, a.ID.IsZero())
}

func TestService_Create_EmptyName(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	service := NewService(albums, images, blobs)

	_, err := service.Create(context.Background(), bson.NewObjectID(), CreateAlbumRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	albums.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_List_CountsAndCovers(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	small := domain.Album{ID: bson.NewObjectID(), OwnerID: ownerID, Name: "small"}
	big := domain.Album{ID: bson.NewObjectID(), OwnerID: ownerID, Name: "big"}

	albums.On("FindPage", mock.Anything, ownerID, mock.Anything).
		Return([]domain.Album{small, big}, nil)
	albums.On("CountByOwner", mock.Anything, ownerID, "").Return(int64(2), nil)

	images.On("CountByAlbum", mock.Anything, small.ID).Return(int64(1), nil)
	images.On("CountByAlbum", mock.Anything, big.ID).Return(int64(5), nil)
	images.On("LatestByAlbum", mock.Anything, small.ID).Return(nil, mongo.ErrNoDocuments)
	images.On("LatestByAlbum", mock.Anything, big.ID).
		Return(&domain.Image{ThumbnailURL: "https://thumbs.example/cover.jpg"}, nil)

	service := NewService(albums, images, blobs)

	views, pagination, err := service.List(context.Background(), ownerID, ListParams{Sort: "images"})
	require.NoError(t, err)
	require.Len(t, views, 2)

	// "images" sort reorders by count, most populated first.
	assert.Equal(t, "big", views[0].Name)
	assert.Equal(t, int64(5), views[0].ImageCount)
	assert.Equal(t, "https://thumbs.example/cover.jpg", views[0].CoverImage)
	assert.Empty(t, views[1].CoverImage)
	assert.Equal(t, int64(2), pagination.Total)
}

func TestService_Get_NotFound(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()
	albums.On("FindByID", mock.Anything, albumID, ownerID).Return(nil, mongo.ErrNoDocuments)

	service := NewService(albums, images, blobs)

	_, err := service.Get(context.Background(), ownerID, albumID)
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestService_Update_NotFound(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()
	albums.On("FindByID", mock.Anything, albumID, ownerID).Return(nil, mongo.ErrNoDocuments)

	service := NewService(albums, images, blobs)

	_, err := service.Update(context.Background(), ownerID, albumID, UpdateAlbumRequest{Name: "new"})
	assert.ErrorIs(t, err, ErrAlbumNotFound)
	albums.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_CascadeSurvivesBlobFailure(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()

	stored := []domain.Image{
		{ID: bson.NewObjectID(), AlbumID: albumID, StoredObjectID: "gallery/o/a/1.jpg"},
		{ID: bson.NewObjectID(), AlbumID: albumID, StoredObjectID: "gallery/o/a/2.jpg"},
		{ID: bson.NewObjectID(), AlbumID: albumID, StoredObjectID: "gallery/o/a/3.jpg"},
	}

	albums.On("FindByID", mock.Anything, albumID, ownerID).
		Return(&domain.Album{ID: albumID, OwnerID: ownerID}, nil)
	images.On("ListByAlbum", mock.Anything, albumID).Return(stored, nil)

	// Blob #2 fails; the other deletions and the metadata cleanup proceed.
	blobs.On("Delete", mock.Anything, "gallery/o/a/1.jpg").Return(nil)
	blobs.On("Delete", mock.Anything, "gallery/o/a/2.jpg").Return(errors.New("object locked"))
	blobs.On("Delete", mock.Anything, "gallery/o/a/3.jpg").Return(nil)

	images.On("DeleteByAlbum", mock.Anything, albumID).Return(int64(3), nil)
	albums.On("Delete", mock.Anything, albumID).Return(nil)

	service := NewService(albums, images, blobs)

	err := service.Delete(context.Background(), ownerID, albumID)
	require.NoError(t, err)

	// Exactly one delete attempt per image, no retries, no early abort.
	blobs.AssertNumberOfCalls(t, "Delete", 3)
	images.AssertCalled(t, "DeleteByAlbum", mock.Anything, albumID)
	albums.AssertCalled(t, "Delete", mock.Anything, albumID)
}

func TestService_Delete_AlbumNotFound(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()
	albums.On("FindByID", mock.Anything, albumID, ownerID).Return(nil, mongo.ErrNoDocuments)

	service := NewService(albums, images, blobs)

	err := service.Delete(context.Background(), ownerID, albumID)
	assert.ErrorIs(t, err, ErrAlbumNotFound)

	images.AssertNotCalled(t, "ListByAlbum", mock.Anything, mock.Anything)
	albums.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete_AlbumRecordGoesLast(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()

	albums.On("FindByID", mock.Anything, albumID, ownerID).
		Return(&domain.Album{ID: albumID, OwnerID: ownerID}, nil)
	images.On("ListByAlbum", mock.Anything, albumID).Return([]domain.Image{}, nil)
	images.On("DeleteByAlbum", mock.Anything, albumID).Return(int64(0), errors.New("write conflict"))

	service := NewService(albums, images, blobs)

	err := service.Delete(context.Background(), ownerID, albumID)
	require.Error(t, err)

	// When the bulk image delete fails the album record must survive, or
	// image records would be stranded under a missing album.
	albums.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete_SkipsImagesWithoutStoredObject(t *testing.T) {
	albums := new(MockAlbumRepository)
	images := new(MockImageRepository)
	blobs := new(MockBlobDeleter)

	ownerID := bson.NewObjectID()
	albumID := bson.NewObjectID()

	stored := []domain.Image{
		{ID: bson.NewObjectID(), AlbumID: albumID, StoredObjectID: "gallery/o/a/1.jpg"},
		{ID: bson.NewObjectID(), AlbumID: albumID}, // rolled-back upload, no blob
	}

	albums.On("FindByID", mock.Anything, albumID, ownerID).
		Return(&domain.Album{ID: albumID, OwnerID: ownerID}, nil)
	images.On("ListByAlbum", mock.Anything, albumID).Return(stored, nil)
	blobs.On("Delete", mock.Anything, "gallery/o/a/1.jpg").Return(nil)
	images.On("DeleteByAlbum", mock.Anything, albumID).Return(int64(2), nil)
	albums.On("Delete", mock.Anything, albumID).Return(nil)

	service := NewService(albums, images, blobs)

	err := service.Delete(context.Background(), ownerID, albumID)
	require.NoError(t, err)

	blobs.AssertNumberOfCalls(t, "Delete", 1)
}
