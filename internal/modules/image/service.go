package image

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gallery/internal/domain"
	"gallery/internal/pkg/multipart"
)

// Service owns the upload path and single-image deletion. Uploads write
// the blob first and the metadata record second, so a record always
// points at a confirmed blob; the reverse orphan (blob without record) is
// tolerated and left to out-of-band reconciliation.
type Service struct {
	images ImageRepository
	albums AlbumReader
	blobs  BlobStore
}

func NewService(images ImageRepository, albums AlbumReader, blobs BlobStore) *Service {
	return &Service{
		images: images,
		albums: albums,
		blobs:  blobs,
	}
}

// Upload validates the decoded body, verifies album ownership, stores the
// file bytes remotely and then inserts the image record.
func (s *Service) Upload(ctx context.Context, ownerID bson.ObjectID, body *multipart.Body) (*domain.Image, error) {
	file, albumID, err := validateUpload(body)
	if err != nil {
		return nil, err
	}

	// Ownership is proven before any blob write so an unauthorized request
	// cannot leave an orphaned remote object behind.
	if _, err := s.albums.FindByID(ctx, albumID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	// Objects are keyed under owner/album so a whole album's blobs share
	// one prefix.
	prefix := fmt.Sprintf("gallery/%s/%s", ownerID.Hex(), albumID.Hex())
	obj, err := s.blobs.Put(ctx, file.Content, prefix, file.ContentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	img := &domain.Image{
		AlbumID:        albumID,
		OwnerID:        ownerID,
		FileName:       file.FileName,
		OriginalName:   file.FileName,
		StoredObjectID: obj.ObjectID,
		URL:            obj.SecureURL,
		ThumbnailURL:   s.blobs.ThumbnailURL(obj.ObjectID),
		Format:         obj.Format,
		Width:          obj.Width,
		Height:         obj.Height,
		ByteSize:       obj.ByteSize,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.images.Create(ctx, img); err != nil {
		// The stored blob stays behind as a reconcilable orphan.
		return nil, fmt.Errorf("save image record: %w", err)
	}
	return img, nil
}

// Delete removes one image. The blob delete is best-effort: a dangling
// blob is recoverable by a reconciliation job, a stuck metadata record
// blocks the user forever. The record delete is unconditional.
func (s *Service) Delete(ctx context.Context, ownerID, imageID bson.ObjectID) error {
	img, err := s.images.FindByID(ctx, imageID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrImageNotFound
		}
		return fmt.Errorf("find image: %w", err)
	}

	if img.StoredObjectID != "" {
		if err := s.blobs.Delete(ctx, img.StoredObjectID); err != nil {
			log.Printf("blob delete failed image_id=%s object_id=%s error=%v",
				img.ID.Hex(), img.StoredObjectID, err)
		}
	}

	if err := s.images.DeleteByID(ctx, img.ID); err != nil {
		return fmt.Errorf("delete image record: %w", err)
	}
	return nil
}

// ListByAlbum returns one page of an album's images after checking that
// the album belongs to the caller.
func (s *Service) ListByAlbum(ctx context.Context, ownerID, albumID bson.ObjectID, params ListParams) ([]domain.Image, *Pagination, error) {
	if _, err := s.albums.FindByID(ctx, albumID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrAlbumNotFound
		}
		return nil, nil, fmt.Errorf("find album: %w", err)
	}

	params = params.withDefaults()
	skip := (params.Page - 1) * params.Limit

	images, err := s.images.FindByAlbum(ctx, albumID, params.Sort, skip, params.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list images: %w", err)
	}

	total, err := s.images.CountByAlbum(ctx, albumID)
	if err != nil {
		return nil, nil, fmt.Errorf("count images: %w", err)
	}

	return images, newPagination(params.Page, params.Limit, total), nil
}
