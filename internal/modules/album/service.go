package album

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gallery/internal/domain"
	"gallery/internal/repository"
)

type Service struct {
	albums AlbumRepository
	images ImageRepository
	blobs  BlobDeleter
}

func NewService(albums AlbumRepository, images ImageRepository, blobs BlobDeleter) *Service {
	return &Service{
		albums: albums,
		images: images,
		blobs:  blobs,
	}
}

func (s *Service) Create(ctx context.Context, ownerID bson.ObjectID, req CreateAlbumRequest) (*domain.Album, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	a := &domain.Album{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsPrivate:   req.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.albums.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, ownerID bson.ObjectID, params ListParams) ([]AlbumWithCount, *Pagination, error) {
	params = params.withDefaults()

	page := repository.AlbumPage{
		Search: strings.TrimSpace(params.Search),
		Sort:   params.Sort,
		Skip:   (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	}

	albums, err := s.albums.FindPage(ctx, ownerID, page)
	if err != nil {
		return nil, nil, fmt.Errorf("list albums: %w", err)
	}

	views := make([]AlbumWithCount, 0, len(albums))
	for _, a := range albums {
		view := AlbumWithCount{Album: a}

		view.ImageCount, err = s.images.CountByAlbum(ctx, a.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("count album images: %w", err)
		}

		cover, err := s.images.LatestByAlbum(ctx, a.ID)
		switch {
		case err == nil:
			view.CoverImage = cover.ThumbnailURL
			if view.CoverImage == "" {
				view.CoverImage = cover.URL
			}
		case !errors.Is(err, mongo.ErrNoDocuments):
			return nil, nil, fmt.Errorf("find album cover: %w", err)
		}

		views = append(views, view)
	}

	// The image-count ordering can only be applied after counting.
	if params.Sort == "images" {
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].ImageCount > views[j].ImageCount
		})
	}

	total, err := s.albums.CountByOwner(ctx, ownerID, page.Search)
	if err != nil {
		return nil, nil, fmt.Errorf("count albums: %w", err)
	}

	return views, newPagination(params.Page, params.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, ownerID, albumID bson.ObjectID) (*AlbumWithCount, error) {
	a, err := s.albums.FindByID(ctx, albumID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	count, err := s.images.CountByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("count album images: %w", err)
	}

	return &AlbumWithCount{Album: *a, ImageCount: count}, nil
}

func (s *Service) Update(ctx context.Context, ownerID, albumID bson.ObjectID, req UpdateAlbumRequest) (*domain.Album, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.albums.FindByID(ctx, albumID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	set := bson.M{
		"name":        name,
		"description": strings.TrimSpace(req.Description),
		"updatedAt":   time.Now(),
	}
	if req.IsPrivate != nil {
		set["isPrivate"] = *req.IsPrivate
	}

	if err := s.albums.Update(ctx, albumID, set); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}

	updated, err := s.albums.FindByID(ctx, albumID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload album: %w", err)
	}
	return updated, nil
}

// Delete cascades over both stores: one best-effort blob delete per image,
// issued concurrently and joined without short-circuiting, then the bulk
// image-record delete, then the album record itself. The album record goes
// last so a crash mid-cascade can never strand image records under an
// album id that no longer exists.
func (s *Service) Delete(ctx context.Context, ownerID, albumID bson.ObjectID) error {
	if _, err := s.albums.FindByID(ctx, albumID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("find album: %w", err)
	}

	images, err := s.images.ListByAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("list album images: %w", err)
	}

	var wg sync.WaitGroup
	for _, img := range images {
		if img.StoredObjectID == "" {
			continue
		}
		wg.Add(1)
		go func(img domain.Image) {
			defer wg.Done()
			if err := s.blobs.Delete(ctx, img.StoredObjectID); err != nil {
				// Logged and absorbed: a dangling blob is reconcilable,
				// and one stuck blob must not make the album undeletable.
				log.Printf("blob delete failed album_id=%s image_id=%s object_id=%s error=%v",
					albumID.Hex(), img.ID.Hex(), img.StoredObjectID, err)
			}
		}(img)
	}
	wg.Wait()

	if _, err := s.images.DeleteByAlbum(ctx, albumID); err != nil {
		return fmt.Errorf("delete album images: %w", err)
	}

	if err := s.albums.Delete(ctx, albumID); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}
