// Package blobstore holds image bytes in an S3-compatible object store.
// Metadata lives elsewhere; the two systems fail independently, so every
// method reports its own errors and nothing here retries.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gallery/internal/config"
)

// Thumbnails are a fixed 400x400 fill crop rendered by the imaging proxy;
// the URL is derived from the object key alone, no second upload happens.
const (
	thumbWidth  = 400
	thumbHeight = 400
)

// StoredObject describes an object the store has confirmed durable.
// ObjectID is the full key under the bucket and is the only handle needed
// to delete or re-derive URLs later.
type StoredObject struct {
	ObjectID  string
	SecureURL string
	Format    string
	Width     int
	Height    int
	ByteSize  int64
}

// MinioStore talks to one bucket of an S3-compatible server. The client is
// constructed once at startup and injected; handlers never build their own.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	thumbBaseURL  string
}

func NewMinioStore(cfg config.BlobConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store client: %w", err)
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		thumbBaseURL:  strings.TrimRight(cfg.ThumbnailBaseURL, "/"),
	}, nil
}

// Put stores content under a fresh key below pathPrefix and returns the
// confirmed object. The prefix scopes every object to one owner/album, so
// a later bulk delete-by-prefix can target exactly one album's blobs.
func (s *MinioStore) Put(ctx context.Context, content []byte, pathPrefix, contentType string) (*StoredObject, error) {
	format, width, height := sniffImage(content, contentType)

	key := fmt.Sprintf("%s/%s%s", strings.Trim(pathPrefix, "/"), uuid.New().String(), formatExt(format))

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("blob store put: %w", err)
	}

	return &StoredObject{
		ObjectID:  key,
		SecureURL: fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key),
		Format:    format,
		Width:     width,
		Height:    height,
		ByteSize:  int64(len(content)),
	}, nil
}

// Delete removes one object by its key. Callers decide whether a failure
// here aborts anything; during cascades it never does.
func (s *MinioStore) Delete(ctx context.Context, objectID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob store delete: %w", err)
	}
	return nil
}

// ThumbnailURL derives the proxy URL for the fixed thumbnail transform.
// Pure string work: same key in, same URL out.
func (s *MinioStore) ThumbnailURL(objectID string) string {
	return fmt.Sprintf("%s/unsafe/%dx%d/smart/%s/%s",
		s.thumbBaseURL, thumbWidth, thumbHeight, s.bucket, objectID)
}

// sniffImage reads dimensions and format from the actual bytes. When the
// format is not one of the registered decoders, fall back to the declared
// content type and leave the dimensions at zero.
func sniffImage(content []byte, contentType string) (format string, width, height int) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err == nil {
		return format, cfg.Width, cfg.Height
	}

	format = strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexByte(format, ';'); i >= 0 {
		format = format[:i]
	}
	if format == "" || strings.ContainsRune(format, '/') {
		format = "bin"
	}
	return format, 0, 0
}

func formatExt(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "":
		return ""
	default:
		return "." + format
	}
}
