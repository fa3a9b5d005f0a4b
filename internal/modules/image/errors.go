package image

import "errors"

var (
	ErrNoFile               = errors.New("no file provided")
	ErrInvalidAlbumID       = errors.New("missing or invalid album id")
	ErrUnsupportedMediaType = errors.New("only image files are allowed")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrAlbumNotFound        = errors.New("album not found")
	ErrImageNotFound        = errors.New("image not found")
)
