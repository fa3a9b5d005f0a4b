package album

import "errors"

var (
	ErrNameRequired  = errors.New("album name is required")
	ErrAlbumNotFound = errors.New("album not found")
)
