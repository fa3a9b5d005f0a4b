package album

import "gallery/internal/domain"

type CreateAlbumRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
}

type UpdateAlbumRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPrivate   *bool  `json:"isPrivate"`
}

// AlbumWithCount decorates an album with its image count and the
// thumbnail of its newest image for gallery listings.
type AlbumWithCount struct {
	domain.Album
	ImageCount int64  `json:"imageCount"`
	CoverImage string `json:"coverImage,omitempty"`
}

type ListParams struct {
	Page   int64
	Limit  int64
	Search string
	Sort   string
}

func (p ListParams) withDefaults() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Sort == "" {
		p.Sort = "newest"
	}
	return p
}

type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func newPagination(page, limit, total int64) *Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
