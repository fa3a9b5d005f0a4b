package image

// ListParams selects one page of an album's images.
type ListParams struct {
	Page  int64
	Limit int64
	Sort  string
}

func (p ListParams) withDefaults() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Sort == "" {
		p.Sort = "random"
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
