package utils

// MaxLimit caps page sizes requested by clients
const MaxLimit = 100

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta is returned next to every paginated list
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// GetPaginationParams normalizes client input. A limit of 0 means all rows.
func GetPaginationParams(page, limit int) PaginationParams {
	p := PaginationParams{Page: page, Limit: limit}
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit < 0:
		p.Limit = 0
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta describes one page of totalCount rows
func CalculateMeta(totalCount int64, page, limit int) PaginationMeta {
	if limit <= 0 {
		return PaginationMeta{Page: 1, Limit: int(totalCount), TotalCount: totalCount, TotalPages: 1}
	}
	if page < 1 {
		page = 1
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
