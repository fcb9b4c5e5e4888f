package files

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps (Page-1)*PageSize inside int for every allowed page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// ListQuery selects one page of the catalog. Empty filters match everything.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	UserID   string
	FolderID string
}

// Normalize applies the paging defaults and clamps. pageSize is held inside
// [DefaultPageSize, MaxPageSize] and page inside [1, MaxPage].
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PageSize < DefaultPageSize {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.UserID = strings.TrimSpace(q.UserID)
	q.FolderID = strings.TrimSpace(q.FolderID)
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TotalPages is ceil(total/pageSize), and 0 for an empty result.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Page is the list envelope. Items mirrors Data for older clients.
type Page struct {
	Data       []File `json:"data"`
	Items      []File `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

func atoiOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
