// internal/utils/pagination.go
package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page     int
	PageSize int
}

type PaginationResult struct {
	Count      int64       `json:"count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Next       *string     `json:"next"`
	Previous   *string     `json:"previous"`
	Data       interface{} `json:"data"`
}

// ParsePage reads the "page" query parameter. A missing value means 1; a
// non-integer value is an error. Range checks are left to the caller.
func ParsePage(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("page must be an integer: %w", err)
	}
	return page, nil
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset, ok := PageOffset(params.Page, params.PageSize)
	if !ok {
		// no row can sit that far out
		return db.Where("1 = 0").Limit(params.PageSize)
	}
	return db.Offset(offset).Limit(params.PageSize)
}

// PageOffset returns the number of rows before the given page. ok is false
// when the offset does not fit in an int.
func PageOffset(page, pageSize int) (offset int, ok bool) {
	if page < 1 || pageSize < 1 {
		return 0, true
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

func TotalPages(count int64, pageSize int) int {
	if pageSize < 1 || count == 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// CreatePaginationResult fills the page counters and, when base is given,
// the next/previous links relative to it.
func CreatePaginationResult(data interface{}, count int64, params PaginationParams, base *url.URL) PaginationResult {
	totalPages := TotalPages(count, params.PageSize)

	result := PaginationResult{
		Count:      count,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		Data:       data,
	}

	if base == nil {
		return result
	}
	if params.Page < totalPages {
		next := pageURL(base, params.Page+1)
		result.Next = &next
	}
	if params.Page > 1 {
		previous := pageURL(base, params.Page-1)
		result.Previous = &previous
	}
	return result
}

func pageURL(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.RequestURI()
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Count, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
