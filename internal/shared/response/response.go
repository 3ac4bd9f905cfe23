package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// ErrorBody is the error member of a failed envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

// PageParams reads page and page_size from the query string. Missing or
// non-positive values fall back to defaults and page_size is capped.
func PageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	pageSize, err = strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func NewPaginationMeta(total int64, page, pageSize int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginationMeta{Total: total, TotalPages: totalPages, Page: page, PageSize: pageSize}
}

// Paginate slices an in-memory result set. A page past the end yields an
// empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	meta := NewPaginationMeta(int64(len(items)), page, pageSize)
	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))
	out := make([]T, 0, end-start)
	return append(out, items[start:end]...), meta
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{Ok: true, Data: data, Meta: meta})
}

// Page writes one page of items with its pagination meta.
func Page[T any](c *gin.Context, items []T) {
	page, pageSize := PageParams(c)
	out, meta := Paginate(items, page, pageSize)
	Success(c, http.StatusOK, out, &meta)
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok:    false,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}
