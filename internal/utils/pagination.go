// internal/utils/pagination.go
package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/realestate-backend/internal/models"
)

// InvalidParamError reports a paging parameter that is not an integer.
type InvalidParamError struct {
	Field string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s must be an integer", e.Field)
}

type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// GetPaginationParams reads page and pageSize from the query string.
// Missing values default to page 1 and 10 items; values that are present
// but not integers are reported as errors. Range checks are left to the
// validator.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	params := PaginationParams{Page: models.DefaultPage, PageSize: models.DefaultPageSize}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, &InvalidParamError{Field: "page"}
		}
		params.Page = page
	}

	if raw := c.Query("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return params, &InvalidParamError{Field: "pageSize"}
		}
		params.PageSize = pageSize
	}

	return params, nil
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

func CreatePaginationResult[T any](data []T, total int64, params PaginationParams) models.Page[T] {
	if data == nil {
		data = []T{}
	}

	return models.Page[T]{
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: TotalPages(total, params.PageSize),
		Data:       data,
	}
}

func SetPaginationHeaders[T any](c *gin.Context, result models.Page[T]) {
	c.Header("X-Total-Count", strconv.FormatInt(result.TotalCount, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
