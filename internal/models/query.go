// internal/models/query.go
package models

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PropertyCriteria is the filter and paging input of a property listing.
// Zero values mean "no constraint"; validation happens in the caller layer.
type PropertyCriteria struct {
	Name     string   `json:"name,omitempty"`
	Address  string   `json:"address,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	Page     int      `json:"page" validate:"gte=1"`
	PageSize int      `json:"pageSize" validate:"gte=1,lte=100"`
}

// WithDefaults returns a copy with page and page size defaulted when unset.
func (c PropertyCriteria) WithDefaults() PropertyCriteria {
	if c.Page == 0 {
		c.Page = DefaultPage
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

func (c PropertyCriteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}

// Page is one page of a filtered listing as served by the list endpoint.
type Page[T any] struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	Data       []T   `json:"data"`
}
