// internal/browse/controller.go
package browse

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/cache"
	"github.com/javajoker/realestate-backend/internal/models"
)

var ErrInvalidPageSize = errors.New("page size must be at least 1")

// PropertyAPI is the subset of the HTTP client the controller needs.
type PropertyAPI interface {
	GetProperties(ctx context.Context, criteria models.PropertyCriteria) (*models.Page[models.FullProperty], error)
	GetProperty(ctx context.Context, id string) (*models.FullProperty, error)
}

type Filters struct {
	Name     string
	Address  string
	MinPrice *float64
	MaxPrice *float64
}

func (f Filters) normalized() Filters {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

type State struct {
	Filters
	CurrentPage int
	PageSize    int
}

func (s State) criteria() models.PropertyCriteria {
	return models.PropertyCriteria{
		Name:     s.Name,
		Address:  s.Address,
		MinPrice: s.MinPrice,
		MaxPrice: s.MaxPrice,
		Page:     s.CurrentPage,
		PageSize: s.PageSize,
	}
}

// Snapshot is a copy of the controller's state and latest applied result.
// Err holds the failure of the latest fetch, if it failed.
type Snapshot struct {
	State      State
	Items      []models.FullProperty
	TotalCount int64
	TotalPages int
	Loading    bool
	Err        error
}

// Controller owns the filter and paging state of a listing view. Methods
// may be called concurrently; only the response to the most recent fetch
// is applied.
type Controller struct {
	api    PropertyAPI
	cache  *cache.PropertyCache
	logger *logrus.Logger

	mu         sync.Mutex
	state      State
	items      []models.FullProperty
	totalCount int64
	totalPages int
	loading    bool
	err        error
	seq        uint64
}

func NewController(api PropertyAPI, propertyCache *cache.PropertyCache, pageSize int, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	if propertyCache != nil {
		propertyCache.StartRehydration(context.Background())
	}

	return &Controller{
		api:    api,
		cache:  propertyCache,
		logger: logger,
		state:  State{CurrentPage: models.DefaultPage, PageSize: pageSize},
		items:  []models.FullProperty{},
	}
}

// ApplyFilters replaces the filters and reloads from the first page.
func (c *Controller) ApplyFilters(ctx context.Context, filters Filters) (Snapshot, error) {
	c.mu.Lock()
	c.state.Filters = filters.normalized()
	c.state.CurrentPage = 1
	c.mu.Unlock()

	return c.fetch(ctx)
}

func (c *Controller) ClearFilters(ctx context.Context) (Snapshot, error) {
	return c.ApplyFilters(ctx, Filters{})
}

// SetPage moves to page n, clamped to the known page range. Nothing is
// fetched when the clamped page is the current one.
func (c *Controller) SetPage(ctx context.Context, n int) (Snapshot, error) {
	c.mu.Lock()
	last := c.totalPages
	if last < 1 {
		last = 1
	}
	n = min(max(n, 1), last)
	if n == c.state.CurrentPage {
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		return snapshot, nil
	}
	c.state.CurrentPage = n
	c.mu.Unlock()

	return c.fetch(ctx)
}

func (c *Controller) SetPageSize(ctx context.Context, n int) (Snapshot, error) {
	if n < 1 {
		return c.Snapshot(), ErrInvalidPageSize
	}

	c.mu.Lock()
	c.state.PageSize = n
	c.state.CurrentPage = 1
	c.mu.Unlock()

	return c.fetch(ctx)
}

// Refresh reloads the current page with the current filters.
func (c *Controller) Refresh(ctx context.Context) (Snapshot, error) {
	return c.fetch(ctx)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	items := make([]models.FullProperty, len(c.items))
	copy(items, c.items)

	return Snapshot{
		State:      c.state,
		Items:      items,
		TotalCount: c.totalCount,
		TotalPages: c.totalPages,
		Loading:    c.loading,
		Err:        c.err,
	}
}

// fetch loads the current page. A response superseded by a later fetch is
// dropped entirely, including its cache write.
func (c *Controller) fetch(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	criteria := c.state.criteria()
	c.loading = true
	c.mu.Unlock()

	page, err := c.api.GetProperties(ctx, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.WithFields(logrus.Fields{
			"seq":    seq,
			"latest": c.seq,
		}).Debug("Discarding stale property response")
		return c.snapshotLocked(), nil
	}

	c.loading = false
	if err != nil {
		c.err = err
		c.logger.WithError(err).Warn("Failed to load properties")
		return c.snapshotLocked(), err
	}

	if c.cache != nil {
		if cacheErr := c.cache.UpsertMany(page.Data); cacheErr != nil {
			c.logger.WithError(cacheErr).Warn("Failed to cache properties")
		}
	}

	c.err = nil
	c.items = page.Data
	if c.items == nil {
		c.items = []models.FullProperty{}
	}
	c.totalCount = page.TotalCount
	c.totalPages = page.TotalPages

	return c.snapshotLocked(), nil
}

// Detail returns the property from the cache once it has been rehydrated,
// falling back to the API. A nil property means it does not exist.
func (c *Controller) Detail(ctx context.Context, id string) (*models.FullProperty, error) {
	if c.cache != nil {
		if err := c.cache.WaitRehydrated(ctx); err != nil {
			return nil, err
		}
		if property, ok := c.cache.GetOne(id); ok {
			return &property, nil
		}
	}

	property, err := c.api.GetProperty(ctx, id)
	if err != nil || property == nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.UpsertOne(*property); err != nil {
			c.logger.WithError(err).Warn("Failed to cache property")
		}
	}
	return property, nil
}
