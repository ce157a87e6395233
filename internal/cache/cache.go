// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/models"
)

// PropertyCache holds full properties keyed by id and writes every
// mutation through to its Storage once the persisted state has been loaded.
type PropertyCache struct {
	storage Storage
	logger  *logrus.Logger

	mu           sync.RWMutex
	entries      map[string]models.FullProperty
	cleared      bool
	rehydrated   bool
	rehydrateErr error

	persistMu sync.Mutex
	startOnce sync.Once
	ready     chan struct{}
}

func New(storage Storage, logger *logrus.Logger) *PropertyCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PropertyCache{
		storage: storage,
		logger:  logger,
		entries: make(map[string]models.FullProperty),
		ready:   make(chan struct{}),
	}
}

// StartRehydration loads the persisted state in the background. Only the
// first call has any effect.
func (c *PropertyCache) StartRehydration(ctx context.Context) {
	c.startOnce.Do(func() {
		go c.rehydrate(ctx)
	})
}

func (c *PropertyCache) rehydrate(ctx context.Context) {
	defer close(c.ready)

	persisted, err := c.load(ctx)

	c.mu.Lock()
	if err != nil {
		c.rehydrateErr = err
		c.logger.WithError(err).Warn("Discarding persisted property cache")
	}
	preWrites := len(c.entries) > 0 || c.cleared
	if !c.cleared {
		for id, property := range persisted {
			// Entries written while loading are newer.
			if _, exists := c.entries[id]; !exists {
				c.entries[id] = property
			}
		}
	}
	c.rehydrated = true
	count := len(c.entries)
	c.mu.Unlock()

	c.logger.WithField("entries", count).Debug("Property cache rehydrated")

	if preWrites {
		_ = c.persist()
	}
}

func (c *PropertyCache) load(ctx context.Context) (map[string]models.FullProperty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.storage.Load()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var stored map[string]models.FullProperty
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", StorageKey, err)
	}

	entries := make(map[string]models.FullProperty, len(stored))
	for _, property := range stored {
		if property.IDProperty != "" {
			entries[property.IDProperty] = property
		}
	}
	return entries, nil
}

// Ready is closed once rehydration has completed, successfully or not.
func (c *PropertyCache) Ready() <-chan struct{} {
	return c.ready
}

func (c *PropertyCache) Rehydrated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rehydrated
}

func (c *PropertyCache) WaitRehydrated(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RehydrateErr reports why persisted state was discarded, if it was.
func (c *PropertyCache) RehydrateErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rehydrateErr
}

// UpsertMany replaces each listed property wholesale.
func (c *PropertyCache) UpsertMany(properties []models.FullProperty) error {
	if len(properties) == 0 {
		return nil
	}

	c.mu.Lock()
	for _, property := range properties {
		if property.IDProperty == "" {
			continue
		}
		c.entries[property.IDProperty] = property
	}
	c.mu.Unlock()

	return c.persistIfRehydrated()
}

func (c *PropertyCache) UpsertOne(property models.FullProperty) error {
	return c.UpsertMany([]models.FullProperty{property})
}

func (c *PropertyCache) GetOne(id string) (models.FullProperty, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	property, ok := c.entries[id]
	return property, ok
}

func (c *PropertyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear empties the cache and its persisted state. Entries persisted
// earlier are not restored by a rehydration still in flight.
func (c *PropertyCache) Clear() error {
	c.mu.Lock()
	c.entries = make(map[string]models.FullProperty)
	c.cleared = true
	c.mu.Unlock()

	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	if err := c.storage.Delete(); err != nil {
		return fmt.Errorf("failed to clear property cache: %w", err)
	}
	return nil
}

// persistIfRehydrated defers writes until the persisted state has been
// merged; rehydrate saves the merged result itself.
func (c *PropertyCache) persistIfRehydrated() error {
	if !c.Rehydrated() {
		return nil
	}
	return c.persist()
}

func (c *PropertyCache) persist() error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.RLock()
	data, err := json.Marshal(c.entries)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", StorageKey, err)
	}

	if err := c.storage.Save(data); err != nil {
		c.logger.WithError(err).Error("Failed to persist property cache")
		return err
	}
	return nil
}
