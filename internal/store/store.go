// internal/store/store.go
package store

import (
	"context"
	"sort"

	"github.com/javajoker/realestate-backend/internal/models"
)

// PropertyStore is read access to properties and their related entities.
//
// FindByID returns nil without error when no property has the given id,
// including ids that are not well formed for the backend. Connectivity
// failures are returned as errors and never retried.
type PropertyStore interface {
	FindFiltered(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, int64, error)
	FindAll(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, error)
	FindByID(ctx context.Context, id string) (*models.Property, error)
	FindOwnersByIDs(ctx context.Context, ids []string) ([]models.Owner, error)
	FindEnabledImagesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyImage, error)
	FindTracesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyTrace, error)
}

// Seeder populates a store out-of-band.
type Seeder interface {
	NewID() string
	SeedDataset(ctx context.Context, dataset models.Dataset) error
	Reset(ctx context.Context) error
}

// SortTraces orders traces by sale date, newest first, then by id.
func SortTraces(traces []models.PropertyTrace) {
	sort.SliceStable(traces, func(i, j int) bool {
		if !traces[i].DateSale.Equal(traces[j].DateSale) {
			return traces[i].DateSale.After(traces[j].DateSale)
		}
		return traces[i].ID < traces[j].ID
	})
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
