// internal/services/property_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/javajoker/realestate-backend/internal/models"
	"github.com/javajoker/realestate-backend/internal/store"
)

type PropertyService struct {
	store  store.PropertyStore
	logger *logrus.Logger
}

func NewPropertyService(propertyStore store.PropertyStore, logger *logrus.Logger) *PropertyService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PropertyService{
		store:  propertyStore,
		logger: logger,
	}
}

// ListWithRelations returns one page of matching properties, each joined
// with its relations, and the number of matches across all pages.
func (s *PropertyService) ListWithRelations(ctx context.Context, criteria models.PropertyCriteria) ([]models.FullProperty, int64, error) {
	properties, total, err := s.store.FindFiltered(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	full, err := s.attach(ctx, properties)
	if err != nil {
		return nil, 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"page":        criteria.Page,
		"page_size":   criteria.PageSize,
		"total_count": total,
		"returned":    len(full),
	}).Debug("Listed properties")

	return full, total, nil
}

// GetByIDWithRelations returns nil when no property has the given id. No
// relation lookups are made in that case.
func (s *PropertyService) GetByIDWithRelations(ctx context.Context, id string) (*models.FullProperty, error) {
	property, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, nil
	}

	full, err := s.AttachRelations(ctx, *property)
	if err != nil {
		return nil, err
	}
	return &full, nil
}

func (s *PropertyService) AttachRelations(ctx context.Context, property models.Property) (models.FullProperty, error) {
	full, err := s.attach(ctx, []models.Property{property})
	if err != nil {
		return models.FullProperty{}, err
	}
	return full[0], nil
}

// ListProperties returns every matching property without relations or paging.
func (s *PropertyService) ListProperties(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, error) {
	return s.store.FindAll(ctx, criteria)
}

// attach loads owners, enabled images and traces for the given properties
// with one query per relation type and joins them in memory.
func (s *PropertyService) attach(ctx context.Context, properties []models.Property) ([]models.FullProperty, error) {
	result := make([]models.FullProperty, 0, len(properties))
	if len(properties) == 0 {
		return result, nil
	}

	propertyIDs := make([]string, 0, len(properties))
	ownerIDs := make([]string, 0, len(properties))
	for _, p := range properties {
		propertyIDs = append(propertyIDs, p.ID)
		if p.OwnerID != "" {
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	var (
		owners []models.Owner
		images []models.PropertyImage
		traces []models.PropertyTrace
	)

	g, gctx := errgroup.WithContext(ctx)
	if len(ownerIDs) > 0 {
		g.Go(func() error {
			var err error
			owners, err = s.store.FindOwnersByIDs(gctx, ownerIDs)
			return err
		})
	}
	g.Go(func() error {
		var err error
		images, err = s.store.FindEnabledImagesByPropertyIDs(gctx, propertyIDs)
		return err
	})
	g.Go(func() error {
		var err error
		traces, err = s.store.FindTracesByPropertyIDs(gctx, propertyIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load property relations: %w", err)
	}

	ownersByID := make(map[string]models.Owner, len(owners))
	for _, o := range owners {
		ownersByID[o.ID] = o
	}
	imagesByProperty := make(map[string][]models.PropertyImage)
	for _, img := range images {
		if !img.Enabled {
			continue
		}
		imagesByProperty[img.PropertyID] = append(imagesByProperty[img.PropertyID], img)
	}
	tracesByProperty := make(map[string][]models.PropertyTrace)
	for _, t := range traces {
		tracesByProperty[t.PropertyID] = append(tracesByProperty[t.PropertyID], t)
	}

	for _, p := range properties {
		full := models.NewFullProperty(p)
		if owner, ok := ownersByID[p.OwnerID]; ok && p.OwnerID != "" {
			full.Owner = &owner
		}
		if imgs := imagesByProperty[p.ID]; len(imgs) > 0 {
			full.Images = imgs
		}
		if ts := tracesByProperty[p.ID]; len(ts) > 0 {
			store.SortTraces(ts)
			full.Traces = ts
		}
		result = append(result, full)
	}

	return result, nil
}
