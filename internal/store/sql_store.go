// internal/store/sql_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/realestate-backend/internal/models"
)

// SQLStore serves properties from a relational database through gorm.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func (s *SQLStore) filtered(ctx context.Context, criteria models.PropertyCriteria) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Property{})

	if criteria.Name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(criteria.Name))
	}
	if criteria.Address != "" {
		query = query.Where(`LOWER(address) LIKE ? ESCAPE '\'`, containsPattern(criteria.Address))
	}
	if criteria.MinPrice != nil {
		query = query.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		query = query.Where("price <= ?", *criteria.MaxPrice)
	}

	return query
}

func (s *SQLStore) FindFiltered(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, int64, error) {
	criteria = criteria.WithDefaults()

	var total int64
	if err := s.filtered(ctx, criteria).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	properties := []models.Property{}
	if err := s.filtered(ctx, criteria).
		Order("id ASC").
		Offset(criteria.Offset()).
		Limit(criteria.PageSize).
		Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, total, nil
}

func (s *SQLStore) FindAll(ctx context.Context, criteria models.PropertyCriteria) ([]models.Property, error) {
	properties := []models.Property{}
	if err := s.filtered(ctx, criteria).Order("id ASC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (*models.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var property models.Property
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch property %s: %w", id, err)
	}
	return &property, nil
}

func (s *SQLStore) FindOwnersByIDs(ctx context.Context, ids []string) ([]models.Owner, error) {
	owners := []models.Owner{}
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return owners, nil
	}

	if err := s.db.WithContext(ctx).Where("id_owner IN ?", ids).Find(&owners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch owners: %w", err)
	}
	return owners, nil
}

func (s *SQLStore) FindEnabledImagesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyImage, error) {
	images := []models.PropertyImage{}
	propertyIDs = uniqueNonEmpty(propertyIDs)
	if len(propertyIDs) == 0 {
		return images, nil
	}

	if err := s.db.WithContext(ctx).
		Where("id_property IN ? AND enabled = ?", propertyIDs, true).
		Order("id ASC").
		Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch property images: %w", err)
	}
	return images, nil
}

func (s *SQLStore) FindTracesByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.PropertyTrace, error) {
	traces := []models.PropertyTrace{}
	propertyIDs = uniqueNonEmpty(propertyIDs)
	if len(propertyIDs) == 0 {
		return traces, nil
	}

	if err := s.db.WithContext(ctx).
		Where("id_property IN ?", propertyIDs).
		Order("date_sale DESC, id ASC").
		Find(&traces).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch property traces: %w", err)
	}
	return traces, nil
}

func (s *SQLStore) NewID() string {
	return uuid.NewString()
}

func (s *SQLStore) SeedDataset(ctx context.Context, dataset models.Dataset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(dataset.Owners) > 0 {
			if err := tx.Create(&dataset.Owners).Error; err != nil {
				return fmt.Errorf("failed to insert owners: %w", err)
			}
		}
		if len(dataset.Properties) > 0 {
			if err := tx.Create(&dataset.Properties).Error; err != nil {
				return fmt.Errorf("failed to insert properties: %w", err)
			}
		}
		if len(dataset.Images) > 0 {
			if err := tx.Create(&dataset.Images).Error; err != nil {
				return fmt.Errorf("failed to insert property images: %w", err)
			}
		}
		if len(dataset.Traces) > 0 {
			if err := tx.Create(&dataset.Traces).Error; err != nil {
				return fmt.Errorf("failed to insert property traces: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.PropertyTrace{},
			&models.PropertyImage{},
			&models.Property{},
			&models.Owner{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to reset store: %w", err)
			}
		}
		return nil
	})
}
