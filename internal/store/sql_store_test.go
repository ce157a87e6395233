package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/realestate-backend/internal/models"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Owner{}, &models.Property{}, &models.PropertyImage{}, &models.PropertyTrace{}))
	return NewSQLStore(db)
}

func floatPtr(v float64) *float64 { return &v }

// seedListing stores 15 properties; 8 of them contain "casa" in any case.
func seedListing(t *testing.T, s *SQLStore) models.Dataset {
	t.Helper()

	names := []string{
		"Casa Campestre", "CASA del Lago", "casa blanca", "Apartamento Centro",
		"Casa Roja", "Penthouse Norte", "La Casa Azul", "Finca El Roble",
		"Casa Colonial", "Apartaestudio Chapinero", "Casa Lote Rural", "Mi casa",
		"Bodega Industrial", "Oficina 402", "Local Comercial",
	}

	owner := models.Owner{ID: "owner-1", Name: "Ana Gómez", Address: "Calle 1", Birthday: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC)}
	dataset := models.Dataset{Owners: []models.Owner{owner}}
	for i, name := range names {
		dataset.Properties = append(dataset.Properties, models.Property{
			ID:           s.NewID(),
			Name:         name,
			Address:      fmt.Sprintf("Carrera %d # %d-10, Bogotá", i+1, i+20),
			Price:        float64(100000 * (i + 1)),
			CodeInternal: fmt.Sprintf("C-%03d", i+1),
			Year:         2000 + i,
			OwnerID:      owner.ID,
		})
	}

	require.NoError(t, s.SeedDataset(context.Background(), dataset))
	return dataset
}

func TestSQLStore_FindFiltered_NameCaseInsensitive(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)

	items, total, err := s.FindFiltered(context.Background(), models.PropertyCriteria{Name: "Casa", Page: 1, PageSize: 6})
	require.NoError(t, err)

	assert.Equal(t, int64(8), total)
	assert.Len(t, items, 6)
	for _, item := range items {
		assert.Contains(t, []string{
			"Casa Campestre", "CASA del Lago", "casa blanca", "Casa Roja",
			"La Casa Azul", "Casa Colonial", "Casa Lote Rural", "Mi casa",
		}, item.Name)
	}

	items, total, err = s.FindFiltered(context.Background(), models.PropertyCriteria{Name: "casa", Page: 2, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, items, 2)
}

func TestSQLStore_FindFiltered_PageSizes(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)

	tests := []struct {
		page, pageSize, want int
	}{
		{1, 10, 10},
		{2, 10, 5},
		{3, 10, 0},
		{1, 15, 15},
		{4, 4, 3},
		{1, 100, 15},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d,size=%d", tt.page, tt.pageSize), func(t *testing.T) {
			items, total, err := s.FindFiltered(context.Background(), models.PropertyCriteria{Page: tt.page, PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Equal(t, int64(15), total)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestSQLStore_FindFiltered_PagesPartitionResult(t *testing.T) {
	s := newTestSQLStore(t)
	dataset := seedListing(t, s)

	seen := map[string]bool{}
	var previous string
	for page := 1; page <= 4; page++ {
		items, _, err := s.FindFiltered(context.Background(), models.PropertyCriteria{Page: page, PageSize: 4})
		require.NoError(t, err)
		for _, item := range items {
			assert.False(t, seen[item.ID], "property %s returned twice", item.ID)
			assert.Greater(t, item.ID, previous)
			seen[item.ID] = true
			previous = item.ID
		}
	}
	assert.Len(t, seen, len(dataset.Properties))
}

func TestSQLStore_FindFiltered_Conjunction(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)
	ctx := context.Background()

	// prices run 100000..1500000 in steps of 100000
	_, total, err := s.FindFiltered(ctx, models.PropertyCriteria{MinPrice: floatPtr(300000), MaxPrice: floatPtr(700000)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	_, total, err = s.FindFiltered(ctx, models.PropertyCriteria{Name: "casa", MaxPrice: floatPtr(500000)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	_, total, err = s.FindFiltered(ctx, models.PropertyCriteria{Address: "CARRERA 1 #"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = s.FindFiltered(ctx, models.PropertyCriteria{Address: "bogotá", MinPrice: floatPtr(1500000)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSQLStore_FindFiltered_WildcardsAreLiteral(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)

	_, total, err := s.FindFiltered(context.Background(), models.PropertyCriteria{Name: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = s.FindFiltered(context.Background(), models.PropertyCriteria{Name: "_asa"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSQLStore_FindAll(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)

	items, err := s.FindAll(context.Background(), models.PropertyCriteria{Name: "casa"})
	require.NoError(t, err)
	assert.Len(t, items, 8)
}

func TestSQLStore_FindByID(t *testing.T) {
	s := newTestSQLStore(t)
	dataset := seedListing(t, s)
	ctx := context.Background()

	property, err := s.FindByID(ctx, dataset.Properties[3].ID)
	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Equal(t, dataset.Properties[3], *property)

	property, err = s.FindByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, property)

	property, err = s.FindByID(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, property)
}

func TestSQLStore_Relations(t *testing.T) {
	s := newTestSQLStore(t)
	dataset := seedListing(t, s)
	ctx := context.Background()

	first := dataset.Properties[0].ID
	second := dataset.Properties[1].ID
	older := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SeedDataset(ctx, models.Dataset{
		Images: []models.PropertyImage{
			{ID: s.NewID(), PropertyID: first, File: "a.jpg", Enabled: true},
			{ID: s.NewID(), PropertyID: first, File: "b.jpg", Enabled: false},
			{ID: s.NewID(), PropertyID: second, File: "c.jpg", Enabled: true},
		},
		Traces: []models.PropertyTrace{
			{ID: s.NewID(), PropertyID: first, DateSale: older, Name: "Venta inicial", Value: 90000, Tax: 900},
			{ID: s.NewID(), PropertyID: first, DateSale: newer, Name: "Reventa", Value: 120000, Tax: 1200},
		},
	}))

	var stored models.PropertyImage
	require.NoError(t, s.db.Where("file = ?", "b.jpg").First(&stored).Error)
	assert.False(t, stored.Enabled, "disabled images are stored as disabled")

	images, err := s.FindEnabledImagesByPropertyIDs(ctx, []string{first})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "a.jpg", images[0].File)

	images, err = s.FindEnabledImagesByPropertyIDs(ctx, []string{first, second, first})
	require.NoError(t, err)
	assert.Len(t, images, 2)

	traces, err := s.FindTracesByPropertyIDs(ctx, []string{first})
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, "Reventa", traces[0].Name)
	assert.Equal(t, "Venta inicial", traces[1].Name)

	owners, err := s.FindOwnersByIDs(ctx, []string{"owner-1", "missing", ""})
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "Ana Gómez", owners[0].Name)

	owners, err = s.FindOwnersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestSQLStore_Reset(t *testing.T) {
	s := newTestSQLStore(t)
	seedListing(t, s)

	require.NoError(t, s.Reset(context.Background()))

	_, total, err := s.FindFiltered(context.Background(), models.PropertyCriteria{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSQLStore_ClosedDatabaseSurfacesError(t *testing.T) {
	s := newTestSQLStore(t)
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = s.FindFiltered(context.Background(), models.PropertyCriteria{})
	assert.Error(t, err)
}
