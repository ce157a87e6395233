// internal/tests/property_api_test.go
package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/database"
	"github.com/javajoker/realestate-backend/internal/i18n"
	"github.com/javajoker/realestate-backend/internal/models"
	"github.com/javajoker/realestate-backend/internal/router"
	"github.com/javajoker/realestate-backend/internal/store"
)

type PropertyAPITestSuite struct {
	suite.Suite
	db       *gorm.DB
	store    *store.SQLStore
	router   *gin.Engine
	stop     func()
	dataset  models.Dataset
	featured models.Property
}

func (suite *PropertyAPITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))
}

func (suite *PropertyAPITestSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db, log))

	suite.db = db
	suite.store = store.NewSQLStore(db)
	suite.seed()

	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
	suite.router, suite.stop = router.Initialize(suite.store, cfg, log)
}

func (suite *PropertyAPITestSuite) TearDownTest() {
	suite.stop()
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// seed stores 15 properties, 8 of which contain "casa". The first one has
// an owner, two images (one disabled) and three traces.
func (suite *PropertyAPITestSuite) seed() {
	names := []string{
		"Casa Campestre", "CASA del Lago", "casa blanca", "Apartamento Centro",
		"Casa Roja", "Penthouse Norte", "La Casa Azul", "Finca El Roble",
		"Casa Colonial", "Apartaestudio Chapinero", "Casa Lote Rural", "Mi casa",
		"Bodega Industrial", "Oficina 402", "Local Comercial",
	}

	owner := models.Owner{ID: "owner-1", Name: "Ana Gómez", Address: "Calle 1", Birthday: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC)}
	dataset := models.Dataset{Owners: []models.Owner{owner}}
	for i, name := range names {
		p := models.Property{
			ID:           suite.store.NewID(),
			Name:         name,
			Address:      fmt.Sprintf("Carrera %d # %d-10", i+1, i+20),
			Price:        float64(100000 * (i + 1)),
			CodeInternal: fmt.Sprintf("C-%03d", i+1),
			Year:         2000 + i,
		}
		if i == 0 {
			p.OwnerID = owner.ID
		}
		dataset.Properties = append(dataset.Properties, p)
	}

	featured := dataset.Properties[0]
	dataset.Images = []models.PropertyImage{
		{ID: suite.store.NewID(), PropertyID: featured.ID, File: "front.jpg", Enabled: true},
		{ID: suite.store.NewID(), PropertyID: featured.ID, File: "hidden.jpg", Enabled: false},
	}
	for i, year := range []int{2015, 2022, 2018} {
		dataset.Traces = append(dataset.Traces, models.PropertyTrace{
			ID:         suite.store.NewID(),
			PropertyID: featured.ID,
			DateSale:   time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			Name:       fmt.Sprintf("Sale %d", i+1),
			Value:      float64(200000000 + i),
			Tax:        1000,
		})
	}

	suite.Require().NoError(suite.store.SeedDataset(context.Background(), dataset))
	suite.dataset = dataset
	suite.featured = featured
}

func (suite *PropertyAPITestSuite) get(target string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PropertyAPITestSuite) TestListFilteredByName() {
	w := suite.get("/api/Property?name=Casa&page=1&pageSize=6", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var page models.Page[models.FullProperty]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(suite.T(), int64(8), page.TotalCount)
	assert.Equal(suite.T(), 2, page.TotalPages)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), 6, page.PageSize)
	assert.Len(suite.T(), page.Data, 6)

	assert.Equal(suite.T(), "8", w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "2", w.Header().Get("X-Total-Pages"))

	w = suite.get("/api/Property?name=Casa&page=2&pageSize=6", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(suite.T(), page.Data, 2)
}

func (suite *PropertyAPITestSuite) TestListDefaults() {
	w := suite.get("/api/properties", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var page models.Page[models.FullProperty]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(suite.T(), int64(15), page.TotalCount)
	assert.Equal(suite.T(), 10, page.PageSize)
	assert.Len(suite.T(), page.Data, 10)

	for _, p := range page.Data {
		assert.NotNil(suite.T(), p.Images)
		assert.NotNil(suite.T(), p.Traces)
	}
}

func (suite *PropertyAPITestSuite) TestListPriceRange() {
	w := suite.get("/api/Property?minPrice=200000&maxPrice=400000", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var page models.Page[models.FullProperty]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(suite.T(), int64(3), page.TotalCount)
	for _, p := range page.Data {
		assert.GreaterOrEqual(suite.T(), p.Price, 200000.0)
		assert.LessOrEqual(suite.T(), p.Price, 400000.0)
	}
}

func (suite *PropertyAPITestSuite) TestListRejectsBadQuery() {
	for _, target := range []string{
		"/api/Property?minPrice=abc",
		"/api/Property?minPrice=-1",
		"/api/Property?maxPrice=NaN",
		"/api/Property?page=0",
		"/api/Property?pageSize=101",
		"/api/Property?page=first",
	} {
		w := suite.get(target, nil)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, target)

		var response map[string]interface{}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), target)
		assert.False(suite.T(), response["success"].(bool), target)
	}
}

func (suite *PropertyAPITestSuite) TestValidationMessageIsLocalized() {
	w := suite.get("/api/Property?page=0", map[string]string{"Accept-Language": "es-CO,es;q=0.9"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), i18n.T("es", i18n.KeyValidationInvalid, "query"), response.Error.Message)
}

func (suite *PropertyAPITestSuite) TestGetByID() {
	w := suite.get("/api/Property/"+suite.featured.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var property models.FullProperty
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &property))
	assert.Equal(suite.T(), suite.featured.ID, property.IDProperty)
	suite.Require().NotNil(property.Owner)
	assert.Equal(suite.T(), "Ana Gómez", property.Owner.Name)

	suite.Require().Len(property.Images, 1)
	assert.Equal(suite.T(), "front.jpg", property.Images[0].File)

	suite.Require().Len(property.Traces, 3)
	assert.Equal(suite.T(), 2022, property.Traces[0].DateSale.Year())
	assert.Equal(suite.T(), 2018, property.Traces[1].DateSale.Year())
	assert.Equal(suite.T(), 2015, property.Traces[2].DateSale.Year())
}

func (suite *PropertyAPITestSuite) TestGetByIDWithoutOwner() {
	w := suite.get("/api/Property/"+suite.dataset.Properties[1].ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"owner":null`)
	assert.Contains(suite.T(), w.Body.String(), `"images":[]`)
}

func (suite *PropertyAPITestSuite) TestGetByIDNotFound() {
	for _, id := range []string{uuid.NewString(), "999"} {
		w := suite.get("/api/Property/"+id, nil)
		assert.Equal(suite.T(), http.StatusNotFound, w.Code)
		assert.Empty(suite.T(), w.Body.String())
	}
}

func (suite *PropertyAPITestSuite) TestStoreFailure() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	w := suite.get("/api/Property", nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "INTERNAL_ERROR")
}

func (suite *PropertyAPITestSuite) TestLegacyListing() {
	w := suite.get("/Properties?name=casa", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var properties []models.Property
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &properties))
	assert.Len(suite.T(), properties, 8)
}

func (suite *PropertyAPITestSuite) TestRequestIDAndCORS() {
	w := suite.get("/api/Property", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(suite.T(), "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(suite.T(), err)
}

func (suite *PropertyAPITestSuite) TestHealth() {
	w := suite.get("/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"status":"healthy"`)

	w = suite.get("/ping", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"ok":true`)
}

func TestPropertyAPITestSuite(t *testing.T) {
	suite.Run(t, new(PropertyAPITestSuite))
}
