// internal/handlers/property.go
package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/i18n"
	"github.com/javajoker/realestate-backend/internal/models"
	"github.com/javajoker/realestate-backend/internal/services"
	"github.com/javajoker/realestate-backend/internal/utils"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	logger          *logrus.Logger
}

func NewPropertyHandler(propertyService *services.PropertyService, logger *logrus.Logger) *PropertyHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PropertyHandler{
		propertyService: propertyService,
		logger:          logger,
	}
}

// GET /api/Property
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	criteria, ok := h.bindCriteria(c, true)
	if !ok {
		return
	}

	properties, total, err := h.propertyService.ListWithRelations(c.Request.Context(), criteria)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", utils.GetRequestIDFromContext(c)).Error("Failed to get properties")
		utils.InternalErrorResponse(c)
		return
	}

	result := utils.CreatePaginationResult(properties, total, utils.PaginationParams{
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	})
	utils.PaginatedResponse(c, result)
}

// GET /api/Property/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	property, err := h.propertyService.GetByIDWithRelations(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"property_id": id,
			"request_id":  utils.GetRequestIDFromContext(c),
		}).Error("Failed to get property")
		utils.InternalErrorResponse(c)
		return
	}
	if property == nil {
		utils.NotFoundResponse(c)
		return
	}

	c.JSON(http.StatusOK, property)
}

// GET /Properties
func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	criteria, ok := h.bindCriteria(c, false)
	if !ok {
		return
	}

	properties, err := h.propertyService.ListProperties(c.Request.Context(), criteria)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", utils.GetRequestIDFromContext(c)).Error("Failed to get properties")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// bindCriteria reads the filter query parameters, and the paging ones when
// paged is set, writing a 400 response and returning false on bad input.
func (h *PropertyHandler) bindCriteria(c *gin.Context, paged bool) (models.PropertyCriteria, bool) {
	lang := utils.GetLangFromContext(c)
	criteria := models.PropertyCriteria{
		Name:    c.Query("name"),
		Address: c.Query("address"),
	}

	var invalid []utils.ValidationError
	for _, bound := range []struct {
		field  string
		target **float64
	}{
		{"minPrice", &criteria.MinPrice},
		{"maxPrice", &criteria.MaxPrice},
	} {
		field := bound.field
		raw := c.Query(field)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			invalid = append(invalid, utils.ValidationError{
				Field:   field,
				Tag:     "number",
				Message: i18n.T(lang, i18n.KeyValidationPrice, field),
			})
			continue
		}
		*bound.target = &value
	}

	if paged {
		params, err := utils.GetPaginationParams(c)
		var paramErr *utils.InvalidParamError
		if errors.As(err, &paramErr) {
			invalid = append(invalid, utils.ValidationError{
				Field:   paramErr.Field,
				Tag:     "number",
				Message: i18n.T(lang, i18n.KeyValidationPage, paramErr.Field),
			})
		}
		criteria.Page = params.Page
		criteria.PageSize = params.PageSize
	} else {
		criteria = criteria.WithDefaults()
	}

	if len(invalid) > 0 {
		utils.ValidationErrorResponse(c, invalid)
		return criteria, false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&criteria)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return criteria, false
	}

	return criteria, true
}
