package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/schema"
	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// CatalogHandler handles property type and generic property routes
type CatalogHandler struct {
	DB *gorm.DB
}

// DefinePropertyType handles POST /api/catalog/property-types
// @Summary Create or update a property type
// @Description Registers a property type with its attribute schema; an existing name is updated in place
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.PropertyTypeInput true "Property type definition"
// @Success 201 {object} services.PropertyTypeView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/property-types [post]
func (h *CatalogHandler) DefinePropertyType(c *fiber.Ctx) error {
	var input services.PropertyTypeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "definePropertyType")
	}

	view, err := services.DefinePropertyType(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusCreated)
}

// ListPropertyTypes handles GET /api/catalog/property-types
// @Summary List property types
// @Tags Catalog
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} services.PropertyTypeView
// @Router /catalog/property-types [get]
func (h *CatalogHandler) ListPropertyTypes(c *fiber.Ctx) error {
	views, err := services.ListPropertyTypes(h.DB, c.Query("search"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, views, fiber.StatusOK)
}

// GetPropertyType handles GET /api/catalog/property-types/:identifier
// @Summary Get a property type by id or slug
// @Tags Catalog
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 200 {object} services.PropertyTypeView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/property-types/{identifier} [get]
func (h *CatalogHandler) GetPropertyType(c *fiber.Ctx) error {
	pt, err := services.GetPropertyType(h.DB, c.Params("identifier"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	view := services.PropertyTypeView{
		PropertyType:     *pt,
		AvailableFilters: schema.DeriveFilters(pt.AttributeSchema),
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// GetPropertyTypeFilters handles GET /api/catalog/property-types/:identifier/filters
// @Summary Get the filter descriptors derived from a type's schema
// @Tags Catalog
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 200 {array} schema.FilterDescriptor
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/property-types/{identifier}/filters [get]
func (h *CatalogHandler) GetPropertyTypeFilters(c *fiber.Ctx) error {
	pt, err := services.GetPropertyType(h.DB, c.Params("identifier"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, schema.DeriveFilters(pt.AttributeSchema), fiber.StatusOK)
}

// DeletePropertyType handles DELETE /api/catalog/property-types/:identifier
// @Summary Delete an unused property type
// @Tags Catalog
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /catalog/property-types/{identifier} [delete]
func (h *CatalogHandler) DeletePropertyType(c *fiber.Ctx) error {
	if err := services.DeletePropertyType(h.DB, c.Params("identifier")); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProperty handles POST /api/catalog/properties
// @Summary Create a generic property
// @Description Attributes are validated against the property type's schema before persisting
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.GenericPropertyInput true "Property payload"
// @Success 201 {object} services.GenericPropertyView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/properties [post]
func (h *CatalogHandler) CreateProperty(c *fiber.Ctx) error {
	var input services.GenericPropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createProperty")
	}

	view, err := services.CreateGenericProperty(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusCreated)
}

// UpdateProperty handles PATCH /api/catalog/properties/:identifier
// @Summary Partially update a generic property
// @Tags Catalog
// @Accept json
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Param body body services.GenericPropertyInput true "Fields to change"
// @Success 200 {object} services.GenericPropertyView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/properties/{identifier} [patch]
func (h *CatalogHandler) UpdateProperty(c *fiber.Ctx) error {
	var input services.GenericPropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateProperty")
	}

	view, err := services.UpdateGenericProperty(h.DB, c.Params("identifier"), input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// GetProperty handles GET /api/catalog/properties/:identifier
// @Summary Get a generic property by id or slug
// @Tags Catalog
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 200 {object} services.GenericPropertyView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/properties/{identifier} [get]
func (h *CatalogHandler) GetProperty(c *fiber.Ctx) error {
	view, err := services.GetGenericProperty(h.DB, c.Params("identifier"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// DeleteProperty handles DELETE /api/catalog/properties/:identifier
// @Summary Delete a generic property and its children
// @Tags Catalog
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/properties/{identifier} [delete]
func (h *CatalogHandler) DeleteProperty(c *fiber.Ctx) error {
	if err := services.DeleteGenericProperty(h.DB, c.Params("identifier")); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListProperties handles GET /api/catalog/properties
// @Summary List generic properties
// @Description Published listings by default; attr_* parameters filter on schema attributes when property_type is set
// @Tags Catalog
// @Produce json
// @Param property_type query string false "Property type slug"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param ordering query string false "Ordering field, - prefix for descending"
// @Param search query string false "Free text search"
// @Success 200 {object} map[string]interface{}
// @Router /catalog/properties [get]
func (h *CatalogHandler) ListProperties(c *fiber.Ctx) error {
	q := services.ListPropertiesQuery{
		Page:             parsePage(c),
		PageSize:         parsePageSize(c),
		Ordering:         c.Query("ordering"),
		Search:           c.Query("search"),
		PriceMin:         c.Query("price_min"),
		PriceMax:         c.Query("price_max"),
		ListingStatus:    c.Query("listing_status"),
		PropertyTypeSlug: c.Query("property_type"),
		LocationRegion:   c.Query("region"),
		LocationLocality: c.Query("locality"),
		ParentID:         c.Query("parent"),
		AttrParams:       attrParams(c),
	}

	views, total, err := services.ListGenericProperties(h.DB, q)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.PagedResponse(c, views, total, q.Page, q.PageSize)
}
