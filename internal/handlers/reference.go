package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// ReferenceHandler handles reference data routes: locations, features,
// land use types and land categories.
type ReferenceHandler struct {
	DB *gorm.DB
}

type namedInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CreateLocation handles POST /api/catalog/locations
// @Summary Create a location
// @Tags Reference
// @Accept json
// @Produce json
// @Param body body services.LocationInput true "Location payload"
// @Success 201 {object} models.Location
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/locations [post]
func (h *ReferenceHandler) CreateLocation(c *fiber.Ctx) error {
	var input services.LocationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createLocation")
	}
	location, err := services.CreateLocation(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, location, fiber.StatusCreated)
}

// UpdateLocation handles PATCH /api/catalog/locations/:id
// @Summary Partially update a location
// @Tags Reference
// @Accept json
// @Produce json
// @Param id path int true "Location id"
// @Param body body services.LocationInput true "Fields to change"
// @Success 200 {object} models.Location
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/locations/{id} [patch]
func (h *ReferenceHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "updateLocation")
	}
	var input services.LocationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateLocation")
	}
	location, err := services.UpdateLocation(h.DB, id, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, location, fiber.StatusOK)
}

// ListLocations handles GET /api/catalog/locations
// @Summary List locations
// @Tags Reference
// @Produce json
// @Param region query string false "Region substring"
// @Param locality query string false "Locality substring"
// @Success 200 {array} models.Location
// @Router /catalog/locations [get]
func (h *ReferenceHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := services.ListLocations(h.DB, c.Query("region"), c.Query("locality"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, locations, fiber.StatusOK)
}

// DeleteLocation handles DELETE /api/catalog/locations/:id
// @Summary Delete an unreferenced location
// @Tags Reference
// @Produce json
// @Param id path int true "Location id"
// @Success 204
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /catalog/locations/{id} [delete]
func (h *ReferenceHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteLocation")
	}
	if err := services.DeleteLocation(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateFeature handles POST /api/catalog/features
// @Summary Create a feature
// @Tags Reference
// @Accept json
// @Produce json
// @Success 201 {object} models.Feature
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/features [post]
func (h *ReferenceHandler) CreateFeature(c *fiber.Ctx) error {
	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createFeature")
	}
	feature, err := services.CreateFeature(h.DB, input.Name, input.Type)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, feature, fiber.StatusCreated)
}

// ListFeatures handles GET /api/catalog/features
// @Summary List features
// @Tags Reference
// @Produce json
// @Param type query string false "Feature type tag"
// @Success 200 {array} models.Feature
// @Router /catalog/features [get]
func (h *ReferenceHandler) ListFeatures(c *fiber.Ctx) error {
	features, err := services.ListFeatures(h.DB, c.Query("type"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, features, fiber.StatusOK)
}

// DeleteFeature handles DELETE /api/catalog/features/:id
// @Summary Delete a feature
// @Tags Reference
// @Produce json
// @Param id path int true "Feature id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/features/{id} [delete]
func (h *ReferenceHandler) DeleteFeature(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteFeature")
	}
	if err := services.DeleteFeature(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLandUseType handles POST /api/catalog/land-use-types
// @Summary Create a land use type
// @Tags Reference
// @Accept json
// @Produce json
// @Success 201 {object} models.LandUseType
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/land-use-types [post]
func (h *ReferenceHandler) CreateLandUseType(c *fiber.Ctx) error {
	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createLandUseType")
	}
	landUse, err := services.CreateLandUseType(h.DB, input.Name, input.Description)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, landUse, fiber.StatusCreated)
}

// ListLandUseTypes handles GET /api/catalog/land-use-types
// @Summary List land use types
// @Tags Reference
// @Produce json
// @Success 200 {array} models.LandUseType
// @Router /catalog/land-use-types [get]
func (h *ReferenceHandler) ListLandUseTypes(c *fiber.Ctx) error {
	landUses, err := services.ListLandUseTypes(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, landUses, fiber.StatusOK)
}

// DeleteLandUseType handles DELETE /api/catalog/land-use-types/:id
// @Summary Delete a land use type
// @Tags Reference
// @Produce json
// @Param id path int true "Land use type id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/land-use-types/{id} [delete]
func (h *ReferenceHandler) DeleteLandUseType(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteLandUseType")
	}
	if err := services.DeleteLandUseType(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLandCategory handles POST /api/catalog/land-categories
// @Summary Create a land category
// @Tags Reference
// @Accept json
// @Produce json
// @Success 201 {object} models.LandCategory
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/land-categories [post]
func (h *ReferenceHandler) CreateLandCategory(c *fiber.Ctx) error {
	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createLandCategory")
	}
	category, err := services.CreateLandCategory(h.DB, input.Name)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, category, fiber.StatusCreated)
}

// ListLandCategories handles GET /api/catalog/land-categories
// @Summary List land categories
// @Tags Reference
// @Produce json
// @Success 200 {array} models.LandCategory
// @Router /catalog/land-categories [get]
func (h *ReferenceHandler) ListLandCategories(c *fiber.Ctx) error {
	categories, err := services.ListLandCategories(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, categories, fiber.StatusOK)
}

// DeleteLandCategory handles DELETE /api/catalog/land-categories/:id
// @Summary Delete an unused land category
// @Tags Reference
// @Produce json
// @Param id path int true "Land category id"
// @Success 204
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /catalog/land-categories/{id} [delete]
func (h *ReferenceHandler) DeleteLandCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteLandCategory")
	}
	if err := services.DeleteLandCategory(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
