package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// AnalyticsHandler handles view counting and request statistics routes
type AnalyticsHandler struct {
	DB *gorm.DB
}

type viewInput struct {
	Namespace  string `json:"namespace"`
	Model      string `json:"model"`
	Identifier string `json:"identifier"`
}

// RecordView handles POST /api/analytics/view
// @Summary Record a view of an entity
// @Description Resolves the target by namespace, model and id-or-slug, then bumps its counter atomically
// @Tags Analytics
// @Accept json
// @Produce json
// @Param body body viewInput true "View target"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /analytics/view [post]
func (h *AnalyticsHandler) RecordView(c *fiber.Ctx) error {
	var input viewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "recordView")
	}

	if err := services.IncrementViewCount(h.DB, input.Namespace, input.Model, input.Identifier); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestsByType handles GET /api/analytics/requests/by-type
// @Summary Request counts grouped by request type
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /analytics/requests/by-type [get]
func (h *AnalyticsHandler) RequestsByType(c *fiber.Ctx) error {
	counts, err := services.RequestsByType(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, counts, fiber.StatusOK)
}

// RequestsByStatus handles GET /api/analytics/requests/by-status
// @Summary Request counts grouped by workflow status
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /analytics/requests/by-status [get]
func (h *AnalyticsHandler) RequestsByStatus(c *fiber.Ctx) error {
	counts, err := services.RequestsByStatus(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, counts, fiber.StatusOK)
}
