package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// ContactHandler handles the company contact card routes
type ContactHandler struct {
	DB *gorm.DB
}

// GetContact handles GET /api/contacts
// @Summary Get the contact card with the weekly schedule
// @Tags Contacts
// @Produce json
// @Success 200 {object} models.Contact
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contacts [get]
func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	contact, err := services.GetContact(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, contact, fiber.StatusOK)
}

// UpsertContact handles PUT /api/contacts
// @Summary Create or update the contact card
// @Description A working_hours array replaces the stored schedule
// @Tags Contacts
// @Accept json
// @Produce json
// @Param body body services.ContactInput true "Contact payload"
// @Success 200 {object} models.Contact
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contacts [put]
func (h *ContactHandler) UpsertContact(c *fiber.Ctx) error {
	var input services.ContactInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "upsertContact")
	}

	contact, err := services.UpsertContact(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, contact, fiber.StatusOK)
}
