package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
)

// HealthHandler handles the liveness endpoint
type HealthHandler struct {
	DB *gorm.DB
}

// GetHealth handles GET /api/health
// @Summary Service liveness and database reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthStatus
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	status := services.CheckHealth(h.DB)
	code := fiber.StatusOK
	if status.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}
