package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// LandPlotHandler handles land plot routes
type LandPlotHandler struct {
	DB *gorm.DB
}

// CreateLandPlot handles POST /api/catalog/land-plots
// @Summary Create a land plot
// @Description Derives price or price-per-are from the other when only one is supplied
// @Tags LandPlots
// @Accept json
// @Produce json
// @Param body body services.LandPlotInput true "Land plot payload"
// @Success 201 {object} services.LandPlotView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /catalog/land-plots [post]
func (h *LandPlotHandler) CreateLandPlot(c *fiber.Ctx) error {
	var input services.LandPlotInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createLandPlot")
	}

	view, err := services.CreateLandPlot(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusCreated)
}

// UpdateLandPlot handles PATCH /api/catalog/land-plots/:identifier
// @Summary Partially update a land plot
// @Tags LandPlots
// @Accept json
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Param body body services.LandPlotInput true "Fields to change"
// @Success 200 {object} services.LandPlotView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/land-plots/{identifier} [patch]
func (h *LandPlotHandler) UpdateLandPlot(c *fiber.Ctx) error {
	var input services.LandPlotInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateLandPlot")
	}

	view, err := services.UpdateLandPlot(h.DB, c.Params("identifier"), input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// GetLandPlot handles GET /api/catalog/land-plots/:identifier
// @Summary Get a land plot by id or slug
// @Tags LandPlots
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 200 {object} services.LandPlotView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/land-plots/{identifier} [get]
func (h *LandPlotHandler) GetLandPlot(c *fiber.Ctx) error {
	view, err := services.GetLandPlot(h.DB, c.Params("identifier"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// DeleteLandPlot handles DELETE /api/catalog/land-plots/:identifier
// @Summary Delete a land plot
// @Tags LandPlots
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/land-plots/{identifier} [delete]
func (h *LandPlotHandler) DeleteLandPlot(c *fiber.Ctx) error {
	if err := services.DeleteLandPlot(h.DB, c.Params("identifier")); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLandPlots handles GET /api/catalog/land-plots
// @Summary List land plots
// @Tags LandPlots
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param ordering query string false "Ordering field, - prefix for descending"
// @Param area_min query number false "Minimum area"
// @Param area_max query number false "Maximum area"
// @Param price_min query number false "Minimum price"
// @Param price_max query number false "Maximum price"
// @Param plot_status query string false "Plot status"
// @Param land_category query int false "Land category id"
// @Param land_use_types query string false "Land use type ids, repeated or comma-separated"
// @Param features query string false "Feature ids, repeated or comma-separated"
// @Param search query string false "Free text search"
// @Success 200 {object} map[string]interface{}
// @Router /catalog/land-plots [get]
func (h *LandPlotHandler) ListLandPlots(c *fiber.Ctx) error {
	q := services.ListLandPlotsQuery{
		Page:             parsePage(c),
		PageSize:         parsePageSize(c),
		Ordering:         c.Query("ordering"),
		Search:           c.Query("search"),
		PriceMin:         c.Query("price_min"),
		PriceMax:         c.Query("price_max"),
		AreaMin:          c.Query("area_min"),
		AreaMax:          c.Query("area_max"),
		ListingStatus:    c.Query("listing_status"),
		PlotStatus:       c.Query("plot_status"),
		LandCategoryID:   c.Query("land_category"),
		LandUseTypeIDs:   parseIDList(c, "land_use_types"),
		FeatureIDs:       parseIDList(c, "features"),
		LocationRegion:   c.Query("region"),
		LocationLocality: c.Query("locality"),
	}

	views, total, err := services.ListLandPlots(h.DB, q)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.PagedResponse(c, views, total, q.Page, q.PageSize)
}
