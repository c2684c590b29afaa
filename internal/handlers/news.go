package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// NewsHandler handles news article and category routes
type NewsHandler struct {
	DB *gorm.DB
}

// ListArticles handles GET /api/news
// @Summary List news articles
// @Tags News
// @Produce json
// @Param category query string false "Category id or slug"
// @Param search query string false "Title or content substring"
// @Success 200 {object} map[string]interface{}
// @Router /news [get]
func (h *NewsHandler) ListArticles(c *fiber.Ctx) error {
	q := services.ListNewsQuery{
		Page:     parsePage(c),
		PageSize: parsePageSize(c),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	articles, total, err := services.ListNewsArticles(h.DB, q)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.PagedResponse(c, articles, total, q.Page, q.PageSize)
}

// GetArticle handles GET /api/news/:id
// @Summary Get a news article
// @Tags News
// @Produce json
// @Param id path int true "Article id"
// @Success 200 {object} models.NewsArticle
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /news/{id} [get]
func (h *NewsHandler) GetArticle(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "getArticle")
	}

	article, err := services.GetNewsArticle(h.DB, id)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, article, fiber.StatusOK)
}

// CreateArticle handles POST /api/news
// @Summary Create a news article
// @Tags News
// @Accept json
// @Produce json
// @Param body body services.NewsArticleInput true "Article payload"
// @Success 201 {object} models.NewsArticle
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /news [post]
func (h *NewsHandler) CreateArticle(c *fiber.Ctx) error {
	var input services.NewsArticleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createArticle")
	}

	article, err := services.CreateNewsArticle(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, article, fiber.StatusCreated)
}

// UpdateArticle handles PATCH /api/news/:id
// @Summary Partially update a news article
// @Tags News
// @Accept json
// @Produce json
// @Param id path int true "Article id"
// @Param body body services.NewsArticleInput true "Fields to change"
// @Success 200 {object} models.NewsArticle
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /news/{id} [patch]
func (h *NewsHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "updateArticle")
	}
	var input services.NewsArticleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateArticle")
	}

	article, err := services.UpdateNewsArticle(h.DB, id, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, article, fiber.StatusOK)
}

// DeleteArticle handles DELETE /api/news/:id
// @Summary Delete a news article
// @Tags News
// @Produce json
// @Param id path int true "Article id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /news/{id} [delete]
func (h *NewsHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteArticle")
	}
	if err := services.DeleteNewsArticle(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories handles GET /api/news/categories
// @Summary List news categories
// @Tags News
// @Produce json
// @Success 200 {array} models.NewsCategory
// @Router /news/categories [get]
func (h *NewsHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := services.ListNewsCategories(h.DB)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, categories, fiber.StatusOK)
}

// CreateCategory handles POST /api/news/categories
// @Summary Create a news category
// @Tags News
// @Accept json
// @Produce json
// @Param body body services.NewsCategoryInput true "Category payload"
// @Success 201 {object} models.NewsCategory
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /news/categories [post]
func (h *NewsHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.NewsCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createCategory")
	}

	category, err := services.CreateNewsCategory(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, category, fiber.StatusCreated)
}

// DeleteCategory handles DELETE /api/news/categories/:id
// @Summary Delete a news category, detaching its articles
// @Tags News
// @Produce json
// @Param id path int true "Category id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /news/categories/{id} [delete]
func (h *NewsHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteCategory")
	}
	if err := services.DeleteNewsCategory(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
