package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// QuizHandler handles quiz routes
type QuizHandler struct {
	DB *gorm.DB
}

// ListQuizzes handles GET /api/quizzes
// @Summary List quizzes
// @Description Public callers see active quizzes only; all=true lists everything
// @Tags Quizzes
// @Produce json
// @Param all query bool false "Include inactive quizzes"
// @Success 200 {array} models.Quiz
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	activeOnly := c.Query("all") != "true"
	quizzes, err := services.ListQuizzes(h.DB, activeOnly)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, quizzes, fiber.StatusOK)
}

// GetQuiz handles GET /api/quizzes/:identifier
// @Summary Get a quiz with its questions and answers
// @Tags Quizzes
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /quizzes/{identifier} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := services.GetQuiz(h.DB, c.Params("identifier"))
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, quiz, fiber.StatusOK)
}

// CreateQuiz handles POST /api/quizzes
// @Summary Create a quiz with its question tree
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param body body services.QuizInput true "Quiz payload"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var input services.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createQuiz")
	}

	quiz, err := services.CreateQuiz(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, quiz, fiber.StatusCreated)
}

// UpdateQuiz handles PATCH /api/quizzes/:identifier
// @Summary Partially update a quiz; a questions array replaces the stored set
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Param body body services.QuizInput true "Fields to change"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /quizzes/{identifier} [patch]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var input services.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateQuiz")
	}

	quiz, err := services.UpdateQuiz(h.DB, c.Params("identifier"), input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, quiz, fiber.StatusOK)
}

// DeleteQuiz handles DELETE /api/quizzes/:identifier
// @Summary Delete a quiz with its questions and answers
// @Tags Quizzes
// @Produce json
// @Param identifier path string true "Numeric id or slug"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /quizzes/{identifier} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := services.DeleteQuiz(h.DB, c.Params("identifier")); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
