package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// RequestHandler handles inbound sales request routes
type RequestHandler struct {
	DB *gorm.DB
}

// CreateRequest handles POST /api/requests
// @Summary Submit a sales request
// @Description The polymorphic reference must be fully absent or a complete namespace/model/object_id triple
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.RequestInput true "Request payload"
// @Success 201 {object} models.Request
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	var input services.RequestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "createRequest")
	}

	request, err := services.CreateRequest(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, request, fiber.StatusCreated)
}

// ListRequests handles GET /api/requests
// @Summary List requests for the back office
// @Tags Requests
// @Produce json
// @Param request_type query string false "Request type filter"
// @Param status query string false "Status filter"
// @Param search query string false "Name, phone or email substring"
// @Success 200 {object} map[string]interface{}
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	q := services.ListRequestsQuery{
		Page:        parsePage(c),
		PageSize:    parsePageSize(c),
		RequestType: c.Query("request_type"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
	}

	requests, total, err := services.ListRequests(h.DB, q)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.PagedResponse(c, requests, total, q.Page, q.PageSize)
}

// GetRequest handles GET /api/requests/:id
// @Summary Get a request with its admin comments
// @Tags Requests
// @Produce json
// @Param id path int true "Request id"
// @Success 200 {object} models.Request
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "getRequest")
	}

	request, err := services.GetRequest(h.DB, id)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, request, fiber.StatusOK)
}

// GetRequestOwner handles GET /api/requests/:id/owner
// @Summary Resolve the entity a request references
// @Description Returns 410 when the referenced record has been deleted
// @Tags Requests
// @Produce json
// @Param id path int true "Request id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 410 {object} utils.ErrorResponseStruct
// @Router /requests/{id}/owner [get]
func (h *RequestHandler) GetRequestOwner(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "getRequestOwner")
	}

	request, err := services.GetRequest(h.DB, id)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	if request.Namespace == nil {
		return utils.ErrorResponse(c, "request references no entity", fiber.StatusNotFound, "getRequestOwner")
	}

	owner, err := services.ResolveRequestOwner(h.DB, request)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	if owner == nil {
		return utils.ErrorResponse(c, "referenced entity no longer exists", fiber.StatusGone, "getRequestOwner")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"namespace": request.Namespace,
		"model":     request.ModelName,
		"object_id": request.ObjectID,
		"owner":     owner,
	}, fiber.StatusOK)
}

type statusInput struct {
	Status string `json:"status"`
}

// UpdateRequestStatus handles PATCH /api/requests/:id/status
// @Summary Move a request through its workflow
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request id"
// @Param body body statusInput true "New status"
// @Success 200 {object} models.Request
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "updateRequestStatus")
	}
	var input statusInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "updateRequestStatus")
	}

	request, err := services.UpdateRequestStatus(h.DB, id, input.Status)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, request, fiber.StatusOK)
}

type commentInput struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

// AddComment handles POST /api/requests/:id/comments
// @Summary Append a back-office note to a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request id"
// @Param body body commentInput true "Comment"
// @Success 201 {object} models.AdminComment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{id}/comments [post]
func (h *RequestHandler) AddComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "addComment")
	}
	var input commentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid JSON body", fiber.StatusBadRequest, "addComment")
	}

	author := input.Author
	if author == "" {
		if user, ok := c.Locals("user").(string); ok {
			author = user
		}
	}

	comment, err := services.AddAdminComment(h.DB, id, author, input.Comment)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, comment, fiber.StatusCreated)
}
