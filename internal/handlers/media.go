package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/services"
	"github.com/zemlex/estate-catalog/internal/utils"
)

// MediaHandler handles media upload and management routes
type MediaHandler struct {
	DB        *gorm.DB
	MediaRoot string
}

// UploadMedia handles POST /api/media
// @Summary Upload a media file and attach it to an entity
// @Description Multipart form: file plus namespace, model and object_id identifying the owner
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param namespace formData string true "Owner namespace"
// @Param model formData string true "Owner model"
// @Param object_id formData int true "Owner id"
// @Param type formData string false "Media type: image, video, document, plan"
// @Param is_main formData bool false "Main media flag"
// @Param order formData int false "Sort order"
// @Param description formData string false "Description"
// @Success 201 {object} models.MediaFile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /media [post]
func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "file is required", fiber.StatusBadRequest, "uploadMedia")
	}

	objectID, err := strconv.ParseUint(c.FormValue("object_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "object_id must be a positive integer", fiber.StatusBadRequest, "uploadMedia")
	}

	sortOrder, _ := strconv.ParseUint(c.FormValue("order", "0"), 10, 32)
	isMain, _ := strconv.ParseBool(c.FormValue("is_main", "false"))

	// Stored name is opaque; the original name is kept as metadata only.
	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	relPath := filepath.Join(c.FormValue("namespace"), c.FormValue("model"), storedName)
	absPath := filepath.Join(h.MediaRoot, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("cannot prepare media dir: %v", err),
			fiber.StatusInternalServerError, "uploadMedia")
	}

	input := services.MediaInput{
		Namespace:   c.FormValue("namespace"),
		ModelName:   c.FormValue("model"),
		ObjectID:    objectID,
		FileName:    fileHeader.Filename,
		FilePath:    relPath,
		MediaType:   c.FormValue("type"),
		IsMain:      isMain,
		SortOrder:   uint(sortOrder),
		Description: c.FormValue("description"),
	}

	// Validate the owner before writing bytes to disk.
	media, err := services.AttachMedia(h.DB, input)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}

	if err := c.SaveFile(fileHeader, absPath); err != nil {
		_ = services.DeleteMediaFile(h.DB, media.ID)
		return utils.ErrorResponse(c, fmt.Sprintf("cannot store file: %v", err),
			fiber.StatusInternalServerError, "uploadMedia")
	}

	return utils.SuccessResponse(c, media, fiber.StatusCreated)
}

// ListMedia handles GET /api/media
// @Summary List media attached to an entity
// @Tags Media
// @Produce json
// @Param namespace query string true "Owner namespace"
// @Param model query string true "Owner model"
// @Param object_id query int true "Owner id"
// @Success 200 {array} models.MediaFile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /media [get]
func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	objectID, err := strconv.ParseUint(c.Query("object_id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "object_id must be a positive integer", fiber.StatusBadRequest, "listMedia")
	}

	media, err := services.ListMedia(h.DB, c.Query("namespace"), c.Query("model"), objectID)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, media, fiber.StatusOK)
}

// GetMediaOwner handles GET /api/media/:id/owner
// @Summary Resolve the entity a media file belongs to
// @Description Returns 410 when the owning record has been deleted
// @Tags Media
// @Produce json
// @Param id path int true "Media file id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 410 {object} utils.ErrorResponseStruct
// @Router /media/{id}/owner [get]
func (h *MediaHandler) GetMediaOwner(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "getMediaOwner")
	}

	media, err := services.GetMediaFile(h.DB, id)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}

	owner, err := services.ResolveMediaOwner(h.DB, media)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	if owner == nil {
		return utils.ErrorResponse(c,
			fmt.Sprintf("owner of media %d no longer exists", id), fiber.StatusGone, "getMediaOwner")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"namespace": media.Namespace,
		"model":     media.ModelName,
		"object_id": media.ObjectID,
		"owner":     owner,
	}, fiber.StatusOK)
}

// DeleteMedia handles DELETE /api/media/:id
// @Summary Delete a media file record and its stored file
// @Tags Media
// @Produce json
// @Param id path int true "Media file id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return utils.ErrorResponse(c, "invalid id", fiber.StatusBadRequest, "deleteMedia")
	}

	media, err := services.GetMediaFile(h.DB, id)
	if err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	if err := services.DeleteMediaFile(h.DB, id); err != nil {
		return utils.CatalogErrorResponse(c, err)
	}
	// Best effort; a missing file on disk is not an API error.
	_ = os.Remove(filepath.Join(h.MediaRoot, media.FilePath))

	return c.SendStatus(fiber.StatusNoContent)
}
