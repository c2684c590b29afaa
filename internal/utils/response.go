package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zemlex/estate-catalog/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// PagedResponse wraps a list payload with its total count and paging window.
func PagedResponse(c *fiber.Ctx, items interface{}, total int64, page, pageSize int) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":     total,
		"page":      page,
		"page_size": pageSize,
		"results":   items,
	})
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ValidationErrorResponse sends a 400 keyed by the failing field.
func ValidationErrorResponse(c *fiber.Ctx, field, message string) error {
	if field == "" {
		field = "detail"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		field: message,
	})
}

// CatalogErrorResponse maps a domain error onto the wire.
func CatalogErrorResponse(c *fiber.Ctx, err error) error {
	var catalogErr *types.CatalogError
	if !errors.As(err, &catalogErr) {
		return ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, string(types.KindInternal))
	}

	switch catalogErr.Kind {
	case types.KindValidation:
		return ValidationErrorResponse(c, catalogErr.Field, catalogErr.Message)
	case types.KindInvalidRequest:
		return ErrorResponse(c, catalogErr.Message, fiber.StatusBadRequest, string(catalogErr.Kind))
	case types.KindNotFound:
		return ErrorResponse(c, catalogErr.Message, fiber.StatusNotFound, string(catalogErr.Kind))
	case types.KindConflict:
		return ErrorResponse(c, catalogErr.Message, fiber.StatusConflict, string(catalogErr.Kind))
	case types.KindGone:
		return ErrorResponse(c, catalogErr.Message, fiber.StatusGone, string(catalogErr.Kind))
	default:
		return ErrorResponse(c, catalogErr.Message, fiber.StatusInternalServerError, string(catalogErr.Kind))
	}
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}
