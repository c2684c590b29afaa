package types

import "fmt"

// Kind categorizes a CatalogError for transport mapping.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindInvalidRequest Kind = "invalid_request"
	KindConflict       Kind = "conflict"
	KindGone           Kind = "gone"
	KindInternal       Kind = "internal"
)

// CatalogError is the typed error returned by the service layer.
// Handlers translate Kind into an HTTP status; the service layer never
// decides transport codes itself.
type CatalogError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *CatalogError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError reports invalid user-supplied data, scoped to a field.
func NewValidationError(field, message string) *CatalogError {
	return &CatalogError{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError reports that an identifier did not resolve to a live row.
func NewNotFoundError(message string) *CatalogError {
	return &CatalogError{Kind: KindNotFound, Message: message}
}

// NewInvalidRequestError reports a structurally bad request: unregistered
// type, missing capability, unsupported identifier shape.
func NewInvalidRequestError(message string) *CatalogError {
	return &CatalogError{Kind: KindInvalidRequest, Message: message}
}

// NewConflictError reports a state conflict, e.g. deleting a property type
// that still has properties.
func NewConflictError(message string) *CatalogError {
	return &CatalogError{Kind: KindConflict, Message: message}
}

// IsKind reports whether err is a CatalogError of the given kind.
func IsKind(err error, kind Kind) bool {
	ce, ok := err.(*CatalogError)
	return ok && ce.Kind == kind
}
