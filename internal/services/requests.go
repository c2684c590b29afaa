package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

var requestTypes = map[string]bool{
	models.RequestTypeQuiz:    true,
	models.RequestTypeContact: true,
	models.RequestTypeListing: true,
}

var requestStatuses = map[string]bool{
	models.RequestStatusNew:        true,
	models.RequestStatusProcessing: true,
	models.RequestStatusCompleted:  true,
	models.RequestStatusRejected:   true,
}

// RequestInput is the public write payload for an inbound request.
type RequestInput struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	RequestType string            `json:"request_type"`
	Namespace   *string           `json:"namespace"`
	Model       *string           `json:"model"`
	ObjectID    *types.FlexUint64 `json:"object_id"`
	QuizAnswers json.RawMessage   `json:"quiz_answers"`
	UserMessage string            `json:"user_message"`
}

// CreateRequest stores an inbound request. The polymorphic reference must be
// either fully absent or a complete (namespace, model, object_id) triple that
// points at an existing record.
func CreateRequest(db *gorm.DB, input RequestInput) (*models.Request, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, types.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, types.NewValidationError("phone", "phone is required")
	}
	if !requestTypes[input.RequestType] {
		return nil, types.NewValidationError("request_type",
			fmt.Sprintf("unknown request type '%s'", input.RequestType))
	}

	req := models.Request{
		Name:        strings.TrimSpace(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		RequestType: input.RequestType,
		Status:      models.RequestStatusNew,
		UserMessage: input.UserMessage,
	}

	hasAny := input.Namespace != nil || input.Model != nil || input.ObjectID != nil
	hasAll := input.Namespace != nil && input.Model != nil && input.ObjectID != nil
	if hasAny && !hasAll {
		return nil, types.NewInvalidRequestError("namespace, model and object_id must be provided together")
	}
	if hasAll {
		objectID := input.ObjectID.Uint64()
		exists, err := entityExists(db, *input.Namespace, *input.Model, objectID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, types.NewNotFoundError(fmt.Sprintf("%s/%s with id %d not found",
				*input.Namespace, *input.Model, objectID))
		}
		req.Namespace = input.Namespace
		req.ModelName = input.Model
		req.ObjectID = &objectID
	}

	if len(input.QuizAnswers) > 0 && string(input.QuizAnswers) != "null" {
		if !json.Valid(input.QuizAnswers) {
			return nil, types.NewValidationError("quiz_answers", "quiz_answers must be valid JSON")
		}
		req.QuizAnswers = []byte(input.QuizAnswers)
	}

	if err := db.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRequest loads a request with its admin comments.
func GetRequest(db *gorm.DB, id uint64) (*models.Request, error) {
	var req models.Request
	err := db.Preload("AdminComments", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at")
	}).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("request %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus moves a request through its workflow states.
func UpdateRequestStatus(db *gorm.DB, id uint64, status string) (*models.Request, error) {
	if !requestStatuses[status] {
		return nil, types.NewValidationError("status", fmt.Sprintf("unknown status '%s'", status))
	}
	req, err := GetRequest(db, id)
	if err != nil {
		return nil, err
	}
	req.Status = status
	if err := db.Model(&models.Request{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// AddAdminComment appends a back-office note to a request.
func AddAdminComment(db *gorm.DB, requestID uint64, author, comment string) (*models.AdminComment, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, types.NewValidationError("comment", "comment is required")
	}
	if _, err := GetRequest(db, requestID); err != nil {
		return nil, err
	}
	note := models.AdminComment{
		RequestID: requestID,
		Author:    strings.TrimSpace(author),
		Comment:   comment,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListRequestsQuery carries the admin list filters.
type ListRequestsQuery struct {
	Page        int
	PageSize    int
	RequestType string
	Status      string
	Search      string
}

// ListRequests returns requests newest first for the back office.
func ListRequests(db *gorm.DB, q ListRequestsQuery) ([]models.Request, int64, error) {
	query := db.Model(&models.Request{})
	if q.RequestType != "" {
		query = query.Where("request_type = ?", q.RequestType)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		needle := "%" + lowered(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?",
			needle, needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaging(query.Order("created_at DESC"), q.Page, q.PageSize)

	var requests []models.Request
	if err := query.Preload("AdminComments").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ResolveRequestOwner loads the entity a request references. A nil entity with
// a nil error means the reference is set but the record no longer exists.
func ResolveRequestOwner(db *gorm.DB, req *models.Request) (any, error) {
	if req.Namespace == nil || req.ModelName == nil || req.ObjectID == nil {
		return nil, nil
	}
	return fetchEntity(db, *req.Namespace, *req.ModelName, *req.ObjectID)
}
