package models

import (
	"time"
)

// Request types and statuses
const (
	RequestTypeQuiz    = "quiz"
	RequestTypeContact = "contact"
	RequestTypeListing = "listing"

	RequestStatusNew        = "new"
	RequestStatusProcessing = "processing"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

// Request is an inbound sales request. It may reference the listing or quiz
// it originated from through the polymorphic triple; the triple is nullable
// because contact-form requests reference nothing.
type Request struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Phone       string    `gorm:"size:20;not null" json:"phone"`
	Email       string    `gorm:"size:254" json:"email,omitempty"`
	RequestType string    `gorm:"size:10;not null" json:"request_type"`
	Status      string    `gorm:"size:15;not null;default:new;index" json:"status"`
	Namespace   *string   `gorm:"size:100;index:idx_request_owner" json:"namespace,omitempty"`
	ModelName   *string   `gorm:"size:100;index:idx_request_owner" json:"model,omitempty"`
	ObjectID    *uint64   `gorm:"index:idx_request_owner" json:"object_id,omitempty"`
	QuizAnswers JSON      `json:"quiz_answers,omitempty"`
	UserMessage string    `gorm:"type:text" json:"user_message,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	AdminComments []AdminComment `gorm:"constraint:OnDelete:CASCADE" json:"admin_comments,omitempty"`
}

// TableName overrides the table name for Request
func (Request) TableName() string {
	return "requests"
}

// AdminComment is a back-office note on a request.
type AdminComment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID uint64    `gorm:"not null;index" json:"request_id"`
	Author    string    `gorm:"size:150" json:"author"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for AdminComment
func (AdminComment) TableName() string {
	return "admin_comments"
}
