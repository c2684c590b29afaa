package models

import (
	"time"
)

// Quiz is a lead-capture questionnaire shown on the site.
type Quiz struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// TableName overrides the table name for Quiz
func (Quiz) TableName() string {
	return "quizzes"
}

// Question belongs to a quiz, displayed in SortOrder.
type Question struct {
	ID        uint64   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID    uint64   `gorm:"not null;index" json:"quiz_id"`
	Text      string   `gorm:"type:text;not null" json:"text"`
	SortOrder uint     `gorm:"not null;default:0" json:"order"`
	Answers   []Answer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TableName overrides the table name for Question
func (Question) TableName() string {
	return "quiz_questions"
}

// Answer is one selectable option of a question.
type Answer struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint64 `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	SortOrder  uint   `gorm:"not null;default:0" json:"order"`
}

// TableName overrides the table name for Answer
func (Answer) TableName() string {
	return "quiz_answers"
}
