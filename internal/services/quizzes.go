package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

// AnswerInput is one selectable option of a question.
type AnswerInput struct {
	Text      string `json:"text"`
	SortOrder uint   `json:"order"`
}

// QuestionInput carries a question and its options.
type QuestionInput struct {
	Text      string        `json:"text"`
	SortOrder uint          `json:"order"`
	Answers   []AnswerInput `json:"answers"`
}

// QuizInput is the write payload for a quiz. Questions, when present,
// replace the stored set wholesale.
type QuizInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
	Questions   []QuestionInput `json:"questions"`
}

// CreateQuiz persists a quiz with its question tree in one transaction.
func CreateQuiz(db *gorm.DB, input QuizInput) (*models.Quiz, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if err := validateQuestions(input.Questions); err != nil {
		return nil, err
	}

	quiz := models.Quiz{Title: strings.TrimSpace(*input.Title)}
	if input.Description != nil {
		quiz.Description = *input.Description
	}
	if input.IsActive != nil {
		quiz.IsActive = *input.IsActive
	}

	slugValue, err := uniqueSlug(db, &models.Quiz{}, quiz.Title, "quiz", 0)
	if err != nil {
		return nil, err
	}
	quiz.Slug = slugValue

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		return replaceQuestions(tx, quiz.ID, input.Questions)
	})
	if err != nil {
		return nil, err
	}
	return GetQuiz(db, quiz.Slug)
}

// UpdateQuiz applies a partial update; a non-nil Questions slice replaces
// every stored question and answer. The slug stays stable.
func UpdateQuiz(db *gorm.DB, identifier string, input QuizInput) (*models.Quiz, error) {
	quiz, err := findQuiz(db, identifier)
	if err != nil {
		return nil, err
	}
	if input.Questions != nil {
		if err := validateQuestions(input.Questions); err != nil {
			return nil, err
		}
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		quiz.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		quiz.Description = *input.Description
	}
	if input.IsActive != nil {
		quiz.IsActive = *input.IsActive
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(quiz).Error; err != nil {
			return err
		}
		if input.Questions != nil {
			if err := deleteQuestions(tx, quiz.ID); err != nil {
				return err
			}
			return replaceQuestions(tx, quiz.ID, input.Questions)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetQuiz(db, quiz.Slug)
}

// GetQuiz resolves a quiz by primary key or slug with its full question tree.
func GetQuiz(db *gorm.DB, identifier string) (*models.Quiz, error) {
	return findQuiz(db, identifier, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Questions", func(qq *gorm.DB) *gorm.DB {
			return qq.Order("sort_order")
		}).Preload("Questions.Answers", func(qq *gorm.DB) *gorm.DB {
			return qq.Order("sort_order")
		})
	})
}

// DeleteQuiz removes a quiz with its questions and answers.
func DeleteQuiz(db *gorm.DB, identifier string) error {
	quiz, err := findQuiz(db, identifier)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuestions(tx, quiz.ID); err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quiz.ID).Error
	})
}

// ListQuizzes returns quizzes newest first. activeOnly limits the public
// listing to quizzes switched on by the back office.
func ListQuizzes(db *gorm.DB, activeOnly bool) ([]models.Quiz, error) {
	query := db.Preload("Questions", func(q *gorm.DB) *gorm.DB {
		return q.Order("sort_order")
	}).Preload("Questions.Answers", func(q *gorm.DB) *gorm.DB {
		return q.Order("sort_order")
	}).Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func validateQuestions(questions []QuestionInput) error {
	for i, question := range questions {
		if strings.TrimSpace(question.Text) == "" {
			return types.NewValidationError("questions",
				fmt.Sprintf("question %d has no text", i+1))
		}
		for j, answer := range question.Answers {
			if strings.TrimSpace(answer.Text) == "" {
				return types.NewValidationError("questions",
					fmt.Sprintf("question %d answer %d has no text", i+1, j+1))
			}
		}
	}
	return nil
}

func replaceQuestions(tx *gorm.DB, quizID uint64, questions []QuestionInput) error {
	for _, input := range questions {
		question := models.Question{
			QuizID:    quizID,
			Text:      input.Text,
			SortOrder: input.SortOrder,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, answerInput := range input.Answers {
			answer := models.Answer{
				QuestionID: question.ID,
				Text:       answerInput.Text,
				SortOrder:  answerInput.SortOrder,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func deleteQuestions(tx *gorm.DB, quizID uint64) error {
	var questionIDs []uint64
	if err := tx.Model(&models.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error
}

func findQuiz(db *gorm.DB, identifier string, scopes ...func(*gorm.DB) *gorm.DB) (*models.Quiz, error) {
	query := db
	for _, scope := range scopes {
		query = scope(query)
	}

	var quiz models.Quiz
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = query.First(&quiz, id).Error
	} else {
		err = query.Where("slug = ?", identifier).First(&quiz).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("quiz '%s' not found", identifier))
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
