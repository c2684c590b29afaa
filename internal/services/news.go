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

// NewsCategoryInput is the write payload for a news category.
type NewsCategoryInput struct {
	Name string  `json:"name"`
	Slug *string `json:"slug"`
}

// CreateNewsCategory adds a category with a probe-derived unique slug.
func CreateNewsCategory(db *gorm.DB, input NewsCategoryInput) (*models.NewsCategory, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, types.NewValidationError("name", "name is required")
	}
	source := input.Name
	if input.Slug != nil && *input.Slug != "" {
		source = *input.Slug
	}
	slugValue, err := uniqueSlug(db, &models.NewsCategory{}, source, "category", 0)
	if err != nil {
		return nil, err
	}
	category := models.NewsCategory{Name: strings.TrimSpace(input.Name), Slug: slugValue}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListNewsCategories returns all categories ordered by name.
func ListNewsCategories(db *gorm.DB) ([]models.NewsCategory, error) {
	var categories []models.NewsCategory
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteNewsCategory removes a category; articles keep their rows with the
// category reference cleared.
func DeleteNewsCategory(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.NewsArticle{}).Where("category_id = ?", id).Update("category_id", nil)
		if result.Error != nil {
			return result.Error
		}
		deleted := tx.Delete(&models.NewsCategory{}, id)
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			return types.NewNotFoundError(fmt.Sprintf("news category %d not found", id))
		}
		return nil
	})
}

// NewsArticleInput is the write payload for a news article.
type NewsArticleInput struct {
	Title      *string           `json:"title"`
	Content    *string           `json:"content"`
	ImagePath  *string           `json:"image_path"`
	CategoryID *types.FlexUint64 `json:"category_id"`
}

// CreateNewsArticle validates the category reference and persists the article.
func CreateNewsArticle(db *gorm.DB, input NewsArticleInput) (*models.NewsArticle, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if input.Content == nil || strings.TrimSpace(*input.Content) == "" {
		return nil, types.NewValidationError("content", "content is required")
	}
	article := models.NewsArticle{
		Title:   strings.TrimSpace(*input.Title),
		Content: *input.Content,
	}
	if input.ImagePath != nil {
		article.ImagePath = *input.ImagePath
	}
	if input.CategoryID != nil {
		id := input.CategoryID.Uint64()
		if err := referenceExists(db, &models.NewsCategory{}, id, "category_id"); err != nil {
			return nil, err
		}
		article.CategoryID = &id
	}
	if err := db.Create(&article).Error; err != nil {
		return nil, err
	}
	return GetNewsArticle(db, article.ID)
}

// UpdateNewsArticle applies a partial update.
func UpdateNewsArticle(db *gorm.DB, id uint64, input NewsArticleInput) (*models.NewsArticle, error) {
	article, err := GetNewsArticle(db, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.ImagePath != nil {
		article.ImagePath = *input.ImagePath
	}
	if input.CategoryID != nil {
		catID := input.CategoryID.Uint64()
		if err := referenceExists(db, &models.NewsCategory{}, catID, "category_id"); err != nil {
			return nil, err
		}
		article.CategoryID = &catID
	}
	if err := db.Save(article).Error; err != nil {
		return nil, err
	}
	return GetNewsArticle(db, id)
}

// GetNewsArticle loads an article with its category.
func GetNewsArticle(db *gorm.DB, id uint64) (*models.NewsArticle, error) {
	var article models.NewsArticle
	err := db.Preload("Category").First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("news article %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteNewsArticle removes an article.
func DeleteNewsArticle(db *gorm.DB, id uint64) error {
	result := db.Delete(&models.NewsArticle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("news article %d not found", id))
	}
	return nil
}

// ListNewsQuery carries the news list filters.
type ListNewsQuery struct {
	Page     int
	PageSize int
	Category string
	Search   string
}

// ListNewsArticles returns articles newest first, optionally filtered by
// category id or slug.
func ListNewsArticles(db *gorm.DB, q ListNewsQuery) ([]models.NewsArticle, int64, error) {
	query := db.Model(&models.NewsArticle{}).Preload("Category")
	if q.Category != "" {
		if id, err := strconv.ParseUint(q.Category, 10, 64); err == nil {
			query = query.Where("category_id = ?", id)
		} else {
			query = query.Where("category_id IN (?)",
				db.Model(&models.NewsCategory{}).Select("id").Where("slug = ?", q.Category))
		}
	}
	if q.Search != "" {
		needle := "%" + lowered(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaging(query.Order("created_at DESC"), q.Page, q.PageSize)

	var articles []models.NewsArticle
	if err := query.Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
