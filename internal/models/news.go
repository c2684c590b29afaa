package models

import (
	"time"
)

// NewsCategory groups news articles.
type NewsCategory struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:120;not null" json:"slug"`
}

// TableName overrides the table name for NewsCategory
func (NewsCategory) TableName() string {
	return "news_categories"
}

// NewsArticle carries a view counter and participates in the generic
// entity resolver under the "news" namespace.
type NewsArticle struct {
	ID         uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string        `gorm:"size:200;not null" json:"title"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	ImagePath  string        `gorm:"size:512" json:"image_path,omitempty"`
	CategoryID *uint64       `gorm:"index" json:"category_id,omitempty"`
	Category   *NewsCategory `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	CreatedAt  time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ViewCount  uint64        `gorm:"not null;default:0" json:"view_count"`
}

// TableName overrides the table name for NewsArticle
func (NewsArticle) TableName() string {
	return "news_articles"
}
