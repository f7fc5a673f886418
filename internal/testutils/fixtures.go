package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/model/article"
	"terminal-terrace/knowledge-base/internal/model/category"
)

// CreateTestCategory creates a category with a unique name
func CreateTestCategory(db *gorm.DB, opts ...CategoryOption) *category.Category {
	cat := &category.Category{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("test_category_%s", uuid.New().String()),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(cat)
	}

	if err := db.Create(cat).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test category: %v", err))
	}

	return cat
}

// CategoryOption configures test category
type CategoryOption func(*category.Category)

// WithName sets the category name
func WithName(name string) CategoryOption {
	return func(c *category.Category) {
		c.Name = name
	}
}

// WithParent sets the parent category id
func WithParent(parentID string) CategoryOption {
	return func(c *category.Category) {
		c.ParentID = &parentID
	}
}

// WithColor sets the category color
func WithColor(color string) CategoryOption {
	return func(c *category.Category) {
		c.Color = color
	}
}

// CreateTestArticle creates an article directly in the store (no history)
func CreateTestArticle(db *gorm.DB, opts ...ArticleOption) *article.Article {
	art := &article.Article{
		ID:        uuid.New().String(),
		Title:     fmt.Sprintf("test article %s", uuid.New().String()),
		Content:   "test content",
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(art)
	}

	if err := db.Create(art).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	return art
}

// ArticleOption configures test article
type ArticleOption func(*article.Article)

// WithTitle sets the article title
func WithTitle(title string) ArticleOption {
	return func(a *article.Article) {
		a.Title = title
	}
}

// WithContent sets the article content
func WithContent(content string) ArticleOption {
	return func(a *article.Article) {
		a.Content = content
	}
}

// WithRawTags sets the stored tags text as-is (for forgiving-read tests)
func WithRawTags(raw string) ArticleOption {
	return func(a *article.Article) {
		a.Tags = raw
	}
}
