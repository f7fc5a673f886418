package article_test

import (
	"testing"

	"gorm.io/gorm"

	articlePkg "terminal-terrace/knowledge-base/internal/article"
	categoryPkg "terminal-terrace/knowledge-base/internal/category"
	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/internal/testutils"
)

// setupArticleService 创建 ArticleService 实例用于测试
func setupArticleService(t *testing.T) (*articlePkg.ArticleService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	return articlePkg.NewArticleService(db), db
}

// setupCategoryService 创建 CategoryService 实例（文章测试需要真实分类）
func setupCategoryService(db *gorm.DB) *categoryPkg.CategoryService {
	return categoryPkg.NewCategoryService(db)
}

func strPtr(s string) *string {
	return &s
}

func tagsPtr(tags ...string) *dto.StringSlice {
	s := dto.StringSlice(tags)
	return &s
}
