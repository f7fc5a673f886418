package model

import (
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/model/article"
	"terminal-terrace/knowledge-base/internal/model/category"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	err := db.AutoMigrate(
		// 分类模型（文章的多对多关联表依赖它）
		&category.Category{},
		// 文章相关模型
		&article.Article{},
		&article.ArticleHistory{},
		&article.SearchIndex{},
	)
	if err != nil {
		return err
	}
	return nil
}
