// Package article 文章相关模型
package article

import (
	"time"

	"terminal-terrace/knowledge-base/internal/model/category"
)

// ChangeType 文章历史变更类型（封闭集合，不接受自由文本）
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Article 文章表
type Article struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title string `gorm:"type:varchar(200);not null;index" json:"title"`
	// Markdown原文
	Content string `gorm:"type:text;not null" json:"content"`
	// 标签以JSON字符串存储，读取时反序列化；解析失败降级为空列表
	Tags      string    `gorm:"type:text" json:"tags"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 文章-分类多对多关联（无序集合，无重复）
	Categories []category.Category `gorm:"many2many:article_categories" json:"categories,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

// ArticleHistory 文章历史表（只追加，写入后不可变）
// 历史随文章级联删除：删除文章时会先写入一条 deleted 记录，
// 随后该记录与其余历史一并被移除（与原系统行为一致）。
type ArticleHistory struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ArticleID  string     `gorm:"type:varchar(36);not null;index" json:"article_id"`
	Title      string     `gorm:"type:varchar(200);not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Version    int        `gorm:"not null" json:"version"`
	ChangeType ChangeType `gorm:"type:varchar(20);not null" json:"change_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ArticleHistory) TableName() string {
	return "article_history"
}

// SearchIndex 搜索索引表
// 在文章写入时同步维护（小写分词文本），当前搜索实现仍直接扫描文章表，
// 该表为后续替换搜索引擎预留。
type SearchIndex struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ArticleID     string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"article_id"`
	TitleTokens   string    `gorm:"type:text;not null" json:"title_tokens"`
	ContentTokens string    `gorm:"type:text;not null" json:"content_tokens"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SearchIndex) TableName() string {
	return "search_index"
}
