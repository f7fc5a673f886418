package article

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/model/article"
	"terminal-terrace/knowledge-base/internal/model/category"
)

// ArticleRepository 文章仓储层
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// WithTx 返回绑定到事务的仓储实例
func (r *ArticleRepository) WithTx(tx *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: tx}
}

// ===== Article 基础操作 =====

func (r *ArticleRepository) GetByID(id string) (*article.Article, error) {
	var art article.Article
	err := r.db.Preload("Categories").Where("id = ?", id).First(&art).Error
	if err != nil {
		return nil, err
	}
	return &art, nil
}

// List 按创建顺序返回文章列表
func (r *ArticleRepository) List(offset, limit int) ([]article.Article, error) {
	var articles []article.Article
	err := r.db.Preload("Categories").
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *ArticleRepository) Create(art *article.Article) error {
	return r.db.Create(art).Error
}

func (r *ArticleRepository) Save(art *article.Article) error {
	return r.db.Save(art).Error
}

func (r *ArticleRepository) Delete(id string) error {
	return r.db.Delete(&article.Article{}, "id = ?", id).Error
}

// ReplaceCategories 全量替换文章的分类关联（不做合并）
func (r *ArticleRepository) ReplaceCategories(art *article.Article, cats []category.Category) error {
	return r.db.Model(art).Association("Categories").Replace(cats)
}

// ClearCategories 清除文章的全部分类关联
func (r *ArticleRepository) ClearCategories(art *article.Article) error {
	return r.db.Model(art).Association("Categories").Clear()
}

// Search 关键词搜索
// 每个词语都必须出现在标题或正文中（词语间AND，标题/正文间OR），不区分大小写
func (r *ArticleRepository) Search(tokens []string, offset, limit int) ([]article.Article, error) {
	query := r.db.Preload("Categories").Model(&article.Article{})
	for _, token := range tokens {
		pattern := "%" + token + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var articles []article.Article
	err := query.Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

// HistoryRepository 文章历史仓储层
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) WithTx(tx *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

func (r *HistoryRepository) Create(h *article.ArticleHistory) error {
	return r.db.Create(h).Error
}

// ListByArticle 按时间倒序返回文章的全部历史（最新在前）
func (r *HistoryRepository) ListByArticle(articleID string) ([]article.ArticleHistory, error) {
	var history []article.ArticleHistory
	err := r.db.Where("article_id = ?", articleID).
		Order("created_at DESC, version DESC").
		Find(&history).Error
	return history, err
}

// DeleteByArticle 删除文章的全部历史记录
func (r *HistoryRepository) DeleteByArticle(articleID string) error {
	return r.db.Where("article_id = ?", articleID).
		Delete(&article.ArticleHistory{}).Error
}

// IndexRepository 搜索索引仓储层
// 索引在文章写入时同步维护，当前搜索不消费该表（为替换搜索引擎预留）
type IndexRepository struct {
	db *gorm.DB
}

func NewIndexRepository(db *gorm.DB) *IndexRepository {
	return &IndexRepository{db: db}
}

func (r *IndexRepository) WithTx(tx *gorm.DB) *IndexRepository {
	return &IndexRepository{db: tx}
}

// Upsert 写入或刷新文章的索引行
func (r *IndexRepository) Upsert(idx *article.SearchIndex) error {
	var existing article.SearchIndex
	err := r.db.Where("article_id = ?", idx.ArticleID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(idx).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Updates(map[string]any{
		"title_tokens":   idx.TitleTokens,
		"content_tokens": idx.ContentTokens,
	}).Error
}

// DeleteByArticle 删除文章的索引行
func (r *IndexRepository) DeleteByArticle(articleID string) error {
	return r.db.Where("article_id = ?", articleID).
		Delete(&article.SearchIndex{}).Error
}

// tokenize 小写化分词，供索引行使用
func tokenize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
