package article

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryPkg "terminal-terrace/knowledge-base/internal/category"
	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/internal/model/article"
	"terminal-terrace/knowledge-base/internal/model/category"
)

// ErrArticleNotFound 文章不存在
var ErrArticleNotFound = errors.New("article not found")

// 列表摘要长度（字符数）
const excerptLength = 200

type ArticleService struct {
	db           *gorm.DB
	articleRepo  *ArticleRepository
	historyRepo  *HistoryRepository
	indexRepo    *IndexRepository
	categoryRepo *categoryPkg.CategoryRepository
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{
		db:           db,
		articleRepo:  NewArticleRepository(db),
		historyRepo:  NewHistoryRepository(db),
		indexRepo:    NewIndexRepository(db),
		categoryRepo: categoryPkg.NewCategoryRepository(db),
	}
}

// Create 创建文章
// 文章、分类关联、索引行与 created 历史记录在同一事务中写入
func (s *ArticleService) Create(req dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	art := &article.Article{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      encodeTags(req.Tags),
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.WithTx(tx).Create(art); err != nil {
			return err
		}

		// 解析分类ID，不存在的ID被静默忽略
		if len(req.Categories) > 0 {
			cats, err := s.categoryRepo.WithTx(tx).FindByIDs(req.Categories)
			if err != nil {
				return err
			}
			if err := s.articleRepo.WithTx(tx).ReplaceCategories(art, cats); err != nil {
				return err
			}
			art.Categories = cats
		}

		if err := s.indexRepo.WithTx(tx).Upsert(buildIndexRow(art)); err != nil {
			return err
		}

		return s.historyRepo.WithTx(tx).Create(newHistoryRecord(art, article.ChangeCreated))
	})
	if err != nil {
		return nil, err
	}

	return formatArticleResponse(art), nil
}

// Get 获取文章详情
func (s *ArticleService) Get(id string) (*dto.ArticleResponse, error) {
	art, err := s.articleRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return formatArticleResponse(art), nil
}

// List 按创建顺序返回文章列表
func (s *ArticleService) List(offset, limit int) ([]dto.ArticleListItem, error) {
	articles, err := s.articleRepo.List(offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ArticleListItem, 0, len(articles))
	for i := range articles {
		items = append(items, formatArticleListItem(&articles[i]))
	}
	return items, nil
}

// Update 更新文章
// nil 字段保持不变；提供的分类列表全量替换原有关联；
// 每次成功更新版本号+1，并写入一条 updated 历史记录（与更新同事务）
func (s *ArticleService) Update(id string, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	var updated *article.Article

	err := s.db.Transaction(func(tx *gorm.DB) error {
		art, err := s.articleRepo.WithTx(tx).GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		if err != nil {
			return err
		}

		if req.Title != nil {
			art.Title = *req.Title
		}
		if req.Content != nil {
			art.Content = *req.Content
		}
		if req.Tags != nil {
			// 显式提供空列表表示清空标签
			art.Tags = encodeTags(*req.Tags)
		}

		art.Version++
		art.UpdatedAt = time.Now()

		if err := s.articleRepo.WithTx(tx).Save(art); err != nil {
			return err
		}

		if req.Categories != nil {
			cats := []category.Category{}
			if len(*req.Categories) > 0 {
				if cats, err = s.categoryRepo.WithTx(tx).FindByIDs(*req.Categories); err != nil {
					return err
				}
			}
			if err := s.articleRepo.WithTx(tx).ReplaceCategories(art, cats); err != nil {
				return err
			}
			art.Categories = cats
		}

		if err := s.indexRepo.WithTx(tx).Upsert(buildIndexRow(art)); err != nil {
			return err
		}

		// 历史记录携带更新后的标题/正文/版本号
		if err := s.historyRepo.WithTx(tx).Create(newHistoryRecord(art, article.ChangeUpdated)); err != nil {
			return err
		}

		updated = art
		return nil
	})
	if err != nil {
		return nil, err
	}

	return formatArticleResponse(updated), nil
}

// Delete 删除文章
// 先写入一条携带删除时状态的 deleted 历史记录，随后文章连同全部历史、
// 分类关联和索引行一并移除。deleted 记录因此不会在删除后存续——
// 这是对原系统行为的有意保留。
func (s *ArticleService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		art, err := s.articleRepo.WithTx(tx).GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		if err != nil {
			return err
		}

		if err := s.historyRepo.WithTx(tx).Create(newHistoryRecord(art, article.ChangeDeleted)); err != nil {
			return err
		}

		if err := s.historyRepo.WithTx(tx).DeleteByArticle(art.ID); err != nil {
			return err
		}
		if err := s.articleRepo.WithTx(tx).ClearCategories(art); err != nil {
			return err
		}
		if err := s.indexRepo.WithTx(tx).DeleteByArticle(art.ID); err != nil {
			return err
		}
		return s.articleRepo.WithTx(tx).Delete(art.ID)
	})
}

// History 按时间倒序返回文章历史，文章不存在时报错
func (s *ArticleService) History(id string) ([]dto.ArticleHistoryResponse, error) {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	history, err := s.historyRepo.ListByArticle(id)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ArticleHistoryResponse, 0, len(history))
	for _, h := range history {
		items = append(items, dto.ArticleHistoryResponse{
			ID:         h.ID,
			ArticleID:  h.ArticleID,
			Title:      h.Title,
			Content:    h.Content,
			Version:    h.Version,
			ChangeType: string(h.ChangeType),
			CreatedAt:  h.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// SearchArticles 关键词搜索，供搜索模块调用
func (s *ArticleService) SearchArticles(tokens []string, offset, limit int) ([]dto.ArticleListItem, error) {
	if len(tokens) == 0 {
		return []dto.ArticleListItem{}, nil
	}

	articles, err := s.articleRepo.Search(tokens, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ArticleListItem, 0, len(articles))
	for i := range articles {
		items = append(items, formatArticleListItem(&articles[i]))
	}
	return items, nil
}

// ===== 辅助函数 =====

// newHistoryRecord 以文章当前状态生成历史记录
func newHistoryRecord(art *article.Article, change article.ChangeType) *article.ArticleHistory {
	return &article.ArticleHistory{
		ID:         uuid.New().String(),
		ArticleID:  art.ID,
		Title:      art.Title,
		Content:    art.Content,
		Version:    art.Version,
		ChangeType: change,
		CreatedAt:  time.Now(),
	}
}

// buildIndexRow 以文章当前状态生成索引行
func buildIndexRow(art *article.Article) *article.SearchIndex {
	return &article.SearchIndex{
		ID:            uuid.New().String(),
		ArticleID:     art.ID,
		TitleTokens:   tokenize(art.Title),
		ContentTokens: tokenize(art.Content),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// encodeTags 序列化标签，空列表存为空串（与原系统一致）
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(raw)
}

// decodeTags 反序列化标签，任何解析失败都降级为空列表而不是报错
func decodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// makeExcerpt 生成列表摘要：超过200字符时截断并追加"..."
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}

// formatCategorySummaries 将分类关联转为摘要列表（不含子分类）
func formatCategorySummaries(cats []category.Category) []dto.CategorySummary {
	summaries := make([]dto.CategorySummary, 0, len(cats))
	for _, cat := range cats {
		summaries = append(summaries, dto.CategorySummary{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Color:       cat.Color,
			ParentID:    cat.ParentID,
			CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
		})
	}
	return summaries
}

func formatArticleResponse(art *article.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:         art.ID,
		Title:      art.Title,
		Content:    art.Content,
		Tags:       decodeTags(art.Tags),
		Version:    art.Version,
		CreatedAt:  art.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  art.UpdatedAt.Format(time.RFC3339),
		Categories: formatCategorySummaries(art.Categories),
	}
}

func formatArticleListItem(art *article.Article) dto.ArticleListItem {
	return dto.ArticleListItem{
		ID:         art.ID,
		Title:      art.Title,
		Content:    art.Content,
		Tags:       decodeTags(art.Tags),
		Version:    art.Version,
		CreatedAt:  art.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  art.UpdatedAt.Format(time.RFC3339),
		Categories: formatCategorySummaries(art.Categories),
		Excerpt:    makeExcerpt(art.Content),
	}
}
