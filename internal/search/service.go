package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	articlePkg "terminal-terrace/knowledge-base/internal/article"
	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/pkg/database"
)

// 搜索建议缓存时长
const suggestionCacheTTL = 60 * time.Second

type SearchService struct {
	articleService *articlePkg.ArticleService
	// cache 可为 nil，此时建议查询直接落库
	cache *database.RedisClient
}

func NewSearchService(db *gorm.DB, cache *database.RedisClient) *SearchService {
	return &SearchService{
		articleService: articlePkg.NewArticleService(db),
		cache:          cache,
	}
}

// Search 关键词搜索文章
// 查询串按空白分词；每个词语都必须（不区分大小写）出现在标题或正文中
func (s *SearchService) Search(query string, offset, limit int) ([]dto.ArticleListItem, error) {
	return s.articleService.SearchArticles(strings.Fields(query), offset, limit)
}

// Suggestions 搜索建议
// 结果只携带 id/title，type 固定为 article；配置了 Redis 时走短时缓存
func (s *SearchService) Suggestions(ctx context.Context, query string, limit int) ([]dto.Suggestion, error) {
	cacheKey := fmt.Sprintf("kb:suggest:%d:%s", limit, strings.ToLower(query))

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []dto.Suggestion
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	items, err := s.articleService.SearchArticles(strings.Fields(query), 0, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, dto.Suggestion{
			ID:    item.ID,
			Title: item.Title,
			Type:  "article",
		})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(suggestions); err == nil {
			// 缓存写入失败不影响结果
			s.cache.Set(ctx, cacheKey, raw, suggestionCacheTTL)
		}
	}

	return suggestions, nil
}
