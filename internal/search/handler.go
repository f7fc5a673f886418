package search

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/pkg/database"
	"terminal-terrace/knowledge-base/pkg/response"
)

type SearchHandler struct {
	searchService *SearchService
}

func NewSearchHandler(db *gorm.DB, cache *database.RedisClient) *SearchHandler {
	return &SearchHandler{
		searchService: NewSearchService(db, cache),
	}
}

// SearchArticles 搜索文章
// @Summary 关键词搜索文章（词语间AND，不区分大小写）
// @Tags Search
// @Accept json
// @Produce json
// @Param q query string true "搜索关键词"
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "每页数量" default(50)
// @Success 200 {object} response.Response{data=[]dto.ArticleListItem}
// @Router /search/articles [get]
func (h *SearchHandler) SearchArticles(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("搜索关键词不能为空"),
		))
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, err := h.searchService.Search(query, skip, limit)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("搜索失败"),
		))
		return
	}

	dto.SuccessResponse(c, items)
}

// GetSuggestions 搜索建议
// @Summary 搜索建议（仅返回 id/title）
// @Tags Search
// @Accept json
// @Produce json
// @Param q query string true "搜索关键词"
// @Param limit query int false "返回数量" default(10)
// @Success 200 {object} response.Response{data=dto.SuggestionListResponse}
// @Router /search/suggestions [get]
func (h *SearchHandler) GetSuggestions(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("搜索关键词不能为空"),
		))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 20 {
		limit = 10
	}

	suggestions, err := h.searchService.Suggestions(c.Request.Context(), query, limit)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取搜索建议失败"),
		))
		return
	}

	dto.SuccessResponse(c, dto.SuggestionListResponse{Suggestions: suggestions})
}
