package article

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/pkg/response"
)

type ArticleHandler struct {
	articleService *ArticleService
}

func NewArticleHandler(db *gorm.DB) *ArticleHandler {
	return &ArticleHandler{
		articleService: NewArticleService(db),
	}
}

// CreateArticle 创建文章
// @Summary 创建文章
// @Tags Article
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "创建文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	art, err := h.articleService.Create(req)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建文章失败"),
		))
		return
	}

	dto.SuccessResponse(c, art)
}

// GetArticles 获取文章列表
// @Summary 获取文章列表（分页，按创建顺序）
// @Tags Article
// @Accept json
// @Produce json
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "每页数量" default(100)
// @Success 200 {object} response.Response{data=[]dto.ArticleListItem}
// @Router /articles [get]
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	skip, limit := parsePagination(c, 100, 1000)

	items, err := h.articleService.List(skip, limit)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取文章列表失败"),
		))
		return
	}

	dto.SuccessResponse(c, items)
}

// GetArticle 获取文章详情
// @Summary 获取文章详情
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	art, err := h.articleService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			))
			return
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取文章失败"),
		))
		return
	}

	dto.SuccessResponse(c, art)
}

// UpdateArticle 更新文章
// @Summary 更新文章（部分字段，版本号+1）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.UpdateArticleRequest true "更新文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	art, err := h.articleService.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			))
			return
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新文章失败"),
		))
		return
	}

	dto.SuccessResponse(c, art)
}

// DeleteArticle 删除文章
// @Summary 删除文章（历史一并移除）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response
// @Router /articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			))
			return
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除文章失败"),
		))
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "文章删除成功"})
}

// GetArticleHistory 获取文章历史
// @Summary 获取文章历史（最新在前）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=[]dto.ArticleHistoryResponse}
// @Router /articles/{id}/history [get]
func (h *ArticleHandler) GetArticleHistory(c *gin.Context) {
	history, err := h.articleService.History(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			))
			return
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取文章历史失败"),
		))
		return
	}

	dto.SuccessResponse(c, history)
}

// parsePagination 解析 skip/limit 查询参数并收敛到边界内
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return skip, limit
}
