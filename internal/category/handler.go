package category

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/pkg/response"
)

type CategoryHandler struct {
	categoryService *CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryService: NewCategoryService(db),
	}
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "创建分类请求"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	cat, err := h.categoryService.Create(req)
	if err != nil {
		h.writeCategoryError(c, err, "创建分类失败")
		return
	}

	dto.SuccessResponse(c, cat)
}

// GetCategories 获取分类列表
// @Summary 获取分类列表（分页，含文章数量）
// @Tags Category
// @Accept json
// @Produce json
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "每页数量" default(100)
// @Success 200 {object} response.Response{data=[]dto.CategoryListItem}
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	items, err := h.categoryService.List(skip, limit)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取分类列表失败"),
		))
		return
	}

	dto.SuccessResponse(c, items)
}

// GetRootCategories 获取根分类
// @Summary 获取全部根分类（递归携带子分类）
// @Tags Category
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router /categories/roots [get]
func (h *CategoryHandler) GetRootCategories(c *gin.Context) {
	roots, err := h.categoryService.Roots()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取根分类失败"),
		))
		return
	}

	dto.SuccessResponse(c, roots)
}

// GetCategory 获取分类详情
// @Summary 获取分类详情（递归携带子分类）
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.categoryService.Get(c.Param("id"))
	if err != nil {
		h.writeCategoryError(c, err, "获取分类失败")
		return
	}

	dto.SuccessResponse(c, cat)
}

// UpdateCategory 更新分类
// @Summary 更新分类（部分字段）
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "分类ID"
// @Param request body dto.UpdateCategoryRequest true "更新分类请求"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	cat, err := h.categoryService.Update(c.Param("id"), req)
	if err != nil {
		h.writeCategoryError(c, err, "更新分类失败")
		return
	}

	dto.SuccessResponse(c, cat)
}

// DeleteCategory 删除分类
// @Summary 删除分类（子分类重新挂到祖父节点）
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("id")); err != nil {
		h.writeCategoryError(c, err, "删除分类失败")
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "分类删除成功"})
}

// writeCategoryError 把服务层错误映射为业务响应
func (h *CategoryHandler) writeCategoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("分类不存在"),
		))
	case errors.Is(err, ErrCategoryNameTaken):
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("分类名称已存在"),
		))
	case errors.Is(err, ErrInvalidColor):
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("颜色格式不正确，应为 #RRGGBB"),
		))
	default:
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage(fallback),
		))
	}
}
