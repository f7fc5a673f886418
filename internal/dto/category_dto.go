package dto

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	// 颜色格式 #RRGGBB，由服务层校验
	Color string `json:"color"`
	// 不校验父分类是否存在（与原系统一致的已知限制）
	ParentID *string `json:"parent_id"`
}

// UpdateCategoryRequest 更新分类请求，nil 字段保持不变
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	ParentID    *string `json:"parent_id"`
}

// CategoryResponse 分类详情响应（递归携带子分类）
type CategoryResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	ParentID    *string            `json:"parent_id"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	Children    []CategoryResponse `json:"children"`
}

// CategoryListItem 分类列表项（含文章数量，不含子分类）
type CategoryListItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Color        string  `json:"color"`
	ParentID     *string `json:"parent_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	ArticleCount int64   `json:"article_count"`
}
