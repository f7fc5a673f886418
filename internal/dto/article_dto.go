package dto

import (
	"encoding/json"
)

// StringSlice 自定义字符串切片类型，支持空字符串解析
type StringSlice []string

// UnmarshalJSON 实现自定义JSON解析，处理空字符串情况
func (s *StringSlice) UnmarshalJSON(data []byte) error {
	// 处理空字符串的情况
	if string(data) == `""` || string(data) == `null` {
		*s = []string{}
		return nil
	}

	// 正常解析数组
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*s = arr
	return nil
}

// CreateArticleRequest 创建文章请求
type CreateArticleRequest struct {
	Title   string      `json:"title" binding:"required,max=200"`
	Content string      `json:"content" binding:"required"`
	Tags    StringSlice `json:"tags"`
	// 分类ID列表，未知的ID会被静默忽略
	Categories StringSlice `json:"categories"`
}

// UpdateArticleRequest 更新文章请求
// 指针字段区分"未提供"与"显式清空"：nil 表示不修改，空数组表示清空
type UpdateArticleRequest struct {
	Title      *string      `json:"title" binding:"omitempty,min=1,max=200"`
	Content    *string      `json:"content" binding:"omitempty,min=1"`
	Tags       *StringSlice `json:"tags"`
	Categories *StringSlice `json:"categories"`
}

// CategorySummary 文章响应中内嵌的分类摘要（不含子分类，避免无界递归）
type CategorySummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	ParentID    *string `json:"parent_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ArticleResponse 文章详情响应
type ArticleResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Tags       []string          `json:"tags"`
	Version    int               `json:"version"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	Categories []CategorySummary `json:"categories"`
}

// ArticleListItem 文章列表项（含摘要）
type ArticleListItem struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Tags       []string          `json:"tags"`
	Version    int               `json:"version"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	Categories []CategorySummary `json:"categories"`
	Excerpt    string            `json:"excerpt"`
}

// ArticleHistoryResponse 文章历史响应
type ArticleHistoryResponse struct {
	ID         string `json:"id"`
	ArticleID  string `json:"article_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Version    int    `json:"version"`
	ChangeType string `json:"change_type"`
	CreatedAt  string `json:"created_at"`
}
