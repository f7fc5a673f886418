// Package category 分类模型
package category

import "time"

// Category 分类表（自引用树形结构）
type Category struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// 十六进制颜色，形如 #RRGGBB
	Color string `gorm:"type:varchar(7)" json:"color"`
	// NULL表示根分类；不校验指向的分类是否存在（与原系统一致），
	// 迁移时关闭外键约束生成，悬空的 parent_id 可以正常落库
	ParentID  *string   `gorm:"type:varchar(36);index;default:null" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联（仅用于查询，不会在数据库中创建字段）
	// 删除分类时子分类被重新挂到祖父节点，因此不加级联删除约束
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
