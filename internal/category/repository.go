package category

import (
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/model/category"
)

// CategoryRepository 分类仓储层
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx 返回绑定到事务的仓储实例
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) GetByID(id string) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByName 按名称精确查找（区分大小写）
func (r *CategoryRepository) GetByName(name string) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// List 按创建顺序返回分类列表
func (r *CategoryRepository) List(offset, limit int) ([]category.Category, error) {
	var cats []category.Category
	err := r.db.Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&cats).Error
	return cats, err
}

// ListAll 返回全部分类，用于构建分类树
func (r *CategoryRepository) ListAll() ([]category.Category, error) {
	var cats []category.Category
	err := r.db.Order("created_at ASC, id ASC").Find(&cats).Error
	return cats, err
}

// FindByIDs 按ID集合查找，不存在的ID被忽略
func (r *CategoryRepository) FindByIDs(ids []string) ([]category.Category, error) {
	if len(ids) == 0 {
		return []category.Category{}, nil
	}
	var cats []category.Category
	err := r.db.Where("id IN ?", ids).Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Save(cat *category.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id string) error {
	return r.db.Delete(&category.Category{}, "id = ?", id).Error
}

// ReparentChildren 把指定分类的所有直接子分类挂到新的父分类下
// newParentID 为 nil 时子分类成为根分类
func (r *CategoryRepository) ReparentChildren(id string, newParentID *string) error {
	return r.db.Model(&category.Category{}).
		Where("parent_id = ?", id).
		Update("parent_id", newParentID).Error
}

// DeleteMemberships 删除分类与文章的全部关联行
func (r *CategoryRepository) DeleteMemberships(id string) error {
	return r.db.Exec("DELETE FROM article_categories WHERE category_id = ?", id).Error
}

// ArticleCounts 统计每个分类关联的文章数量
func (r *CategoryRepository) ArticleCounts() (map[string]int64, error) {
	type row struct {
		CategoryID string
		Count      int64
	}
	var rows []row
	err := r.db.Raw(
		"SELECT category_id, COUNT(*) AS count FROM article_categories GROUP BY category_id",
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rr := range rows {
		counts[rr.CategoryID] = rr.Count
	}
	return counts, nil
}
