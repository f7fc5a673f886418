package category

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/internal/model/category"
)

var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameTaken 分类名称已被占用
	ErrCategoryNameTaken = errors.New("category name already taken")
	// ErrInvalidColor 颜色格式不合法
	ErrInvalidColor = errors.New("invalid color format")
)

// 颜色格式 #RRGGBB
var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CategoryService struct {
	db           *gorm.DB
	categoryRepo *CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		db:           db,
		categoryRepo: NewCategoryRepository(db),
	}
}

// Create 创建分类
// 名称全局唯一（区分大小写）；父分类ID不校验存在性（与原系统一致）
func (s *CategoryService) Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.Color != "" && !colorPattern.MatchString(req.Color) {
		return nil, ErrInvalidColor
	}

	cat := &category.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		ParentID:    req.ParentID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkNameAvailable(tx, req.Name); err != nil {
			return err
		}
		return s.categoryRepo.WithTx(tx).Create(cat)
	})
	if err != nil {
		return nil, err
	}

	resp := formatCategory(cat)
	resp.Children = []dto.CategoryResponse{}
	return &resp, nil
}

// Get 获取分类详情，递归解析子分类
func (s *CategoryService) Get(id string) (*dto.CategoryResponse, error) {
	cat, err := s.categoryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	all, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}

	resp := formatCategory(cat)
	// visited 集合防止人为引入的环导致无限递归
	resp.Children = buildChildren(all, cat.ID, map[string]bool{cat.ID: true})
	return &resp, nil
}

// List 按创建顺序返回分类列表（含文章数量，不含子分类）
func (s *CategoryService) List(offset, limit int) ([]dto.CategoryListItem, error) {
	cats, err := s.categoryRepo.List(offset, limit)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.ArticleCounts()
	if err != nil {
		return nil, err
	}

	items := make([]dto.CategoryListItem, 0, len(cats))
	for _, cat := range cats {
		items = append(items, dto.CategoryListItem{
			ID:           cat.ID,
			Name:         cat.Name,
			Description:  cat.Description,
			Color:        cat.Color,
			ParentID:     cat.ParentID,
			CreatedAt:    cat.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    cat.UpdatedAt.Format(time.RFC3339),
			ArticleCount: counts[cat.ID],
		})
	}
	return items, nil
}

// Roots 返回全部根分类（parent_id 为空），递归解析子分类
func (s *CategoryService) Roots() ([]dto.CategoryResponse, error) {
	all, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}

	roots := []dto.CategoryResponse{}
	for i := range all {
		if all[i].ParentID != nil {
			continue
		}
		resp := formatCategory(&all[i])
		resp.Children = buildChildren(all, all[i].ID, map[string]bool{all[i].ID: true})
		roots = append(roots, resp)
	}
	return roots, nil
}

// Update 更新分类，nil 字段保持不变
// 重命名时重新校验名称唯一性，与创建路径保持一致
func (s *CategoryService) Update(id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.Color != nil && !colorPattern.MatchString(*req.Color) {
		return nil, ErrInvalidColor
	}

	var updated *category.Category

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cat, err := s.categoryRepo.WithTx(tx).GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != cat.Name {
			if err := s.checkNameAvailable(tx, *req.Name); err != nil {
				return err
			}
			cat.Name = *req.Name
		}
		if req.Description != nil {
			cat.Description = *req.Description
		}
		if req.Color != nil {
			cat.Color = *req.Color
		}
		if req.ParentID != nil {
			cat.ParentID = req.ParentID
		}

		cat.UpdatedAt = time.Now()
		if err := s.categoryRepo.WithTx(tx).Save(cat); err != nil {
			return err
		}

		updated = cat
		return nil
	})
	if err != nil {
		return nil, err
	}

	all, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	resp := formatCategory(updated)
	resp.Children = buildChildren(all, updated.ID, map[string]bool{updated.ID: true})
	return &resp, nil
}

// Delete 删除分类（树上摘除，不级联）
// 所有直接子分类被挂到被删节点的父节点下（无父节点则成为根分类），
// 同事务中移除该分类的文章关联行，最后删除节点本身
func (s *CategoryService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)

		cat, err := repo.GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		if err != nil {
			return err
		}

		if err := repo.ReparentChildren(cat.ID, cat.ParentID); err != nil {
			return err
		}
		if err := repo.DeleteMemberships(cat.ID); err != nil {
			return err
		}
		return repo.Delete(cat.ID)
	})
}

// checkNameAvailable 名称占用检查，已存在返回 ErrCategoryNameTaken
func (s *CategoryService) checkNameAvailable(tx *gorm.DB, name string) error {
	_, err := s.categoryRepo.WithTx(tx).GetByName(name)
	if err == nil {
		return ErrCategoryNameTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// buildChildren 递归构建子分类树
// visited 记录已展开的节点，遇到环时跳过而不是无限递归
func buildChildren(all []category.Category, parentID string, visited map[string]bool) []dto.CategoryResponse {
	children := []dto.CategoryResponse{}
	for i := range all {
		cat := &all[i]
		if cat.ParentID == nil || *cat.ParentID != parentID {
			continue
		}
		if visited[cat.ID] {
			continue
		}
		visited[cat.ID] = true

		resp := formatCategory(cat)
		resp.Children = buildChildren(all, cat.ID, visited)
		children = append(children, resp)
	}
	return children
}

func formatCategory(cat *category.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Color:       cat.Color,
		ParentID:    cat.ParentID,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
		Children:    []dto.CategoryResponse{},
	}
}
