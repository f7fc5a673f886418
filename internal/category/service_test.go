package category_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	articlePkg "terminal-terrace/knowledge-base/internal/article"
	categoryPkg "terminal-terrace/knowledge-base/internal/category"
	"terminal-terrace/knowledge-base/internal/dto"
	"terminal-terrace/knowledge-base/internal/testutils"
)

func setupCategoryService(t *testing.T) (*categoryPkg.CategoryService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	return categoryPkg.NewCategoryService(db), db
}

func TestCreateCategory_NameConflict(t *testing.T) {
	service, _ := setupCategoryService(t)

	if _, err := service.Create(dto.CreateCategoryRequest{Name: "Tech"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// 同名再次创建失败，其他字段不同也一样
	_, err := service.Create(dto.CreateCategoryRequest{
		Name:        "Tech",
		Description: "different description",
		Color:       "#FF0000",
	})
	if !errors.Is(err, categoryPkg.ErrCategoryNameTaken) {
		t.Errorf("err = %v, want ErrCategoryNameTaken", err)
	}

	// 名称区分大小写，大小写不同的名称可以创建
	if _, err := service.Create(dto.CreateCategoryRequest{Name: "tech"}); err != nil {
		t.Errorf("case-different name should succeed: %v", err)
	}
}

func TestCreateCategory_ColorValidation(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"valid lowercase", "#ff00aa", false},
		{"valid uppercase", "#FF00AA", false},
		{"empty color allowed", "", false},
		{"missing hash", "ff00aa", true},
		{"three digit form rejected", "#f0a", true},
		{"non hex characters", "#ff00gg", true},
		{"too long", "#ff00aa0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupCategoryService(t)

			_, err := service.Create(dto.CreateCategoryRequest{
				Name:  "color-case-" + tt.name,
				Color: tt.color,
			})
			if tt.wantErr && !errors.Is(err, categoryPkg.ErrInvalidColor) {
				t.Errorf("color %q: err = %v, want ErrInvalidColor", tt.color, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("color %q: unexpected err = %v", tt.color, err)
			}
		})
	}
}

func TestUpdateCategory_PartialAndRenameConflict(t *testing.T) {
	service, _ := setupCategoryService(t)

	first, _ := service.Create(dto.CreateCategoryRequest{Name: "First", Description: "d1"})
	if _, err := service.Create(dto.CreateCategoryRequest{Name: "Second"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	// 部分更新：只改描述，名称保持
	desc := "updated"
	got, err := service.Update(first.ID, dto.UpdateCategoryRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "First" || got.Description != "updated" {
		t.Errorf("after update: name=%q description=%q", got.Name, got.Description)
	}

	// 改名撞上已有名称
	name := "Second"
	_, err = service.Update(first.ID, dto.UpdateCategoryRequest{Name: &name})
	if !errors.Is(err, categoryPkg.ErrCategoryNameTaken) {
		t.Errorf("rename conflict: err = %v, want ErrCategoryNameTaken", err)
	}

	// 改回自己的名称不算冲突
	same := "First"
	if _, err := service.Update(first.ID, dto.UpdateCategoryRequest{Name: &same}); err != nil {
		t.Errorf("rename to own name: %v", err)
	}
}

func TestUpdateCategory_NotFound(t *testing.T) {
	service, _ := setupCategoryService(t)

	name := "x"
	_, err := service.Update("missing-id", dto.UpdateCategoryRequest{Name: &name})
	if !errors.Is(err, categoryPkg.ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

// 删除根节点：子分类成为根分类
func TestDeleteCategory_ChildrenBecomeRoots(t *testing.T) {
	service, _ := setupCategoryService(t)

	parent, _ := service.Create(dto.CreateCategoryRequest{Name: "P"})
	child, _ := service.Create(dto.CreateCategoryRequest{Name: "C", ParentID: &parent.ID})

	if err := service.Delete(parent.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := service.Get(child.ID)
	if err != nil {
		t.Fatalf("Get child failed: %v", err)
	}
	if got.ParentID != nil {
		t.Errorf("child parent_id = %v, want nil (root)", *got.ParentID)
	}
}

// 删除中间节点：子分类挂到祖父节点
func TestDeleteCategory_ChildrenReparentToGrandparent(t *testing.T) {
	service, _ := setupCategoryService(t)

	grand, _ := service.Create(dto.CreateCategoryRequest{Name: "G"})
	mid, _ := service.Create(dto.CreateCategoryRequest{Name: "M", ParentID: &grand.ID})
	leafA, _ := service.Create(dto.CreateCategoryRequest{Name: "A", ParentID: &mid.ID})
	leafB, _ := service.Create(dto.CreateCategoryRequest{Name: "B", ParentID: &mid.ID})

	if err := service.Delete(mid.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	for _, leaf := range []string{leafA.ID, leafB.ID} {
		got, err := service.Get(leaf)
		if err != nil {
			t.Fatalf("Get leaf failed: %v", err)
		}
		if got.ParentID == nil || *got.ParentID != grand.ID {
			t.Errorf("leaf parent_id = %v, want grandparent %s", got.ParentID, grand.ID)
		}
		if got.ParentID != nil && *got.ParentID == mid.ID {
			t.Errorf("leaf still points at deleted node")
		}
	}

	// 祖父的子分类现在是两个叶子
	gotGrand, err := service.Get(grand.ID)
	if err != nil {
		t.Fatalf("Get grandparent failed: %v", err)
	}
	if len(gotGrand.Children) != 2 {
		t.Errorf("grandparent children = %d, want 2", len(gotGrand.Children))
	}
}

func TestDeleteCategory_RemovesMemberships(t *testing.T) {
	service, db := setupCategoryService(t)
	articleService := articlePkg.NewArticleService(db)

	cat, _ := service.Create(dto.CreateCategoryRequest{Name: "Doomed"})
	art, err := articleService.Create(dto.CreateArticleRequest{
		Title:      "member",
		Content:    "body",
		Categories: dto.StringSlice{cat.ID},
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	if err := service.Delete(cat.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// 文章保留，但不再挂在被删分类下
	got, err := articleService.Get(art.ID)
	if err != nil {
		t.Fatalf("Get article failed: %v", err)
	}
	if len(got.Categories) != 0 {
		t.Errorf("article categories = %+v, want empty", got.Categories)
	}

	var count int64
	db.Raw("SELECT COUNT(*) FROM article_categories WHERE category_id = ?", cat.ID).Scan(&count)
	if count != 0 {
		t.Errorf("membership rows = %d, want 0", count)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	service, _ := setupCategoryService(t)

	err := service.Delete("missing-id")
	if !errors.Is(err, categoryPkg.ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestRootCategories(t *testing.T) {
	service, db := setupCategoryService(t)

	root := testutils.CreateTestCategory(db,
		testutils.WithName("Root"),
		testutils.WithColor("#112233"),
	)
	testutils.CreateTestCategory(db,
		testutils.WithName("Child"),
		testutils.WithParent(root.ID),
	)

	roots, err := service.Roots()
	if err != nil {
		t.Fatalf("Roots failed: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	if roots[0].ID != root.ID {
		t.Errorf("root = %s, want %s", roots[0].ID, root.ID)
	}
	if roots[0].Color != "#112233" {
		t.Errorf("root color = %q, want #112233", roots[0].Color)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Name != "Child" {
		t.Errorf("root children = %+v, want [Child]", roots[0].Children)
	}
}

// 父分类ID不校验存在性：悬空的 parent_id 照常落库
func TestCategory_DanglingParentAccepted(t *testing.T) {
	service, _ := setupCategoryService(t)

	ghost := "no-such-parent"
	created, err := service.Create(dto.CreateCategoryRequest{Name: "Orphan", ParentID: &ghost})
	if err != nil {
		t.Fatalf("Create with dangling parent failed: %v", err)
	}
	if created.ParentID == nil || *created.ParentID != ghost {
		t.Errorf("parent_id = %v, want %q", created.ParentID, ghost)
	}

	// 悬空父节点的分类不是根分类，也不会挂在任何树下
	roots, err := service.Roots()
	if err != nil {
		t.Fatalf("Roots failed: %v", err)
	}
	for _, r := range roots {
		if r.ID == created.ID {
			t.Errorf("dangling-parent category listed as root")
		}
	}

	// 更新同样可以指向不存在的父分类
	other := "also-missing"
	updated, err := service.Update(created.ID, dto.UpdateCategoryRequest{ParentID: &other})
	if err != nil {
		t.Fatalf("Update to dangling parent failed: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != other {
		t.Errorf("parent_id = %v, want %q", updated.ParentID, other)
	}
}

func TestListCategories_ArticleCount(t *testing.T) {
	service, db := setupCategoryService(t)
	articleService := articlePkg.NewArticleService(db)

	used, _ := service.Create(dto.CreateCategoryRequest{Name: "Used"})
	empty, _ := service.Create(dto.CreateCategoryRequest{Name: "Empty"})

	for i := 0; i < 2; i++ {
		if _, err := articleService.Create(dto.CreateArticleRequest{
			Title:      "art",
			Content:    "body",
			Categories: dto.StringSlice{used.ID},
		}); err != nil {
			t.Fatalf("create article: %v", err)
		}
	}

	items, err := service.List(0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	counts := map[string]int64{}
	for _, item := range items {
		counts[item.ID] = item.ArticleCount
	}
	if counts[used.ID] != 2 {
		t.Errorf("used article_count = %d, want 2", counts[used.ID])
	}
	if counts[empty.ID] != 0 {
		t.Errorf("empty article_count = %d, want 0", counts[empty.ID])
	}
}

// 人为制造父子环，详情展开不应无限递归
func TestGetCategory_CycleGuard(t *testing.T) {
	service, db := setupCategoryService(t)

	a, _ := service.Create(dto.CreateCategoryRequest{Name: "A"})
	b, _ := service.Create(dto.CreateCategoryRequest{Name: "B", ParentID: &a.ID})

	// 直接改库把 A 挂到 B 下，形成 A->B->A
	if err := db.Exec("UPDATE categories SET parent_id = ? WHERE id = ?", b.ID, a.ID).Error; err != nil {
		t.Fatalf("introduce cycle: %v", err)
	}

	got, err := service.Get(a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Children) != 1 || got.Children[0].ID != b.ID {
		t.Fatalf("children = %+v, want [B]", got.Children)
	}
	// B 的子节点中不应再次出现 A
	if len(got.Children[0].Children) != 0 {
		t.Errorf("cycle not guarded: B children = %+v", got.Children[0].Children)
	}
}
