package article_test

import (
	"fmt"
	"testing"

	"terminal-terrace/knowledge-base/internal/dto"
)

// N次更新后版本号为 1+N，历史恰好 N+1 条且最新在前
func TestVersionIncrement(t *testing.T) {
	service, _ := setupArticleService(t)

	created, err := service.Create(dto.CreateArticleRequest{Title: "v1", Content: "base"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const updates = 4
	for i := 0; i < updates; i++ {
		title := fmt.Sprintf("v%d", i+2)
		if _, err := service.Update(created.ID, dto.UpdateArticleRequest{Title: &title}); err != nil {
			t.Fatalf("Update %d failed: %v", i+1, err)
		}
	}

	got, err := service.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Version != 1+updates {
		t.Errorf("version = %d, want %d", got.Version, 1+updates)
	}

	history, err := service.History(created.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != updates+1 {
		t.Fatalf("history rows = %d, want %d", len(history), updates+1)
	}

	// 最新在前：倒序版本号 5,4,3,2,1
	for i, h := range history {
		wantVersion := updates + 1 - i
		if h.Version != wantVersion {
			t.Errorf("history[%d].Version = %d, want %d", i, h.Version, wantVersion)
		}
	}
	if history[0].ChangeType != "updated" {
		t.Errorf("history[0].ChangeType = %s, want updated", history[0].ChangeType)
	}
	if history[len(history)-1].ChangeType != "created" {
		t.Errorf("oldest change_type = %s, want created", history[len(history)-1].ChangeType)
	}
}

// 更新的历史记录携带更新后的标题/正文
func TestHistorySnapshotsNewState(t *testing.T) {
	service, _ := setupArticleService(t)

	created, err := service.Create(dto.CreateArticleRequest{Title: "A", Content: "hello world"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "B"
	if _, err := service.Update(created.ID, dto.UpdateArticleRequest{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	history, err := service.History(created.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history rows = %d, want 2", len(history))
	}

	latest := history[0]
	if latest.ChangeType != "updated" || latest.Version != 2 {
		t.Errorf("latest = %s v%d, want updated v2", latest.ChangeType, latest.Version)
	}
	if latest.Title != "B" || latest.Content != "hello world" {
		t.Errorf("latest snapshot = %q/%q, want B/hello world", latest.Title, latest.Content)
	}

	oldest := history[1]
	if oldest.ChangeType != "created" || oldest.Version != 1 || oldest.Title != "A" {
		t.Errorf("oldest = %s v%d %q, want created v1 A", oldest.ChangeType, oldest.Version, oldest.Title)
	}
}
