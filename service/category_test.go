package service

import (
	"Mall/models"
	"testing"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestBuildCategoryTree(t *testing.T) {
	categories := []*models.Category{
		{ID: 1, Name: "数码", SortOrder: 2},
		{ID: 2, Name: "服饰", SortOrder: 1},
		{ID: 3, Name: "手机", ParentID: uintPtr(1), SortOrder: 1},
		{ID: 4, Name: "电脑", ParentID: uintPtr(1), SortOrder: 0},
		{ID: 5, Name: "键盘", ParentID: uintPtr(4), SortOrder: 0},
	}

	roots := buildCategoryTree(categories)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	// 根按 sort_order 排序：服饰在前
	if roots[0].Name != "服饰" || roots[1].Name != "数码" {
		t.Fatalf("unexpected root order: %s, %s", roots[0].Name, roots[1].Name)
	}

	digital := roots[1]
	if len(digital.Children) != 2 {
		t.Fatalf("expected 2 children under 数码, got %d", len(digital.Children))
	}
	if digital.Children[0].Name != "电脑" {
		t.Fatalf("expected 电脑 first, got %s", digital.Children[0].Name)
	}
	if len(digital.Children[0].Children) != 1 || digital.Children[0].Children[0].Name != "键盘" {
		t.Fatal("expected 键盘 under 电脑")
	}
}

// 父节点被停用时，子树挂到根，不丢数据
func TestBuildCategoryTree_OrphanChild(t *testing.T) {
	categories := []*models.Category{
		{ID: 3, Name: "手机", ParentID: uintPtr(99), SortOrder: 1},
	}
	roots := buildCategoryTree(categories)
	if len(roots) != 1 || roots[0].Name != "手机" {
		t.Fatal("orphan child should be promoted to root")
	}
}
