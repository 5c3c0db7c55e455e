package types

type CreateCategoryRequest struct {
	Name      string  `json:"name" binding:"required"`
	ParentID  *uint64 `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name      string  `json:"name"`
	ParentID  *uint64 `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
}

// CategoryNode 分类树节点
type CategoryNode struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	SortOrder int             `json:"sort_order"`
	Children  []*CategoryNode `json:"children,omitempty"`
}
