package service

import (
	"Mall/dao"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
)

var _ ICategoryService = (*CategoryService)(nil)

type ICategoryService interface {
	CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID uint64, req *types.UpdateCategoryRequest) error
	DeleteCategory(ctx context.Context, categoryID uint64) error
	GetTree(ctx context.Context) ([]*types.CategoryNode, error)
}

type CategoryService struct {
	DB          *gorm.DB
	CategoryDAO *dao.Category
	ProductDAO  *dao.Product
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		if _, err := s.CategoryDAO.FindById(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	category := &models.Category{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := s.CategoryDAO.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID uint64, req *types.UpdateCategoryRequest) error {
	if _, err := s.CategoryDAO.FindById(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	data := map[string]any{}
	if req.Name != "" {
		data["name"] = req.Name
	}
	if req.SortOrder != nil {
		data["sort_order"] = *req.SortOrder
	}
	if req.ParentID != nil {
		// 换父节点前检查环：新父链上不能出现自己
		if err := s.checkNoCycle(ctx, categoryID, *req.ParentID); err != nil {
			return err
		}
		data["parent_id"] = *req.ParentID
	}
	if len(data) == 0 {
		return nil
	}
	return s.CategoryDAO.UpdateById(ctx, categoryID, data)
}

// checkNoCycle 沿新父节点的祖先链向上走，遇到自己即成环
func (s *CategoryService) checkNoCycle(ctx context.Context, categoryID, newParentID uint64) error {
	if newParentID == categoryID {
		return ErrCategoryCycle
	}
	cursor := newParentID
	for cursor != 0 {
		parent, err := s.CategoryDAO.FindById(ctx, cursor)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == categoryID {
			return ErrCategoryCycle
		}
		cursor = *parent.ParentID
	}
	return nil
}

// DeleteCategory 有子分类禁止删除；仍被商品引用的只停用不删
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uint64) error {
	if _, err := s.CategoryDAO.FindById(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	children, err := s.CategoryDAO.CountChildren(ctx, categoryID)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}

	products, err := s.ProductDAO.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if products > 0 {
		return s.CategoryDAO.Deactivate(ctx, categoryID)
	}
	return s.CategoryDAO.Delete(ctx, categoryID)
}

func (s *CategoryService) GetTree(ctx context.Context) ([]*types.CategoryNode, error) {
	categories, err := s.CategoryDAO.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

// buildCategoryTree 内存组装分类树，父节点缺失（被停用）的子树挂到根
func buildCategoryTree(categories []*models.Category) []*types.CategoryNode {
	nodes := make(map[uint64]*types.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &types.CategoryNode{
			ID:        c.ID,
			Name:      c.Name,
			SortOrder: c.SortOrder,
		}
	}

	var roots []*types.CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortNodes func([]*types.CategoryNode)
	sortNodes = func(list []*types.CategoryNode) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SortOrder < list[j].SortOrder
		})
		for _, n := range list {
			sortNodes(n.Children)
		}
	}
	sortNodes(roots)
	return roots
}
