package services

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/hierarchy"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	workspaceID string,
	name string,
	parentID *string,
	monthlyBudget *decimal.Decimal,
	isProject bool,
) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if strings.Contains(name, "/") {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot contain '/'")
	}
	if monthlyBudget != nil && monthlyBudget.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget cannot be negative")
	}

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID != nil {
		if _, err := s.findParent(workspaceID, *parentID); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUniqueName(workspaceID, name, parentID, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		WorkspaceID:   workspaceID,
		Name:          name,
		ParentID:      parentID,
		MonthlyBudget: monthlyBudget,
		IsProject:     isProject,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetWorkspaceCategories retrieves a paginated, flat list of categories in creation order.
func (s *categoryService) GetWorkspaceCategories(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.Model(&models.Category{}).Where("workspace_id = ?", workspaceID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("created_at, id").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID within a workspace
func (s *categoryService) GetCategoryByID(workspaceID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND workspace_id = ?", categoryID, workspaceID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames, re-budgets or moves a category. Moving a category
// under itself or one of its descendants is rejected.
func (s *categoryService) UpdateCategory(workspaceID, categoryID string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(workspaceID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	name := category.Name
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		if strings.Contains(name, "/") {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot contain '/'")
		}
		updates["name"] = name
	}

	parentID := category.ParentID
	if update.ParentID != nil {
		if *update.ParentID == "" {
			parentID = nil
		} else {
			if err := s.checkReparent(workspaceID, categoryID, *update.ParentID); err != nil {
				return nil, err
			}
			p := *update.ParentID
			parentID = &p
		}
		updates["parent_id"] = parentID
	}

	if update.ClearBudget {
		updates["monthly_budget"] = nil
	} else if update.MonthlyBudget != nil {
		if update.MonthlyBudget.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget cannot be negative")
		}
		updates["monthly_budget"] = *update.MonthlyBudget
	}

	if update.IsProject != nil {
		updates["is_project"] = *update.IsProject
	}

	if len(updates) == 0 {
		return category, nil
	}

	if _, renamed := updates["name"]; renamed || update.ParentID != nil {
		if err := s.ensureUniqueName(workspaceID, name, parentID, categoryID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCategoryByID(workspaceID, categoryID)
}

// GetCategoryTree renders the workspace hierarchy with rolled-up totals and
// budget usage per node.
func (s *categoryService) GetCategoryTree(workspaceID string, canonical bool) (*CategoryTree, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}

	var opts []hierarchy.BuildOption
	if canonical {
		opts = append(opts, hierarchy.WithCanonicalOrder())
	}
	forest := buildForest(workspaceID, data.categories, opts...)
	totals := hierarchy.RollUp(forest, data.transactions)

	tree := &CategoryTree{
		Roots:  make([]*CategoryTreeNode, 0, len(forest.Roots)),
		Stats:  forest.Stats(),
		Cycles: forest.Cycles,
	}
	for _, root := range forest.Roots {
		tree.Roots = append(tree.Roots, toTreeNode(root, totals))
	}
	return tree, nil
}

func toTreeNode(n *hierarchy.Node, totals hierarchy.Totals) *CategoryTreeNode {
	total := totals.Of(n.ID())
	out := &CategoryTreeNode{
		ID:            n.ID(),
		ParentID:      n.Category.ParentID,
		Name:          n.Category.Name,
		FullPath:      n.FullPath,
		Level:         n.Level,
		IsProject:     n.Category.IsProject,
		MonthlyBudget: n.Category.MonthlyBudget,
		Total:         total,
		BudgetUsage:   hierarchy.BudgetUsage(total, n.Category.Budget()),
		Children:      make([]*CategoryTreeNode, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toTreeNode(child, totals))
	}
	return out
}

func (s *categoryService) findParent(workspaceID, parentID string) (*models.Category, error) {
	var parent models.Category
	if err := s.db.Where("id = ? AND workspace_id = ?", parentID, workspaceID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &parent, nil
}

// checkReparent rejects moves that would make the hierarchy cyclic.
func (s *categoryService) checkReparent(workspaceID, categoryID, parentID string) error {
	if parentID == categoryID {
		return apperrors.ErrSelfParentCategory
	}
	if _, err := s.findParent(workspaceID, parentID); err != nil {
		return err
	}

	var categories []models.Category
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at, id").Find(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	forest := buildForest(workspaceID, categories)
	node, ok := forest.Node(categoryID)
	if !ok {
		return apperrors.ErrCategoryNotFound
	}
	if slices.Contains(node.Descendants(), parentID) {
		return apperrors.ErrCategoryCycle
	}
	return nil
}

// ensureUniqueName rejects a second category with the same name, ignoring
// case, under the same parent. excludeID skips the category being updated.
func (s *categoryService) ensureUniqueName(workspaceID, name string, parentID *string, excludeID string) error {
	q := s.db.Model(&models.Category{}).Where("workspace_id = ? AND LOWER(name) = LOWER(?)", workspaceID, name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
