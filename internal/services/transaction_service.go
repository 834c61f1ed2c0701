package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/hierarchy"
	"apexfinance/internal/importer"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
)

const importBatchSize = 200

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateTransaction records a transaction. amount is a positive magnitude;
// the stored amount is signed from kind. isEssential defaults to true.
func (s *transactionService) CreateTransaction(
	workspaceID string,
	categoryID string,
	kind models.TransactionKind,
	amount decimal.Decimal,
	description string,
	date time.Time,
	isEssential *bool,
) (*models.Transaction, error) {
	if kind != models.TransactionKindIncome && kind != models.TransactionKindExpense {
		return nil, apperrors.ErrInvalidTransactionKind
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}
	if _, err := s.categoryService.GetCategoryByID(workspaceID, categoryID); err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}
	essential := true
	if isEssential != nil {
		essential = *isEssential
	}

	transaction := &models.Transaction{
		WorkspaceID: workspaceID,
		CategoryID:  categoryID,
		Amount:      models.SignedAmount(kind, amount),
		Description: strings.TrimSpace(description),
		Date:        date.UTC(),
		IsEssential: essential,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetWorkspaceTransactions retrieves a paginated list of transactions, newest first.
func (s *transactionService) GetWorkspaceTransactions(
	workspaceID string,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	var categoryIDs []string
	if filter.CategoryID != nil {
		ids, err := s.categoryScope(workspaceID, *filter.CategoryID, filter.IncludeDescendants)
		if err != nil {
			return nil, err
		}
		categoryIDs = ids
	}

	var totalItems int64
	base := s.db.Model(&models.Transaction{}).Where("workspace_id = ?", workspaceID)
	base = applyTransactionFilters(base, filter, categoryIDs)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// categoryScope resolves the category filter to the ids it matches.
func (s *transactionService) categoryScope(workspaceID, categoryID string, includeDescendants bool) ([]string, error) {
	if _, err := s.categoryService.GetCategoryByID(workspaceID, categoryID); err != nil {
		return nil, err
	}
	if !includeDescendants {
		return []string{categoryID}, nil
	}

	var categories []models.Category
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at, id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	node, ok := buildForest(workspaceID, categories).Node(categoryID)
	if !ok {
		return []string{categoryID}, nil
	}
	return node.Descendants(), nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter, categoryIDs []string) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Kind != nil {
		switch *f.Kind {
		case models.TransactionKindIncome:
			q = q.Where("amount > 0")
		case models.TransactionKindExpense:
			q = q.Where("amount < 0")
		}
	}
	if f.CategoryID != nil {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	if f.MinAmount != nil {
		q = q.Where("ABS(amount) >= CAST(? AS NUMERIC)", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("ABS(amount) <= CAST(? AS NUMERIC)", *f.MaxAmount)
	}
	if f.IsEssential != nil {
		q = q.Where("is_essential = ?", *f.IsEssential)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID within a workspace
func (s *transactionService) GetTransactionByID(workspaceID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND workspace_id = ?", transactionID, workspaceID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ImportTransactions inserts parsed CSV records, resolving each record's
// category by full path. Nothing is inserted unless every record resolves.
func (s *transactionService) ImportTransactions(workspaceID string, records []importer.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return 0, err
	}

	paths := newPathIndex(buildForest(workspaceID, data.categories).Flatten())

	transactions := make([]models.Transaction, 0, len(records))
	var missing, ambiguous []string
	for _, rec := range records {
		categoryID, matches := paths.resolve(rec.CategoryPath)
		switch {
		case matches == 0:
			missing = append(missing, fmt.Sprintf("line %d: %q", rec.Line, rec.CategoryPath))
			continue
		case matches > 1:
			ambiguous = append(ambiguous, fmt.Sprintf("line %d: %q", rec.Line, rec.CategoryPath))
			continue
		}
		transactions = append(transactions, models.Transaction{
			WorkspaceID: workspaceID,
			CategoryID:  categoryID,
			Amount:      rec.Amount,
			Description: rec.Description,
			Date:        rec.Date.UTC(),
			IsEssential: rec.IsEssential,
		})
	}
	if len(missing) > 0 {
		return 0, apperrors.WithMessage(apperrors.ErrCategoryNotFound,
			"unknown categories: "+strings.Join(missing, ", "))
	}
	if len(ambiguous) > 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"category paths differ only by case, use the exact path: "+strings.Join(ambiguous, ", "))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&transactions, importBatchSize).Error
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return len(transactions), nil
}

// pathIndex resolves category full paths. An exact match always wins; a
// case-insensitive match is only accepted when it names a single category.
type pathIndex struct {
	exact  map[string]string
	folded map[string][]string
}

func newPathIndex(nodes []*hierarchy.Node) pathIndex {
	idx := pathIndex{
		exact:  make(map[string]string, len(nodes)),
		folded: make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		idx.exact[n.FullPath] = n.ID()
		key := strings.ToLower(n.FullPath)
		idx.folded[key] = append(idx.folded[key], n.ID())
	}
	return idx
}

// resolve returns the category id for path and how many categories matched.
// The id is only meaningful when exactly one matched.
func (idx pathIndex) resolve(path string) (string, int) {
	if id, ok := idx.exact[path]; ok {
		return id, 1
	}
	ids := idx.folded[strings.ToLower(path)]
	if len(ids) == 1 {
		return ids[0], 1
	}
	return "", len(ids)
}
