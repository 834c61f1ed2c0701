package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount is the positive magnitude; the stored sign follows Kind.
type CreateTransactionRequest struct {
	CategoryID  string                 `json:"category_id" binding:"required,uuid"`
	Kind        models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	Amount      decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	Description string                 `json:"description" binding:"max=500"`
	Date        *string                `json:"date"`
	IsEssential *bool                  `json:"is_essential"`
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record an income or expense against a category. is_essential defaults to true.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Workspace ID"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil && *req.Date != "" {
		date, err = parseFlexibleTime(*req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	transaction, err := h.transactionService.CreateTransaction(
		workspaceID, req.CategoryID, req.Kind, req.Amount, req.Description, date, req.IsEssential,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"kind": req.Kind, "amount": transaction.Amount.String(), "category_id": req.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing the transactions of a workspace.
// @Summary     Get transactions
// @Description Get a paginated list of transactions, newest first, with optional filters
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id                  path  string true  "Workspace ID"
// @Param       from_date           query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date             query string false "Inclusive end (RFC3339, or YYYY-MM-DD for the whole day)"
// @Param       kind                query string false "income or expense"
// @Param       category_id         query string false "Category ID"
// @Param       include_descendants query bool   false "Include transactions of sub-categories"
// @Param       min_amount          query string false "Minimum absolute amount"
// @Param       max_amount          query string false "Maximum absolute amount"
// @Param       is_essential        query bool   false "Filter by essential flag"
// @Param       page                query int    false "Page number (default 1)"
// @Param       page_size           query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetWorkspaceTransactions(workspaceID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseRangeEnd(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if v := c.Query("kind"); v != "" {
		kind := models.TransactionKind(v)
		switch kind {
		case models.TransactionKindIncome, models.TransactionKindExpense:
			filter.Kind = &kind
		default:
			return filter, apperrors.ErrInvalidTransactionKind
		}
	}

	if v := c.Query("category_id"); v != "" {
		categoryID, err := parseOptionalID(&v, "category_id")
		if err != nil {
			return filter, err
		}
		filter.CategoryID = categoryID
	}

	includeDescendants, err := parseOptionalBool(c, "include_descendants")
	if err != nil {
		return filter, err
	}
	if includeDescendants != nil {
		filter.IncludeDescendants = *includeDescendants
	}

	if v := c.Query("min_amount"); v != "" {
		amt, err := decimal.NewFromString(v)
		if err != nil || amt.IsNegative() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid min_amount")
		}
		filter.MinAmount = &amt
	}

	if v := c.Query("max_amount"); v != "" {
		amt, err := decimal.NewFromString(v)
		if err != nil || amt.IsNegative() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid max_amount")
		}
		filter.MaxAmount = &amt
	}

	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "min_amount cannot exceed max_amount")
	}

	filter.IsEssential, err = parseOptionalBool(c, "is_essential")
	if err != nil {
		return filter, err
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction.
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id            path string true "Workspace ID"
// @Param       transactionId path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/transactions/{transactionId} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "transactionId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(workspaceID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}
