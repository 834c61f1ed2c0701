// Package scoring computes the Apex Score, a 0..100 indicator of how much of
// a workspace's income is consumed by spending.
package scoring

import (
	"apexfinance/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultScore is reported when there is no workspace to score.
const DefaultScore = 100

// Mode selects the penalty formula.
type Mode = models.WorkspaceMode

var hundred = decimal.NewFromInt(100)

// Totals are the sums a score is computed from. Expense figures are
// magnitudes.
type Totals struct {
	Income              decimal.Decimal `json:"income"`
	Expense             decimal.Decimal `json:"expense"`
	NonEssentialExpense decimal.Decimal `json:"non_essential_expense"`
}

// Sum splits transactions into income and expense magnitudes.
func Sum(txs []models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, NonEssentialExpense: decimal.Zero}
	for _, tx := range txs {
		switch {
		case tx.Amount.IsPositive():
			t.Income = t.Income.Add(tx.Amount)
		case tx.Amount.IsNegative():
			t.Expense = t.Expense.Add(tx.Amount.Abs())
			if !tx.IsEssential {
				t.NonEssentialExpense = t.NonEssentialExpense.Add(tx.Amount.Abs())
			}
		}
	}
	return t
}

// Penalty is the share of income consumed by the expenses the mode counts,
// as a percentage. Personal mode only counts non-essential spending while
// professional mode counts every expense. Non-positive income is treated as 1.
func (t Totals) Penalty(mode Mode) decimal.Decimal {
	income := t.Income
	if !income.IsPositive() {
		income = decimal.NewFromInt(1)
	}

	spent := t.NonEssentialExpense
	if mode == models.WorkspaceModeProfessional {
		spent = t.Expense
	}
	return spent.Div(income).Mul(hundred)
}

// Score turns the penalty into a whole number between 0 and 100.
func (t Totals) Score(mode Mode) int {
	score := hundred.Sub(t.Penalty(mode))
	if score.IsNegative() {
		return 0
	}
	if score.GreaterThan(hundred) {
		return 100
	}
	return int(score.Round(0).IntPart())
}

// Calculate returns the Apex Score for txs under mode.
func Calculate(mode Mode, txs []models.Transaction) int {
	return Sum(txs).Score(mode)
}

// ForWorkspace scores txs using the workspace's mode. A nil workspace scores
// DefaultScore.
func ForWorkspace(ws *models.Workspace, txs []models.Transaction) int {
	if ws == nil {
		return DefaultScore
	}
	return Calculate(ws.Mode(), txs)
}
