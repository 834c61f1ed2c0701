package hierarchy

import (
	"apexfinance/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals maps category id to the signed sum of every transaction in that
// category's subtree.
type Totals map[string]decimal.Decimal

// Of returns the total for id, zero when absent.
func (t Totals) Of(id string) decimal.Decimal {
	if v, ok := t[id]; ok {
		return v
	}
	return decimal.Zero
}

// RollUp sums transaction amounts per category and propagates them to every
// ancestor in a single post-order pass. Every category of the forest gets an
// entry. Transactions pointing at categories outside the forest are ignored.
func RollUp(forest *Forest, txs []models.Transaction) Totals {
	totals := make(Totals)
	if forest == nil {
		return totals
	}

	direct := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if _, ok := forest.byID[tx.CategoryID]; !ok {
			continue
		}
		direct[tx.CategoryID] = direct[tx.CategoryID].Add(tx.Amount)
	}

	for _, root := range forest.Roots {
		accumulate(root, direct, totals)
	}
	return totals
}

func accumulate(n *Node, direct map[string]decimal.Decimal, totals Totals) decimal.Decimal {
	sum := direct[n.ID()]
	for _, child := range n.Children {
		sum = sum.Add(accumulate(child, direct, totals))
	}
	totals[n.ID()] = sum
	return sum
}

// BudgetUsage reports how much of budget the absolute total consumes, as a
// percentage capped at 100. A missing or non-positive budget yields zero.
func BudgetUsage(total, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	pct := total.Abs().Div(budget).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
