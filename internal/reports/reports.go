// Package reports derives dashboard figures from a workspace's transactions.
// Functions are pure; callers pass the reference time explicitly.
package reports

import (
	"sort"
	"time"

	"apexfinance/internal/models"
	"apexfinance/internal/scoring"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCashFlowDays is the window of CashFlow when none is given.
	DefaultCashFlowDays = 30
	// DefaultDistributionLimit caps ExpenseDistribution when none is given.
	DefaultDistributionLimit = 5
	// OtherCategory labels expenses whose category is unknown.
	OtherCategory = "Other"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the headline KPIs of a workspace.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Balance       decimal.Decimal `json:"balance"`
	WeeklyExpense decimal.Decimal `json:"weekly_expense"`
}

// Summarize totals income and expense magnitudes, the balance between them
// and the expenses dated within the seven days before now.
func Summarize(txs []models.Transaction, now time.Time) Summary {
	totals := scoring.Sum(txs)
	weekAgo := now.AddDate(0, 0, -7)

	weekly := decimal.Zero
	for _, tx := range txs {
		if tx.Amount.IsNegative() && !tx.Date.Before(weekAgo) {
			weekly = weekly.Add(tx.Amount.Abs())
		}
	}

	return Summary{
		TotalIncome:   totals.Income,
		TotalExpense:  totals.Expense,
		Balance:       totals.Income.Sub(totals.Expense),
		WeeklyExpense: weekly,
	}
}

// CashFlowPoint is one day of the cash flow chart.
type CashFlowPoint struct {
	Date        string          `json:"date"`
	Label       string          `json:"label"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	Accumulated decimal.Decimal `json:"accumulated"`
}

// CashFlow returns one point per UTC calendar day for the last days days,
// oldest first and ending on now's day. Accumulated is the running balance
// across the window only.
func CashFlow(txs []models.Transaction, now time.Time, days int) []CashFlowPoint {
	if days <= 0 {
		days = DefaultCashFlowDays
	}

	today := dayOf(now)
	first := today.AddDate(0, 0, -(days - 1))

	points := make([]CashFlowPoint, days)
	for i := range points {
		d := first.AddDate(0, 0, i)
		points[i] = CashFlowPoint{
			Date:     d.Format("2006-01-02"),
			Label:    d.Format("Jan 02"),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, tx := range txs {
		d := dayOf(tx.Date)
		if d.Before(first) || d.After(today) {
			continue
		}
		i := int(d.Sub(first).Hours() / 24)
		if tx.Amount.IsPositive() {
			points[i].Income = points[i].Income.Add(tx.Amount)
		} else {
			points[i].Expenses = points[i].Expenses.Add(tx.Amount.Abs())
		}
	}

	running := decimal.Zero
	for i := range points {
		points[i].Balance = points[i].Income.Sub(points[i].Expenses)
		running = running.Add(points[i].Balance)
		points[i].Accumulated = running
	}
	return points
}

// MonthlyPoint aggregates one calendar month.
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Monthly groups transactions by UTC calendar month, oldest first.
func Monthly(txs []models.Transaction) []MonthlyPoint {
	byMonth := make(map[string]*MonthlyPoint)
	for _, tx := range txs {
		d := tx.Date.UTC()
		key := d.Format("2006-01")
		p, ok := byMonth[key]
		if !ok {
			p = &MonthlyPoint{Month: key, Label: d.Format("Jan"), Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = p
		}
		if tx.Amount.IsPositive() {
			p.Income = p.Income.Add(tx.Amount)
		} else {
			p.Expenses = p.Expenses.Add(tx.Amount.Abs())
		}
	}

	out := make([]MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// DistributionSlice is an expense share for one category name.
type DistributionSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ExpenseDistribution groups expense magnitudes by category name, largest
// first, keeping at most limit slices. Ties are broken by name.
func ExpenseDistribution(txs []models.Transaction, categories []models.Category, limit int) []DistributionSlice {
	if limit <= 0 {
		limit = DefaultDistributionLimit
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	grouped := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.Amount.IsNegative() {
			continue
		}
		name, ok := names[tx.CategoryID]
		if !ok {
			name = OtherCategory
		}
		grouped[name] = grouped[name].Add(tx.Amount.Abs())
	}

	out := make([]DistributionSlice, 0, len(grouped))
	for name, value := range grouped {
		out = append(out, DistributionSlice{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EssentialRatio is the rounded percentage of expense that is essential, or
// zero when there are no expenses.
func EssentialRatio(txs []models.Transaction) int {
	totals := scoring.Sum(txs)
	if !totals.Expense.IsPositive() {
		return 0
	}
	essential := totals.Expense.Sub(totals.NonEssentialExpense)
	return int(essential.Div(totals.Expense).Mul(hundred).Round(0).IntPart())
}

// GoalProgress is the completion of a financial goal.
type GoalProgress struct {
	Percentage int  `json:"percentage"`
	Completed  bool `json:"completed"`
}

// ProgressOf returns how far current is toward target, capped at 100.
func ProgressOf(current, target decimal.Decimal) GoalProgress {
	if !target.IsPositive() {
		return GoalProgress{}
	}
	pct := int(current.Div(target).Mul(hundred).Round(0).IntPart())
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return GoalProgress{Percentage: pct, Completed: pct >= 100}
}

// ForGoal is ProgressOf applied to a goal.
func ForGoal(goal *models.FinancialGoal) GoalProgress {
	return ProgressOf(goal.CurrentAmount, goal.TargetAmount)
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
