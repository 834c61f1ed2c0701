package hierarchy

import (
	"math/rand"
	"testing"

	"apexfinance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(categoryID, amount string) models.Transaction {
	return models.Transaction{CategoryID: categoryID, Amount: decimal.RequireFromString(amount)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestRollUp(t *testing.T) {
	forest := Build([]models.Category{
		cat("1", "Housing", ""),
		cat("2", "Rent", "1"),
		cat("3", "Utilities", "1"),
		cat("4", "Electricity", "3"),
		cat("5", "Salary", ""),
	})

	txs := []models.Transaction{
		tx("2", "-1200.00"),
		tx("4", "-80.50"),
		tx("3", "-20.00"),
		tx("1", "-5.00"),
		tx("5", "3000.00"),
		tx("ghost", "-999.00"),
	}

	totals := RollUp(forest, txs)

	assertDecimal(t, "-1305.50", totals.Of("1"))
	assertDecimal(t, "-1200.00", totals.Of("2"))
	assertDecimal(t, "-100.50", totals.Of("3"))
	assertDecimal(t, "-80.50", totals.Of("4"))
	assertDecimal(t, "3000.00", totals.Of("5"))
	assertDecimal(t, "0", totals.Of("ghost"))
	assert.Len(t, totals, 5)
}

func TestRollUp_ParentWithDirectAmount(t *testing.T) {
	forest := Build([]models.Category{cat("a", "A", ""), cat("b", "B", "a")})

	first := RollUp(forest, []models.Transaction{tx("b", "-50"), tx("a", "20")})
	second := RollUp(forest, []models.Transaction{tx("b", "-50"), tx("a", "20")})

	assertDecimal(t, "-50", first.Of("b"))
	assertDecimal(t, "-30", first.Of("a"))
	assert.Equal(t, first, second)
}

func TestRollUp_OrderIndependent(t *testing.T) {
	forest := Build([]models.Category{
		cat("1", "A", ""),
		cat("2", "B", "1"),
		cat("3", "C", "2"),
	})
	txs := []models.Transaction{
		tx("1", "10"), tx("2", "-3.25"), tx("3", "7.10"), tx("3", "-0.85"), tx("2", "100"),
	}

	want := RollUp(forest, txs)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Transaction, len(txs))
		copy(shuffled, txs)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := RollUp(forest, shuffled)
		for id, v := range want {
			assert.True(t, v.Equal(got.Of(id)), "category %s", id)
		}
	}
}

func TestRollUp_Empty(t *testing.T) {
	assert.Empty(t, RollUp(Build(nil), nil))
	assert.Empty(t, RollUp(nil, []models.Transaction{tx("1", "5")}))

	totals := RollUp(Build([]models.Category{cat("1", "A", "")}), nil)
	assertDecimal(t, "0", totals.Of("1"))
}

func TestBudgetUsage(t *testing.T) {
	tests := []struct {
		name   string
		total  string
		budget string
		want   string
	}{
		{"half spent", "-250", "500", "50"},
		{"over budget is capped", "-900", "500", "100"},
		{"no budget", "-100", "0", "0"},
		{"negative budget", "-100", "-10", "0"},
		{"nothing spent", "0", "500", "0"},
		{"rounded to cents", "-1", "3", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetUsage(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.budget))
			assertDecimal(t, tt.want, got)
		})
	}
}
