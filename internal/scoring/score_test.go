package scoring

import (
	"testing"

	"apexfinance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(amount string, essential bool) models.Transaction {
	return models.Transaction{Amount: decimal.RequireFromString(amount), IsEssential: essential}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		txs  []models.Transaction
		want int
	}{
		{
			name: "personal counts only non-essential spend",
			mode: models.WorkspaceModePersonal,
			txs:  []models.Transaction{tx("5000", true), tx("-1200", true), tx("-350", false)},
			want: 93,
		},
		{
			name: "professional counts all spend",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("20000", true), tx("-4500", true), tx("-2500", false)},
			want: 65,
		},
		{
			name: "personal dashboard sample",
			mode: models.WorkspaceModePersonal,
			txs:  []models.Transaction{tx("2500", true), tx("-800", true), tx("-250", true), tx("-45", false), tx("-120", false)},
			want: 93,
		},
		{
			name: "professional dashboard sample",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("15000", true), tx("50000", true), tx("-18000", true), tx("-1200", true), tx("-3500", false)},
			want: 65,
		},
		{
			name: "no transactions",
			mode: models.WorkspaceModePersonal,
			txs:  nil,
			want: 100,
		},
		{
			name: "no income substitutes one",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("-0.50", true)},
			want: 50,
		},
		{
			name: "no income with larger spend clamps at zero",
			mode: models.WorkspaceModePersonal,
			txs:  []models.Transaction{tx("-40", false)},
			want: 0,
		},
		{
			name: "spend above income clamps at zero",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("100", true), tx("-250", true)},
			want: 0,
		},
		{
			name: "rounds half away from zero",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("200", true), tx("-1", true)},
			want: 100,
		},
		{
			name: "rounds to nearest",
			mode: models.WorkspaceModeProfessional,
			txs:  []models.Transaction{tx("300", true), tx("-2", true)},
			want: 99,
		},
		{
			name: "essential spend is free in personal mode",
			mode: models.WorkspaceModePersonal,
			txs:  []models.Transaction{tx("1000", true), tx("-900", true)},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.mode, tt.txs))
		})
	}
}

func TestCalculate_OrderIndependent(t *testing.T) {
	txs := []models.Transaction{tx("1000", true), tx("-120.40", false), tx("-33.33", false), tx("250", true)}
	reversed := []models.Transaction{txs[3], txs[2], txs[1], txs[0]}

	assert.Equal(t, Calculate(models.WorkspaceModePersonal, txs), Calculate(models.WorkspaceModePersonal, reversed))
}

func TestForWorkspace(t *testing.T) {
	txs := []models.Transaction{tx("5000", true), tx("-1200", true), tx("-350", false)}

	assert.Equal(t, DefaultScore, ForWorkspace(nil, txs))
	assert.Equal(t, 93, ForWorkspace(&models.Workspace{IsProfessional: false}, txs))
	assert.Equal(t, 69, ForWorkspace(&models.Workspace{IsProfessional: true}, txs))
}

func TestSum(t *testing.T) {
	totals := Sum([]models.Transaction{tx("10", true), tx("-4", true), tx("-1.5", false), tx("0", false)})

	assert.True(t, decimal.NewFromInt(10).Equal(totals.Income))
	assert.True(t, decimal.RequireFromString("5.5").Equal(totals.Expense))
	assert.True(t, decimal.RequireFromString("1.5").Equal(totals.NonEssentialExpense))
}
