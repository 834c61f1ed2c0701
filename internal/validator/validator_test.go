package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"apexfinance/internal/models"
)

type sample struct {
	Currency string                 `binding:"omitempty,iso4217"`
	Kind     models.TransactionKind `binding:"omitempty,transaction_kind"`
	Amount   decimal.Decimal        `binding:"decimal_gt0"`
	Saved    decimal.Decimal        `binding:"decimal_gte0"`
}

func init() {
	Register()
}

func TestValidators(t *testing.T) {
	valid := sample{Currency: "EUR", Kind: models.TransactionKindExpense, Amount: decimal.NewFromInt(5)}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	tests := []struct {
		name string
		mod  func(*sample)
	}{
		{"unknown currency", func(s *sample) { s.Currency = "XYZ" }},
		{"lowercase currency", func(s *sample) { s.Currency = "eur" }},
		{"unknown kind", func(s *sample) { s.Kind = "transfer" }},
		{"zero amount", func(s *sample) { s.Amount = decimal.Zero }},
		{"negative amount", func(s *sample) { s.Amount = decimal.NewFromInt(-1) }},
		{"negative saved", func(s *sample) { s.Saved = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mod(&s)
			assert.Error(t, binding.Validator.ValidateStruct(&s))
		})
	}
}
