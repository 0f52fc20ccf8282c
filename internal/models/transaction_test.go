package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{"valid", Transaction{Amount: decimal.NewFromInt(10), Category: "c1"}, nil},
		{"zero amount is allowed", Transaction{Amount: decimal.Zero, Category: "c1"}, nil},
		{"negative amount", Transaction{Amount: decimal.NewFromInt(-1), Category: "c1"}, ErrNegativeAmount},
		{"missing category", Transaction{Amount: decimal.NewFromInt(1), Category: "  "}, ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.tx.Validate(), tt.wantErr)
		})
	}
}

func TestTransactionParsedDate(t *testing.T) {
	tests := []struct {
		date   string
		ok     bool
		wantYD int
	}{
		{"2024-03-05", true, 65},
		{"2024-03-05T10:11:12Z", true, 65},
		{"2024-03-05T10:11:12.123+02:00", true, 65},
		{"2024-03-05T10:11:12", true, 65},
		{"2024-03-05 10:11:12", true, 65},
		{"05/03/2024", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, ok := Transaction{Date: tt.date}.ParsedDate()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantYD, d.YearDay())
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, Category{Name: "Food", Kind: KindExpense}.Validate())
	assert.NoError(t, Category{Name: "Salary", Kind: KindIncome}.Validate())
	assert.ErrorIs(t, Category{Name: "", Kind: KindIncome}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, Category{Name: "Food", Kind: "Other"}.Validate(), ErrInvalidKind)
}
