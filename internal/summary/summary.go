// Package summary derives totals, ratios and display rows from transaction lists.
//
// Every function here is pure: the same input always yields the same output and
// empty input yields zero values rather than errors.
package summary

import (
	"github.com/shopspring/decimal"

	"finance-tracker/internal/models"
)

// Summary holds the aggregate figures of one screen refresh.
type Summary struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	Balance        decimal.Decimal `json:"balance"`
	AverageIncome  decimal.Decimal `json:"average_income"`
	AverageExpense decimal.Decimal `json:"average_expense"`
	IncomeCount    int             `json:"income_count"`
	ExpenseCount   int             `json:"expense_count"`

	// SpentRatio is TotalExpense/TotalIncome, unclamped. It is 0 when there is no income.
	SpentRatio float64 `json:"spent_ratio"`
	// ExceedsIncome is set whenever expenses are larger than income.
	ExceedsIncome bool `json:"exceeds_income"`
}

// Summarize computes totals, balance, averages and the spent ratio.
func Summarize(expenses, incomes []models.Transaction) Summary {
	s := Summary{
		TotalExpense: Total(expenses),
		TotalIncome:  Total(incomes),
		ExpenseCount: len(expenses),
		IncomeCount:  len(incomes),
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.AverageExpense = average(s.TotalExpense, s.ExpenseCount)
	s.AverageIncome = average(s.TotalIncome, s.IncomeCount)

	if s.TotalIncome.IsPositive() {
		s.SpentRatio = s.TotalExpense.Div(s.TotalIncome).InexactFloat64()
	}
	s.ExceedsIncome = s.TotalExpense.GreaterThan(s.TotalIncome)
	return s
}

// DisplayRatio clamps SpentRatio to [0, 1] for progress bars.
func (s Summary) DisplayRatio() float64 {
	switch {
	case s.SpentRatio < 0:
		return 0
	case s.SpentRatio > 1:
		return 1
	default:
		return s.SpentRatio
	}
}

// Total sums the amounts of txs.
func Total(txs []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
