package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/models"
)

func tx(id, amount, category, date string) models.Transaction {
	return models.Transaction{
		ID:       id,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)

	assertDecimal(t, "0", s.TotalIncome)
	assertDecimal(t, "0", s.TotalExpense)
	assertDecimal(t, "0", s.Balance)
	assertDecimal(t, "0", s.AverageExpense)
	assertDecimal(t, "0", s.AverageIncome)
	assert.Zero(t, s.SpentRatio)
	assert.False(t, s.ExceedsIncome)
	assert.Zero(t, s.DisplayRatio())
}

func TestSummarizeTotalsAndBalance(t *testing.T) {
	expenses := []models.Transaction{tx("e1", "10.10", "c", ""), tx("e2", "20.20", "c", "")}
	incomes := []models.Transaction{tx("i1", "100", "s", "")}

	s := Summarize(expenses, incomes)

	assertDecimal(t, "30.30", s.TotalExpense)
	assertDecimal(t, "100", s.TotalIncome)
	assertDecimal(t, "69.70", s.Balance)
	assertDecimal(t, "15.15", s.AverageExpense)
	assertDecimal(t, "100", s.AverageIncome)
	assert.Equal(t, 2, s.ExpenseCount)
	assert.Equal(t, 1, s.IncomeCount)
	assert.InDelta(t, 0.303, s.SpentRatio, 1e-12)
	assert.False(t, s.ExceedsIncome)
}

func TestSummarizeOneSideEmpty(t *testing.T) {
	s := Summarize(nil, []models.Transaction{tx("i", "50", "s", "")})
	assertDecimal(t, "50", s.Balance)
	assert.Zero(t, s.SpentRatio)

	s = Summarize([]models.Transaction{tx("e", "50", "c", "")}, nil)
	assertDecimal(t, "-50", s.Balance)
	assert.Zero(t, s.SpentRatio, "no income means ratio 0")
	assert.True(t, s.ExceedsIncome, "spending without income is overspending")
}

func TestSummarizeOverspending(t *testing.T) {
	s := Summarize(
		[]models.Transaction{tx("e", "150", "c", "")},
		[]models.Transaction{tx("i", "100", "s", "")},
	)

	assert.InDelta(t, 1.5, s.SpentRatio, 1e-12, "ratio is reported unclamped")
	assert.True(t, s.ExceedsIncome)
	assert.Equal(t, 1.0, s.DisplayRatio())
	assertDecimal(t, "-50", s.Balance)
}

func TestSummarizeExactlySpent(t *testing.T) {
	s := Summarize(
		[]models.Transaction{tx("e", "100", "c", "")},
		[]models.Transaction{tx("i", "100", "s", "")},
	)
	assert.Equal(t, 1.0, s.SpentRatio)
	assert.False(t, s.ExceedsIncome)
}

func TestTotalsAreNonNegativeForNonNegativeInput(t *testing.T) {
	lists := [][]string{{}, {"0"}, {"0", "0.01"}, {"5", "7.5", "1000000.99"}}
	for _, amounts := range lists {
		var txs []models.Transaction
		for _, a := range amounts {
			txs = append(txs, tx("", a, "c", ""))
		}
		s := Summarize(txs, txs)
		assert.False(t, s.TotalExpense.IsNegative())
		assert.False(t, s.TotalIncome.IsNegative())
		assertDecimal(t, "0", s.Balance)
	}
}

func TestByCategory(t *testing.T) {
	cats := []models.Category{
		{ID: "food", Name: "Food", Kind: models.KindExpense},
		{ID: "rent", Name: "Rent", Kind: models.KindExpense},
	}
	txs := []models.Transaction{
		tx("1", "10", "food", ""),
		tx("2", "60", "rent", ""),
		tx("3", "20", "food", ""),
		tx("4", "10", "gone", ""),
	}

	got := ByCategory(txs, categories.NewResolver(cats))
	require.Len(t, got, 3)

	assert.Equal(t, "Rent", got[0].Category.Name)
	assertDecimal(t, "60", got[0].Total)
	assert.InDelta(t, 60.0, got[0].Percentage, 1e-9)

	assert.Equal(t, "Food", got[1].Category.Name)
	assert.Equal(t, 2, got[1].Count)
	assert.InDelta(t, 30.0, got[1].Percentage, 1e-9)

	assert.Equal(t, categories.UnknownName, got[2].Category.Name)
	assert.Equal(t, "gone", got[2].Category.ID)
}

func TestByCategoryZeroTotal(t *testing.T) {
	got := ByCategory([]models.Transaction{tx("1", "0", "a", ""), tx("2", "0", "b", "")}, nil)
	require.Len(t, got, 2)
	for _, ct := range got {
		assert.Zero(t, ct.Percentage)
	}
	assert.Empty(t, ByCategory(nil, nil))
}

func TestRowsPreserveOrder(t *testing.T) {
	r := categories.NewResolver([]models.Category{{ID: "g", Name: "Groceries"}})
	rows := Rows([]models.Transaction{tx("b", "1", "x", ""), tx("a", "2", "g", "")}, models.KindExpense, r)

	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].ID)
	assert.Equal(t, categories.UnknownName, rows[0].Resolved.Name)
	assert.Equal(t, "Groceries", rows[1].Resolved.Name)
	assert.Equal(t, models.KindExpense, rows[1].Kind)
}

func TestGroupByDay(t *testing.T) {
	rows := Rows([]models.Transaction{
		tx("1", "5", "c", "2024-05-01T09:00:00Z"),
		tx("2", "7", "c", "bogus"),
		tx("3", "3", "c", "2024-05-03"),
		tx("4", "2", "c", "2024-05-01T18:30:00Z"),
	}, models.KindExpense, nil)

	groups := GroupByDay(rows)
	require.Len(t, groups, 3)

	assert.Equal(t, "2024-05-03", groups[0].Date)
	assert.Equal(t, "2024-05-01", groups[1].Date)
	assertDecimal(t, "7", groups[1].Total)
	if assert.Len(t, groups[1].Rows, 2) {
		assert.Equal(t, "1", groups[1].Rows[0].ID)
		assert.Equal(t, "4", groups[1].Rows[1].ID)
	}
	assert.Equal(t, "", groups[2].Date)
	assert.Empty(t, GroupByDay(nil))
}

func TestLatest(t *testing.T) {
	rows := Rows([]models.Transaction{
		tx("old", "1", "c", "2024-01-01"),
		tx("bad", "1", "c", ""),
		tx("new", "1", "c", "2024-03-01T10:00:00Z"),
		tx("mid", "1", "c", "2024-02-01"),
	}, models.KindIncome, nil)

	latest := Latest(rows, 3)
	require.Len(t, latest, 3)
	assert.Equal(t, "new", latest[0].ID)
	assert.Equal(t, "mid", latest[1].ID)
	assert.Equal(t, "old", latest[2].ID)
	assert.Equal(t, "old", rows[0].ID, "input is not reordered")

	assert.Len(t, Latest(rows, 10), 4)
	assert.Empty(t, Latest(rows, 0))
}

func TestInMonth(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "1", "c", "2024-05-01"),
		tx("2", "1", "c", "2024-05-31T23:59:00Z"),
		tx("3", "1", "c", "2024-06-01"),
		tx("4", "1", "c", "nope"),
	}

	got := InMonth(txs, 2024, time.May)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Empty(t, InMonth(nil, 2024, time.May))
}

func TestMonthAndDayUseUTC(t *testing.T) {
	txs := []models.Transaction{
		tx("late", "4", "c", "2024-01-31T23:30:00-05:00"),
		tx("early", "6", "c", "2024-02-01T00:30:00+02:00"),
	}

	jan := InMonth(txs, 2024, time.January)
	require.Len(t, jan, 1)
	assert.Equal(t, "early", jan[0].ID)
	feb := InMonth(txs, 2024, time.February)
	require.Len(t, feb, 1)
	assert.Equal(t, "late", feb[0].ID)

	groups := GroupByDay(Rows(txs, models.KindExpense, nil))
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-02-01", groups[0].Date)
	assert.Equal(t, "late", groups[0].Rows[0].ID)
	assert.Equal(t, "2024-01-31", groups[1].Date)
	assert.Equal(t, "early", groups[1].Rows[0].ID)
}
