package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/charts"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
	"finance-tracker/internal/summary"
)

// recentRows is how many transactions the dashboard lists.
const recentRows = 10

type DashboardResponse struct {
	Title           string          `json:"title"`
	Summary         summary.Summary `json:"summary"`
	DisplayRatio    float64         `json:"display_ratio"`
	Warning         string          `json:"warning,omitempty"`
	ExpensePie      []charts.Slice  `json:"expense_pie"`
	IncomeVsExpense []charts.Bar    `json:"income_vs_expense"`
	Recent          []summary.Row   `json:"recent"`
	Message         string          `json:"message,omitempty"`
}

// Dashboard loads expenses, incomes and categories concurrently and returns
// totals, an expense pie by category, income vs expense bars and the latest rows.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := tokenFromContext(ctx)

	var expenses, incomes []models.Transaction
	var cats []models.Category

	// Calls do not cancel each other, so a 401 is seen even when another call fails first.
	var g errgroup.Group
	errs := make([]error, 3)
	g.Go(func() error {
		expenses, errs[0] = h.backend.ListExpenses(ctx)
		return errs[0]
	})
	g.Go(func() error {
		incomes, errs[1] = h.backend.ListIncomes(ctx)
		return errs[1]
	})
	g.Go(func() error {
		cats, errs[2] = h.loadCategories(ctx, token)
		return errs[2]
	})
	_ = g.Wait()

	if err := loadErr(errs...); err != nil {
		if h.upstreamFailed(w, r, log.OpDashboard, err) {
			return
		}
		writeJSON(w, http.StatusOK, h.emptyDashboard(i18n.KeyLoadingFailed))
		return
	}

	writeJSON(w, http.StatusOK, h.buildDashboard(expenses, incomes, cats))
}

func (h *Handlers) emptyDashboard(messageKey string) DashboardResponse {
	resp := h.buildDashboard(nil, nil, nil)
	resp.Message = h.localizer.Translate(messageKey)
	return resp
}

func (h *Handlers) buildDashboard(expenses, incomes []models.Transaction, cats []models.Category) DashboardResponse {
	resolver := categories.NewResolver(cats)
	sum := summary.Summarize(expenses, incomes)

	byCategory := summary.ByCategory(expenses, resolver)
	values := make([]float64, len(byCategory))
	labels := make([]string, len(byCategory))
	for i, ct := range byCategory {
		values[i] = ct.Total.InexactFloat64()
		labels[i] = ct.Category.Name
	}

	rows := append(summary.Rows(expenses, models.KindExpense, resolver),
		summary.Rows(incomes, models.KindIncome, resolver)...)

	resp := DashboardResponse{
		Title:        h.localizer.Translate(i18n.KeyDashboardTitle),
		Summary:      sum,
		DisplayRatio: sum.DisplayRatio(),
		ExpensePie:   charts.ShapePie(values, labels),
		IncomeVsExpense: charts.ShapeBars(
			[]float64{sum.TotalIncome.InexactFloat64(), sum.TotalExpense.InexactFloat64()},
			[]string{h.localizer.Translate(i18n.KeyTotalIncome), h.localizer.Translate(i18n.KeyTotalExpense)},
		),
		Recent: summary.Latest(rows, recentRows),
	}
	if sum.ExceedsIncome {
		resp.Warning = h.localizer.Translate(i18n.KeyOverspending)
	}
	if len(rows) == 0 {
		resp.Message = h.localizer.Translate(i18n.KeyNoData)
	}
	return resp
}
