package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/charts"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
	"finance-tracker/internal/summary"
)

// StatsViewModel is the statistics screen for one kind and one month.
type StatsViewModel struct {
	Title          string                  `json:"title"`
	Kind           models.Kind             `json:"kind"`
	Year           int                     `json:"year"`
	Month          int                     `json:"month"`
	MonthName      string                  `json:"month_name"`
	Total          decimal.Decimal         `json:"total"`
	Categories     []summary.CategoryTotal `json:"categories"`
	Pie            []charts.Slice          `json:"pie"`
	Bars           []charts.Bar            `json:"bars"`
	Rows           []summary.Row           `json:"rows"`
	PrevYear       int                     `json:"prev_year"`
	PrevMonth      int                     `json:"prev_month"`
	NextYear       int                     `json:"next_year"`
	NextMonth      int                     `json:"next_month"`
	IsCurrentMonth bool                    `json:"is_current_month"`
	Message        string                  `json:"message,omitempty"`
}

// Statistics returns the per-category breakdown of ?kind=expense|income for
// ?year=&month=, defaulting to expenses in the current month.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind := models.KindExpense
	if raw := q.Get("kind"); raw != "" {
		k, ok := parseKind(raw)
		if !ok {
			h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
			return
		}
		kind = k
	}

	now := h.now().UTC()
	year := now.Year()
	month := int(now.Month())
	if y, err := strconv.Atoi(q.Get("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(q.Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	resp := StatsViewModel{
		Title:          h.localizer.Translate(i18n.KeyStatisticsTitle),
		Kind:           kind,
		Year:           year,
		Month:          month,
		MonthName:      time.Month(month).String(),
		Total:          decimal.Zero,
		Categories:     []summary.CategoryTotal{},
		Pie:            []charts.Slice{},
		Bars:           []charts.Bar{},
		Rows:           []summary.Row{},
		PrevYear:       prev.Year(),
		PrevMonth:      int(prev.Month()),
		NextYear:       next.Year(),
		NextMonth:      int(next.Month()),
		IsCurrentMonth: year == now.Year() && month == int(now.Month()),
	}

	ctx := r.Context()
	var txs []models.Transaction
	var cats []models.Category
	var g errgroup.Group
	errs := make([]error, 2)
	g.Go(func() error {
		txs, errs[0] = h.fetchTransactions(ctx, kind)
		return errs[0]
	})
	g.Go(func() error {
		cats, errs[1] = h.loadCategories(ctx, tokenFromContext(ctx))
		return errs[1]
	})
	_ = g.Wait()
	if err := loadErr(errs...); err != nil {
		if h.upstreamFailed(w, r, log.OpStats, err) {
			return
		}
		resp.Message = h.localizer.Translate(i18n.KeyLoadingFailed)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	txs = summary.InMonth(txs, year, time.Month(month))
	resolver := categories.NewResolver(cats)

	resp.Total = summary.Total(txs)
	resp.Categories = summary.ByCategory(txs, resolver)
	values := make([]float64, len(resp.Categories))
	labels := make([]string, len(resp.Categories))
	for i, ct := range resp.Categories {
		values[i] = ct.Total.InexactFloat64()
		labels[i] = ct.Category.Name
	}
	resp.Pie = charts.ShapePie(values, labels)
	resp.Bars = charts.ShapeBars(values, labels)
	resp.Rows = summary.Latest(summary.Rows(txs, kind, resolver), len(txs))
	if len(txs) == 0 {
		resp.Message = h.localizer.Translate(i18n.KeyNoData)
	}

	writeJSON(w, http.StatusOK, resp)
}
