package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
	"finance-tracker/internal/session"
	"finance-tracker/internal/summary"
)

// ListViewModel is the transactions screen: rows grouped by day, newest first.
type ListViewModel struct {
	Title   string             `json:"title"`
	Kind    models.Kind        `json:"kind"`
	Total   decimal.Decimal    `json:"total"`
	Groups  []summary.DayGroup `json:"groups"`
	Message string             `json:"message,omitempty"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, models.KindExpense)
}

func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, models.KindIncome)
}

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	ctx := r.Context()
	resp := ListViewModel{
		Title:  h.localizer.Translate(titleKey(kind)),
		Kind:   kind,
		Total:  decimal.Zero,
		Groups: []summary.DayGroup{},
	}

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
		if h.upstreamFailed(w, r, log.OpList, err) {
			return
		}
		resp.Message = h.localizer.Translate(i18n.KeyLoadingFailed)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Total = summary.Total(txs)
	resp.Groups = summary.GroupByDay(summary.Rows(txs, kind, categories.NewResolver(cats)))
	if len(txs) == 0 {
		resp.Message = h.localizer.Translate(i18n.KeyNoData)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) fetchTransactions(ctx context.Context, kind models.Kind) ([]models.Transaction, error) {
	if kind == models.KindIncome {
		return h.backend.ListIncomes(ctx)
	}
	return h.backend.ListExpenses(ctx)
}

func titleKey(kind models.Kind) string {
	if kind == models.KindIncome {
		return i18n.KeyIncomes
	}
	return i18n.KeyExpenses
}

// TransactionRequest is the body of POST /expenses and POST /incomes.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, models.KindExpense)
}

func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, models.KindIncome)
}

func (h *Handlers) createTransaction(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	token := tokenFromContext(r.Context())
	tx := models.Transaction{
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Date:        strings.TrimSpace(req.Date),
		Category:    strings.TrimSpace(req.Category),
		Owner:       session.Subject(token),
	}
	if tx.Date == "" {
		tx.Date = h.now().UTC().Format(time.RFC3339)
	} else if _, ok := tx.ParsedDate(); !ok {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	if tx.Description == "" {
		tx.Description = h.localizer.Translate(titleKey(kind))
	}
	if err := tx.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	var created models.Transaction
	var err error
	if kind == models.KindIncome {
		created, err = h.backend.CreateIncome(r.Context(), tx)
	} else {
		created, err = h.backend.CreateExpense(r.Context(), tx)
	}
	if err != nil {
		h.writeFailed(w, r, log.OpCreate, err)
		return
	}

	var resolver *categories.Resolver
	if cats, ok := h.categories.Get(token); ok {
		resolver = categories.NewResolver(cats)
	}
	rows := summary.Rows([]models.Transaction{created}, kind, resolver)
	writeJSON(w, http.StatusCreated, rows[0])
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteTransaction(w, r, models.KindExpense)
}

func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	h.deleteTransaction(w, r, models.KindIncome)
}

func (h *Handlers) deleteTransaction(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	var err error
	if kind == models.KindIncome {
		err = h.backend.DeleteIncome(r.Context(), id)
	} else {
		err = h.backend.DeleteExpense(r.Context(), id)
	}
	if err != nil {
		h.writeFailed(w, r, log.OpDelete, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
