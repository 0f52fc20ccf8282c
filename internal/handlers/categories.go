package handlers

import (
	"context"
	"net/http"
	"strings"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
)

// loadCategories returns the category list for token, from cache when possible.
// The list lives as long as the session that fetched it.
func (h *Handlers) loadCategories(ctx context.Context, token string) ([]models.Category, error) {
	if cats, ok := h.categories.Get(token); ok {
		return cats, nil
	}
	cats, err := h.backend.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	h.categories.Set(token, cats)
	return cats, nil
}

// CategoryItem is a category with its display style.
type CategoryItem struct {
	categories.Resolved
	Kind models.Kind `json:"kind"`
}

type CategoriesResponse struct {
	Title      string         `json:"title"`
	Categories []CategoryItem `json:"categories"`
	Message    string         `json:"message,omitempty"`
}

// ListCategories returns the user's categories, optionally filtered by ?kind=expense|income.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	var kind models.Kind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, ok := parseKind(raw)
		if !ok {
			h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
			return
		}
		kind = k
	}

	resp := CategoriesResponse{
		Title:      h.localizer.Translate(i18n.KeyCategories),
		Categories: []CategoryItem{},
	}

	cats, err := h.loadCategories(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		if h.upstreamFailed(w, r, log.OpList, err) {
			return
		}
		resp.Message = h.localizer.Translate(i18n.KeyLoadingFailed)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resolver := categories.NewResolver(cats)
	for _, c := range cats {
		if kind != "" && c.Kind != kind {
			continue
		}
		resp.Categories = append(resp.Categories, CategoryItem{Resolved: resolver.Resolve(c.ID), Kind: c.Kind})
	}
	if len(resp.Categories) == 0 {
		resp.Message = h.localizer.Translate(i18n.KeyNoData)
	}
	writeJSON(w, http.StatusOK, resp)
}

type CategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CreateCategory adds a category and invalidates the cached list.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	kind, ok := parseKind(req.Kind)
	if !ok {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	cat := models.Category{Name: strings.TrimSpace(req.Name), Kind: kind}
	if err := cat.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	created, err := h.backend.CreateCategory(r.Context(), cat)
	if err != nil {
		h.writeFailed(w, r, log.OpCreate, err)
		return
	}
	h.categories.Delete(tokenFromContext(r.Context()))

	writeJSON(w, http.StatusCreated, CategoryItem{
		Resolved: categories.Resolve(created.ID, []models.Category{created}),
		Kind:     created.Kind,
	})
}

// DeleteCategory removes a category and invalidates the cached list.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	if err := h.backend.DeleteCategory(r.Context(), id); err != nil {
		h.writeFailed(w, r, log.OpDelete, err)
		return
	}
	h.categories.Delete(tokenFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// parseKind accepts "expense"/"income" in any case.
func parseKind(s string) (models.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return models.KindExpense, true
	case "income", "incomes":
		return models.KindIncome, true
	default:
		return "", false
	}
}
