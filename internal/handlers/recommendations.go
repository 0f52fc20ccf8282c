package handlers

import (
	"net/http"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
)

type RecommendationsResponse struct {
	Title   string                          `json:"title"`
	Items   []categories.RecommendationItem `json:"items"`
	Message string                          `json:"message,omitempty"`
}

// Recommendations lists the backend's budgeting tips with their category colour.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	resp := RecommendationsResponse{
		Title: h.localizer.Translate(i18n.KeyRecommendationsTitle),
		Items: []categories.RecommendationItem{},
	}

	recs, err := h.backend.ListRecommendations(r.Context())
	if err != nil {
		if h.upstreamFailed(w, r, log.OpList, err) {
			return
		}
		resp.Message = h.localizer.Translate(i18n.KeyLoadingFailed)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Items = categories.Decorate(recs)
	if len(resp.Items) == 0 {
		resp.Message = h.localizer.Translate(i18n.KeyNoData)
	}
	writeJSON(w, http.StatusOK, resp)
}
