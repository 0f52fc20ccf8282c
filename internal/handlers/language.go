package handlers

import (
	"net/http"
	"strings"

	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/storage"
)

type LanguageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

// GetLanguage reports the active language and the supported ones.
func (h *Handlers) GetLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguageResponse{
		Language:  h.localizer.Language(),
		Supported: h.localizer.Supported(),
	})
}

// SetLanguage switches the active language and persists the choice.
// Unsupported codes fall back to the default language.
func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Language) == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	active := h.localizer.SetLanguage(req.Language)
	if err := h.prefs.Set(storage.KeyLanguage, active); err != nil {
		h.loggerFor(r).Error("Failed to persist language",
			log.NewFields().WithOperation(log.OpLanguage).WithError(err).With(log.FieldLanguage, active).ToSlice()...)
	}

	h.GetLanguage(w, r)
}
