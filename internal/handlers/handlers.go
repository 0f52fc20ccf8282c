package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finance-tracker/internal/api"
	"finance-tracker/internal/cache"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
	"finance-tracker/internal/session"
)

// Context key type to avoid collisions.
type contextKey string

// TokenContextKey is the context key for the access token of an authenticated request.
const TokenContextKey contextKey = "token"

// Backend is the subset of the REST client the screens use.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
	Signup(ctx context.Context, req api.SignupRequest) error
	ResetPassword(ctx context.Context, email string) error

	ListExpenses(ctx context.Context) ([]models.Transaction, error)
	ListIncomes(ctx context.Context) ([]models.Transaction, error)
	CreateExpense(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	CreateIncome(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	DeleteExpense(ctx context.Context, id string) error
	DeleteIncome(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, cat models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListRecommendations(ctx context.Context) ([]models.Recommendation, error)
}

// Preferences persists device settings such as the selected language.
type Preferences interface {
	Set(key, value string) error
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	backend    Backend
	sessions   *session.Store
	localizer  *i18n.Localizer
	prefs      Preferences
	categories cache.Cache[[]models.Category]
	logger     *log.Logger
	now        func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(backend Backend, sessions *session.Store, localizer *i18n.Localizer,
	prefs Preferences, categoryCache cache.Cache[[]models.Category], logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Discard()
	}
	return &Handlers{
		backend:    backend,
		sessions:   sessions,
		localizer:  localizer,
		prefs:      prefs,
		categories: categoryCache,
		logger:     logger.WithComponent(log.ComponentHTTP),
		now:        time.Now,
	}
}

// tokenFromContext returns the access token AuthMiddleware attached to the request.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}

// AuthMiddleware rejects requests without a live session. An expired session
// is cleared before the 401 goes out.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.sessions.Read()
		if !ok || h.sessions.IsExpired() {
			h.expireSession(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// expireSession drops the local session and its cached data and answers 401.
func (h *Handlers) expireSession(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.sessions.Read(); ok {
		h.categories.Delete(token)
	}
	if err := h.sessions.Clear(); err != nil {
		h.loggerFor(r).Error("Failed to clear session", log.FieldError, err.Error())
	}
	h.writeError(w, http.StatusUnauthorized, i18n.KeySessionExpired)
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, key string) {
	writeJSON(w, status, ErrorResponse{Error: key, Message: h.localizer.Translate(key)})
}

// upstreamFailed handles a backend error for a screen load. A rejected token
// expires the session and returns true; any other failure is logged and the
// caller renders its empty screen.
func (h *Handlers) upstreamFailed(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	if api.IsUnauthorized(err) {
		h.expireSession(w, r)
		return true
	}
	h.loggerFor(r).Warn("Backend call failed",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
	return false
}

// loadErr picks the error a screen load reports. A rejected token wins over
// any other failure so the session is always expired.
func loadErr(errs ...error) error {
	for _, err := range errs {
		if api.IsUnauthorized(err) {
			return err
		}
	}
	return errors.Join(errs...)
}

// writeFailed reports a failed write. A rejected token expires the session,
// a 4xx from the backend is passed on as 400, anything else is a 502.
func (h *Handlers) writeFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	if api.IsUnauthorized(err) {
		h.expireSession(w, r)
		return
	}
	h.loggerFor(r).Warn("Backend write failed",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: i18n.KeyInvalidRequest, Message: apiErr.Message})
		return
	}
	h.writeError(w, http.StatusBadGateway, i18n.KeySaveFailed)
}

func (h *Handlers) loggerFor(r *http.Request) *log.Logger {
	if l := log.FromContext(r.Context()); l.Component() != "unknown" {
		return l
	}
	return h.logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Health reports that the process is serving.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
