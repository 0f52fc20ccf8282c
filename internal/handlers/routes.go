package handlers

import "net/http"

// Routes registers every screen endpoint. Data screens sit behind AuthMiddleware;
// auth, language and health endpoints do not.
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	protected := func(f http.HandlerFunc) http.Handler { return h.AuthMiddleware(f) }

	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /password-reset", h.PasswordReset)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.Handle("GET /dashboard", protected(h.Dashboard))

	mux.Handle("GET /expenses", protected(h.ListExpenses))
	mux.Handle("POST /expenses", protected(h.CreateExpense))
	mux.Handle("DELETE /expenses/{id}", protected(h.DeleteExpense))
	mux.Handle("GET /incomes", protected(h.ListIncomes))
	mux.Handle("POST /incomes", protected(h.CreateIncome))
	mux.Handle("DELETE /incomes/{id}", protected(h.DeleteIncome))

	mux.Handle("GET /categories", protected(h.ListCategories))
	mux.Handle("POST /categories", protected(h.CreateCategory))
	mux.Handle("DELETE /categories/{id}", protected(h.DeleteCategory))

	mux.Handle("GET /statistics", protected(h.Statistics))
	mux.Handle("GET /recommendations", protected(h.Recommendations))

	mux.HandleFunc("GET /language", h.GetLanguage)
	mux.HandleFunc("PUT /language", h.SetLanguage)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}
