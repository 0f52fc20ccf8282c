package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"finance-tracker/internal/models"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "testpass123"
)

// fakeBackend is a minimal in-memory version of the finance REST API.
type fakeBackend struct {
	mu       sync.Mutex
	token    string
	expenses []models.Transaction
	incomes  []models.Transaction
	cats     []models.Category
}

func newFakeBackend() *fakeBackend {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ana"}).SignedString([]byte("e2e"))
	if err != nil {
		panic(err)
	}
	return &fakeBackend{
		token: token,
		cats: []models.Category{
			{ID: "c-food", Name: "Food", Kind: models.KindExpense},
			{ID: "c-pay", Name: "Salary", Kind: models.KindIncome},
		},
	}
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("GET /expenses", b.authed(b.list(&b.expenses)))
	mux.HandleFunc("GET /incomes", b.authed(b.list(&b.incomes)))
	mux.HandleFunc("POST /expenses", b.authed(b.create(&b.expenses)))
	mux.HandleFunc("POST /incomes", b.authed(b.create(&b.incomes)))
	mux.HandleFunc("DELETE /expenses/{id}", b.authed(b.remove(&b.expenses)))
	mux.HandleFunc("GET /categories", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.cats)
	}))
	mux.HandleFunc("GET /recommendations", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Recommendation{{Category: "food", Advice: "Cook at home"}})
	}))
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if creds.Email != testEmail || creds.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": b.token})
}

func (b *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) list(txs *[]models.Transaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := append([]models.Transaction{}, *txs...)
		writeJSON(w, http.StatusOK, out)
	}
}

func (b *fakeBackend) create(txs *[]models.Transaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tx models.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		tx.ID = uuid.NewString()
		b.mu.Lock()
		*txs = append(*txs, tx)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, tx)
	}
}

func (b *fakeBackend) remove(txs *[]models.Transaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, tx := range *txs {
			if tx.ID == id {
				*txs = append((*txs)[:i], (*txs)[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("no transaction %s", strings.TrimSpace(id))})
	}
}

func (b *fakeBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expenses = nil
	b.incomes = nil
}
