package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes expenses from incomes. Categories carry a kind too.
type Kind string

const (
	KindExpense Kind = "Expense"
	KindIncome  Kind = "Income"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyCategory  = errors.New("category is required")
	ErrInvalidKind    = errors.New("kind must be Expense or Income")
	ErrEmptyName      = errors.New("name is required")
)

// Transaction is an expense or an income as returned by the backend.
// It is a read-only copy for the lifetime of a screen.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Owner       string          `json:"owner"`
}

// Validate checks the fields a client is allowed to send when creating a transaction.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// dateLayouts are the ISO-like formats the backend has been seen to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsedDate returns the transaction date, or false when it matches none of the known layouts.
func (t Transaction) ParsedDate() (time.Time, bool) {
	s := strings.TrimSpace(t.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Category groups transactions of one kind.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Validate checks a category before it is sent to the backend.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	switch c.Kind {
	case KindExpense, KindIncome:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Recommendation is a canned budgeting tip for one category.
type Recommendation struct {
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

// Session represents the signed-in state of the device.
type Session struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	RememberMe bool      `json:"remember_me"`
}
