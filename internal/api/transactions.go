package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
)

func collectionPath(kind models.Kind) (string, error) {
	switch kind {
	case models.KindExpense:
		return "/expenses", nil
	case models.KindIncome:
		return "/incomes", nil
	default:
		return "", models.ErrInvalidKind
	}
}

// transactionRequest is the create body. The backend reads amount as a JSON number.
type transactionRequest struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Owner       string      `json:"owner,omitempty"`
}

func newTransactionRequest(tx models.Transaction) transactionRequest {
	return transactionRequest{
		Amount:      json.Number(tx.Amount.String()),
		Description: tx.Description,
		Date:        tx.Date,
		Category:    tx.Category,
		Owner:       tx.Owner,
	}
}

func (c *Client) ListExpenses(ctx context.Context) ([]models.Transaction, error) {
	return c.listTransactions(ctx, models.KindExpense)
}

func (c *Client) ListIncomes(ctx context.Context) ([]models.Transaction, error) {
	return c.listTransactions(ctx, models.KindIncome)
}

// listTransactions drops rows with a negative amount.
func (c *Client) listTransactions(ctx context.Context, kind models.Kind) ([]models.Transaction, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &txs); err != nil {
		return nil, err
	}

	valid := txs[:0]
	for _, tx := range txs {
		if tx.Amount.IsNegative() {
			c.logger.WarnContext(ctx, "Dropping transaction with negative amount",
				log.FieldEndpoint, path, "id", tx.ID, "amount", tx.Amount.String())
			continue
		}
		valid = append(valid, tx)
	}
	if valid == nil {
		valid = []models.Transaction{}
	}
	return valid, nil
}

func (c *Client) CreateExpense(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	return c.createTransaction(ctx, models.KindExpense, tx)
}

func (c *Client) CreateIncome(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	return c.createTransaction(ctx, models.KindIncome, tx)
}

func (c *Client) createTransaction(ctx context.Context, kind models.Kind, tx models.Transaction) (models.Transaction, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, fmt.Errorf("create %s: %w", kind, err)
	}

	var created models.Transaction
	if err := c.do(ctx, http.MethodPost, path, newTransactionRequest(tx), &created); err != nil {
		return models.Transaction{}, err
	}
	if created.ID == "" {
		created = tx
	}
	return created, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.deleteTransaction(ctx, models.KindExpense, id)
}

func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	return c.deleteTransaction(ctx, models.KindIncome, id)
}

func (c *Client) deleteTransaction(ctx context.Context, kind models.Kind, id string) error {
	path, err := collectionPath(kind)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil)
}
