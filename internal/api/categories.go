package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"finance-tracker/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	if err := cat.Validate(); err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	var created models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", cat, &created); err != nil {
		return models.Category{}, err
	}
	if created.ID == "" {
		created = cat
	}
	return created, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := c.do(ctx, http.MethodGet, "/recommendations", nil, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return recs, nil
}
