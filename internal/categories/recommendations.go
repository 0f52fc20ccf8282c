package categories

import (
	"strings"

	"finance-tracker/internal/models"
)

// DefaultRecommendationColor is used for advice whose category has no entry below.
const DefaultRecommendationColor = "#64748b"

var recommendationColors = map[string]string{
	"savings":       "#22c55e",
	"food":          "#60a5fa",
	"groceries":     "#34d399",
	"transport":     "#a78bfa",
	"entertainment": "#f472b6",
	"utilities":     "#fbbf24",
	"housing":       "#818cf8",
	"debt":          "#ef4444",
	"investments":   "#14b8a6",
}

// RecommendationColor returns the colour used to render advice for a category.
func RecommendationColor(category string) string {
	if c, ok := recommendationColors[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return DefaultRecommendationColor
}

// RecommendationItem is a recommendation ready to render.
type RecommendationItem struct {
	models.Recommendation
	Color string `json:"color"`
}

// Decorate attaches colours to recommendations, keeping their order.
func Decorate(recs []models.Recommendation) []RecommendationItem {
	items := make([]RecommendationItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, RecommendationItem{Recommendation: r, Color: RecommendationColor(r.Category)})
	}
	return items
}
