// Package categories resolves category ids to display names, icons and colours.
package categories

import (
	"strings"

	"finance-tracker/internal/models"
)

const (
	// UnknownName is shown for transactions whose category is not loaded.
	UnknownName = "Unknown"
	// DefaultIcon is used for unknown categories and for names outside the known set.
	DefaultIcon = "category"
	// DefaultColor pairs with DefaultIcon.
	DefaultColor = "#94a3b8"
)

// Style defines the visual style for a category name.
type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// knownStyles maps lower-case category names to their style.
var knownStyles = map[string]Style{
	"groceries":     {"local_grocery_store", "#34d399"},
	"food":          {"restaurant", "#60a5fa"},
	"restaurants":   {"restaurant", "#60a5fa"},
	"transport":     {"directions_bus", "#a78bfa"},
	"fuel":          {"local_gas_station", "#c084fc"},
	"entertainment": {"sports_esports", "#f472b6"},
	"utilities":     {"lightbulb", "#fbbf24"},
	"housing":       {"home", "#818cf8"},
	"rent":          {"home", "#818cf8"},
	"health":        {"medical_services", "#f87171"},
	"education":     {"school", "#38bdf8"},
	"shopping":      {"shopping_bag", "#fb923c"},
	"travel":        {"flight", "#2dd4bf"},
	"gifts":         {"card_giftcard", "#fb7185"},
	"salary":        {"payments", "#22c55e"},
	"freelance":     {"work", "#10b981"},
	"investments":   {"trending_up", "#14b8a6"},
	"other":         {DefaultIcon, DefaultColor},
}

// StyleFor returns the style of a category name, falling back to the default style.
func StyleFor(name string) Style {
	if s, ok := knownStyles[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return Style{Icon: DefaultIcon, Color: DefaultColor}
}

// Resolved is the display form of a category reference.
type Resolved struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Known bool   `json:"known"`
}

func unknown(id string) Resolved {
	return Resolved{ID: id, Name: UnknownName, Icon: DefaultIcon, Color: DefaultColor}
}

// Resolve looks categoryID up by exact match. It never fails: a miss yields "Unknown".
func Resolve(categoryID string, cats []models.Category) Resolved {
	for _, c := range cats {
		if c.ID == categoryID {
			return resolved(c)
		}
	}
	return unknown(categoryID)
}

func resolved(c models.Category) Resolved {
	st := StyleFor(c.Name)
	return Resolved{ID: c.ID, Name: c.Name, Icon: st.Icon, Color: st.Color, Known: true}
}

// Resolver indexes a category list for repeated lookups.
// The zero value resolves everything to "Unknown".
type Resolver struct {
	byID map[string]models.Category
}

// NewResolver builds a Resolver. When ids repeat, the first category wins, as with Resolve.
func NewResolver(cats []models.Category) *Resolver {
	r := &Resolver{byID: make(map[string]models.Category, len(cats))}
	for _, c := range cats {
		if _, ok := r.byID[c.ID]; !ok {
			r.byID[c.ID] = c
		}
	}
	return r
}

// Resolve behaves like the package-level Resolve against the indexed list.
func (r *Resolver) Resolve(categoryID string) Resolved {
	if r == nil {
		return unknown(categoryID)
	}
	if c, ok := r.byID[categoryID]; ok {
		return resolved(c)
	}
	return unknown(categoryID)
}
