package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/categories"
	"finance-tracker/internal/models"
)

// CategoryTotal represents a category with its aggregated figures.
type CategoryTotal struct {
	Category   categories.Resolved `json:"category"`
	Total      decimal.Decimal     `json:"total"`
	Count      int                 `json:"count"`
	Percentage float64             `json:"percentage"`
}

// ByCategory aggregates txs per category id. Percentages are relative to the
// list total and are 0 when that total is 0. Results are ordered by descending
// total, then by name, then by id.
func ByCategory(txs []models.Transaction, r *categories.Resolver) []CategoryTotal {
	index := make(map[string]int)
	out := make([]CategoryTotal, 0)
	total := decimal.Zero

	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: r.Resolve(t.Category), Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
		total = total.Add(t.Amount)
	}

	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range out {
			out[i].Percentage = out[i].Total.Div(total).Mul(hundred).InexactFloat64()
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		if out[i].Category.Name != out[j].Category.Name {
			return out[i].Category.Name < out[j].Category.Name
		}
		return out[i].Category.ID < out[j].Category.ID
	})
	return out
}

// Row is a transaction labeled with its resolved category.
type Row struct {
	models.Transaction
	Kind     models.Kind         `json:"kind"`
	Resolved categories.Resolved `json:"resolved_category"`
}

// Rows labels txs with their categories, preserving input order.
func Rows(txs []models.Transaction, kind models.Kind, r *categories.Resolver) []Row {
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, Row{Transaction: t, Kind: kind, Resolved: r.Resolve(t.Category)})
	}
	return rows
}

// DayGroup groups rows of one calendar day.
type DayGroup struct {
	// Date is YYYY-MM-DD, or empty for rows whose date could not be parsed.
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Rows  []Row           `json:"rows"`
}

// GroupByDay groups rows by UTC calendar day, newest day first. Rows keep their
// relative order inside a group. Rows with unparseable dates form one trailing group.
func GroupByDay(rows []Row) []DayGroup {
	groups := make(map[string]*DayGroup)
	for _, row := range rows {
		key := ""
		if d, ok := row.ParsedDate(); ok {
			key = d.UTC().Format("2006-01-02")
		}
		g, ok := groups[key]
		if !ok {
			g = &DayGroup{Date: key, Total: decimal.Zero}
			groups[key] = g
		}
		g.Total = g.Total.Add(row.Amount)
		g.Rows = append(g.Rows, row)
	}

	out := make([]DayGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == "" || out[j].Date == "" {
			return out[j].Date == "" && out[i].Date != ""
		}
		return out[i].Date > out[j].Date
	})
	return out
}

// Latest returns up to n rows ordered newest first. Rows with unparseable
// dates sort last; ties keep input order.
func Latest(rows []Row, n int) []Row {
	if n <= 0 {
		return []Row{}
	}
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, oki := sorted[i].ParsedDate()
		dj, okj := sorted[j].ParsedDate()
		if oki != okj {
			return oki
		}
		return di.After(dj)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// InMonth keeps the transactions dated in the given UTC calendar month.
// Transactions with unparseable dates are dropped.
func InMonth(txs []models.Transaction, year int, month time.Month) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		d, ok := t.ParsedDate()
		if !ok {
			continue
		}
		if d = d.UTC(); d.Year() == year && d.Month() == month {
			out = append(out, t)
		}
	}
	return out
}
