// Package shopping implements shopping-list aggregation: summing ingredient
// quantities across a user's cart recipes, grouped by measurement.
package shopping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foodgram/backend/internal/domain/recipe"
)

// Line is one aggregated shopping-list entry: the total quantity of a
// single (component, unit) pair across every recipe in the cart. Lines are
// derived on every request and never persisted.
type Line struct {
	Name  string
	Unit  string
	Total recipe.Amount
}

// Label renders the line's measurement as "name (unit)".
func (l Line) Label() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Unit)
}

// String renders the line in the export format.
func (l Line) String() string {
	return fmt.Sprintf("%s\t%s", l.Label(), l.Total)
}

// Aggregate groups line items by their measurement's (name, unit) pair and
// sums the amounts within each group with exact decimal arithmetic. The
// input carries one element per recipe association: a line item shared by
// several cart recipes is counted once per recipe that needs it.
//
// Grouping is by measurement identity in the (name, unit) sense, not by
// line-item row: "200 g flour" and "300 g flour" are distinct rows that
// collapse into a single 500 g line. The result is sorted by name, then
// unit, so a fixed input set always yields the same output.
func Aggregate(items []recipe.LineItem) []Line {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]recipe.Amount)
	for _, item := range items {
		k := key{name: item.Measurement.Name, unit: item.Measurement.Unit}
		if total, ok := totals[k]; ok {
			totals[k] = total.Add(item.Amount)
		} else {
			totals[k] = item.Amount
		}
	}

	lines := make([]Line, 0, len(totals))
	for k, total := range totals {
		lines = append(lines, Line{Name: k.name, Unit: k.unit, Total: total})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].Unit < lines[j].Unit
	})

	return lines
}

// Render joins aggregated lines into the downloadable document body. An
// empty cart produces an empty document, not an error.
func Render(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = line.String()
	}
	return strings.Join(rendered, "\n")
}

// Filename returns the suggested attachment name for a user's export.
func Filename(username string) string {
	return fmt.Sprintf("%s_shopping_cart.txt", username)
}
