package shopping

import (
	"testing"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAmount(t *testing.T, raw string) recipe.Amount {
	t.Helper()
	amount, err := recipe.ParseAmount(raw)
	require.NoError(t, err)
	return amount
}

func lineItem(t *testing.T, name, unit, amount string) recipe.LineItem {
	t.Helper()
	return recipe.LineItem{
		ID:          uuid.New(),
		Measurement: recipe.Measurement{ID: uuid.New(), Name: name, Unit: unit},
		Amount:      mustAmount(t, amount),
	}
}

func TestAggregateSumsByMeasurement(t *testing.T) {
	items := []recipe.LineItem{
		lineItem(t, "flour", "g", "200"),
		lineItem(t, "flour", "g", "300"),
	}

	lines := Aggregate(items)
	require.Len(t, lines, 1)
	assert.Equal(t, "flour (g)\t500", lines[0].String())
}

func TestAggregateKeepsUnitsApart(t *testing.T) {
	items := []recipe.LineItem{
		lineItem(t, "flour", "g", "200"),
		lineItem(t, "flour", "kg", "1"),
	}

	lines := Aggregate(items)
	require.Len(t, lines, 2)
	assert.Equal(t, "flour (g)\t200", lines[0].String())
	assert.Equal(t, "flour (kg)\t1", lines[1].String())
}

// A line item shared by several recipes arrives once per recipe
// association and must be counted each time.
func TestAggregateCountsSharedItemsPerRecipe(t *testing.T) {
	shared := lineItem(t, "salt", "g", "10")

	lines := Aggregate([]recipe.LineItem{shared, shared})
	require.Len(t, lines, 1)
	assert.Equal(t, "salt (g)\t20", lines[0].String())
}

func TestAggregateIsExact(t *testing.T) {
	items := []recipe.LineItem{
		lineItem(t, "vanilla", "ml", "0.1"),
		lineItem(t, "vanilla", "ml", "0.2"),
	}

	lines := Aggregate(items)
	require.Len(t, lines, 1)
	assert.Equal(t, "0.3", lines[0].Total.String())
}

func TestAggregateSortsByNameThenUnit(t *testing.T) {
	items := []recipe.LineItem{
		lineItem(t, "sugar", "kg", "1"),
		lineItem(t, "flour", "g", "200"),
		lineItem(t, "sugar", "g", "50"),
	}

	lines := Aggregate(items)
	require.Len(t, lines, 3)
	assert.Equal(t, "flour (g)", lines[0].Label())
	assert.Equal(t, "sugar (g)", lines[1].Label())
	assert.Equal(t, "sugar (kg)", lines[2].Label())
}

func TestAggregateDeterminism(t *testing.T) {
	items := []recipe.LineItem{
		lineItem(t, "beet", "pcs", "2"),
		lineItem(t, "cabbage", "g", "300"),
		lineItem(t, "beet", "pcs", "1"),
		lineItem(t, "apple", "pcs", "4"),
	}

	first := Render(Aggregate(items))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Render(Aggregate(items)))
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "", Render(nil))

	lines := Aggregate([]recipe.LineItem{
		lineItem(t, "flour", "g", "500"),
		lineItem(t, "milk", "ml", "250"),
	})
	assert.Equal(t, "flour (g)\t500\nmilk (ml)\t250", Render(lines))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "chef_shopping_cart.txt", Filename("chef"))
}
