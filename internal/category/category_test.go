package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadebe/kobo/internal/category"
)

func TestList(t *testing.T) {
	all := category.List("")
	income := category.List(category.TypeIncome)
	expense := category.List(category.TypeExpense)

	assert.Len(t, all, 21)
	assert.Len(t, income, 6)
	assert.Len(t, expense, 15)

	// Catalog order is preserved.
	assert.Equal(t, "salary", income[0].ID)
	assert.Equal(t, "housing", expense[0].ID)
	assert.Equal(t, "other-expense", expense[len(expense)-1].ID)

	for _, c := range income {
		assert.Equal(t, category.TypeIncome, c.Type)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	all := category.List("")
	all[0].Name = "mutated"

	again := category.List("")
	assert.Equal(t, "Salary", again[0].Name)
}

func TestByID(t *testing.T) {
	c, ok := category.ByID("groceries")
	require.True(t, ok)
	assert.Equal(t, "Groceries", c.Name)
	assert.Equal(t, category.TypeExpense, c.Type)

	_, ok = category.ByID("nope")
	assert.False(t, ok)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, "#EA580C", category.ColorOf("housing"))
	assert.Equal(t, category.DefaultColor, category.ColorOf("unknown-id"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, category.IsValid("salary", category.TypeIncome))
	assert.False(t, category.IsValid("salary", category.TypeExpense))
	assert.False(t, category.IsValid("unknown", category.TypeIncome))
}
