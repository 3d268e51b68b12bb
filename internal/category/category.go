// Package category holds the static catalog of transaction categories.
// The catalog is loaded at process start and never mutated.
package category

// Type tags a category as an income or expense category.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// DefaultColor is returned for category ids the catalog does not know.
const DefaultColor = "#9CA3AF"

// Category describes the display metadata for one category.
type Category struct {
	ID            string
	Name          string
	Type          Type
	Color         string
	Icon          string
	Subcategories []string
}

var catalog = []Category{
	{ID: "salary", Name: "Salary", Type: TypeIncome, Color: "#F97316", Icon: "Wallet"},
	{ID: "freelance", Name: "Freelance", Type: TypeIncome, Color: "#FB923C", Icon: "Laptop"},
	{ID: "investments", Name: "Investments", Type: TypeIncome, Color: "#FBBF24", Icon: "TrendingUp"},
	{ID: "business", Name: "Business", Type: TypeIncome, Color: "#F59E0B", Icon: "Building"},
	{ID: "rental", Name: "Rental", Type: TypeIncome, Color: "#FFEDD5", Icon: "Home"},
	{ID: "other-income", Name: "Other Income", Type: TypeIncome, Color: "#6B7280", Icon: "Plus"},

	{ID: "housing", Name: "Housing", Type: TypeExpense, Color: "#EA580C", Icon: "Home",
		Subcategories: []string{"Rent", "Mortgage", "Property Tax", "Maintenance"}},
	{ID: "transportation", Name: "Transportation", Type: TypeExpense, Color: "#F97316", Icon: "Car",
		Subcategories: []string{"Fuel", "Public Transport", "Maintenance", "Parking"}},
	{ID: "groceries", Name: "Groceries", Type: TypeExpense, Color: "#FB923C", Icon: "Shopping"},
	{ID: "utilities", Name: "Utilities", Type: TypeExpense, Color: "#FDBA74", Icon: "Zap",
		Subcategories: []string{"Electricity", "Water", "Gas", "Internet", "Phone"}},
	{ID: "entertainment", Name: "Entertainment", Type: TypeExpense, Color: "#FBBF24", Icon: "Film",
		Subcategories: []string{"Movies", "Games", "Streaming Services"}},
	{ID: "food", Name: "Food", Type: TypeExpense, Color: "#F59E0B", Icon: "UtensilsCrossed"},
	{ID: "shopping", Name: "Shopping", Type: TypeExpense, Color: "#FFEDD5", Icon: "ShoppingBag",
		Subcategories: []string{"Clothing", "Electronics", "Home Goods"}},
	{ID: "healthcare", Name: "Healthcare", Type: TypeExpense, Color: "#EA580C", Icon: "HeartPulse",
		Subcategories: []string{"Medical", "Dental", "Pharmacy", "Insurance"}},
	{ID: "education", Name: "Education", Type: TypeExpense, Color: "#D97706", Icon: "GraduationCap",
		Subcategories: []string{"Tuition", "Books", "Courses"}},
	{ID: "personal", Name: "Personal Care", Type: TypeExpense, Color: "#F472B6", Icon: "Smile",
		Subcategories: []string{"Haircut", "Gym", "Beauty"}},
	{ID: "travel", Name: "Travel", Type: TypeExpense, Color: "#FCD34D", Icon: "Plane"},
	{ID: "insurance", Name: "Insurance", Type: TypeExpense, Color: "#6B7280", Icon: "Shield",
		Subcategories: []string{"Life", "Home", "Vehicle"}},
	{ID: "gifts", Name: "Gifts & Donations", Type: TypeExpense, Color: "#FBBF24", Icon: "Gift"},
	{ID: "bills", Name: "Bills & Fees", Type: TypeExpense, Color: "#FB923C", Icon: "Receipt",
		Subcategories: []string{"Bank Fees", "Late Fees", "Service Charges"}},
	{ID: "other-expense", Name: "Other Expenses", Type: TypeExpense, Color: "#9CA3AF", Icon: "MoreHorizontal"},
}

var byID = func() map[string]Category {
	m := make(map[string]Category, len(catalog))
	for _, c := range catalog {
		m[c.ID] = c
	}

	return m
}()

// List returns the categories of the given type in catalog order.
// An empty type returns the full catalog.
func List(t Type) []Category {
	if t == "" {
		out := make([]Category, len(catalog))
		copy(out, catalog)

		return out
	}

	var out []Category

	for _, c := range catalog {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

// ByID looks up a category by its identifier.
func ByID(id string) (Category, bool) {
	c, ok := byID[id]
	return c, ok
}

// ColorOf returns the display color for a category id, or DefaultColor
// when the id is unknown.
func ColorOf(id string) string {
	if c, ok := byID[id]; ok {
		return c.Color
	}

	return DefaultColor
}

// IsValid reports whether id names a known category of the given type.
func IsValid(id string, t Type) bool {
	c, ok := byID[id]
	return ok && c.Type == t
}
