package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_EmbeddedDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	require.Equal(t, 10, catalog.Len())

	items := catalog.Items()
	wantNames := []string{
		"Margherita Pizza",
		"Pasta Carbonara",
		"Caesar Salad",
		"Cheeseburger",
		"Spaghetti Bolognese",
		"Veggie Pizza",
		"Grilled Chicken Salad",
		"Tiramisu",
		"Chocolate Lava Cake",
		"Double Bacon Burger",
	}
	for i, name := range wantNames {
		assert.Equal(t, name, items[i].Name)
	}

	featured := 0
	for _, item := range items {
		if item.IsFeatured {
			featured++
		}
		assert.NotEmpty(t, item.ID)
		assert.NotEmpty(t, item.Category)
		assert.GreaterOrEqual(t, item.Rating, 0.0)
		assert.LessOrEqual(t, item.Rating, 5.0)
	}
	assert.Equal(t, 2, featured)
}

func TestCatalogItems_ReturnsCopy(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	items := catalog.Items()
	items[0].Name = "Mutated"

	assert.Equal(t, "Margherita Pizza", catalog.Items()[0].Name)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yml")
	require.NoError(t, os.WriteFile(path, []byte(`items:
  - id: "42"
    name: Seasonal Special
    description: Chef's choice.
    price: 19.90
    category: special
    rating: 4.8
    isFeatured: true
    imageUrl: https://example.com/special.png
`), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())

	item := catalog.Items()[0]
	assert.Equal(t, "42", item.ID)
	assert.Equal(t, "Seasonal Special", item.Name)
	assert.Equal(t, 19.90, item.Price)
	assert.True(t, item.IsFeatured)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadCatalog_RejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "{{{"},
		{"no items", "items: []"},
		{"missing id", "items:\n  - name: Nameless\n    price: 1.0"},
		{"missing name", "items:\n  - id: \"1\"\n    price: 1.0"},
		{"negative price", "items:\n  - id: \"1\"\n    name: Bad\n    price: -1.0"},
		{"rating out of range", "items:\n  - id: \"1\"\n    name: Bad\n    price: 1.0\n    rating: 6.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "menu.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}
}
