package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecup/internal/models"
)

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	p := Default()
	assert.Equal(t, []string{"Americano", "Cappuccino", "Mocha", "Flat White"}, names(p.All()))
}

func TestByID(t *testing.T) {
	p := Default()

	product, err := p.ByID("mocha")
	require.NoError(t, err)
	assert.Equal(t, 4.00, product.UnitPrice)

	_, err = p.ByID("latte")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPopular(t *testing.T) {
	assert.Equal(t, []string{"Americano", "Cappuccino"}, names(Default().Popular()))
}

func TestSearchCappuccinoFirst(t *testing.T) {
	results := Default().Search("cappuccino")
	require.NotEmpty(t, results)
	assert.Equal(t, "cappuccino", results[0].ID)
	assert.Len(t, results, 1)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	p := Default()
	assert.Empty(t, p.Search(""))
	assert.Empty(t, p.Search("   "))
	assert.NotNil(t, p.Search(""))
}

func TestSearchOrdering(t *testing.T) {
	results := Default().Search("ESPRESSO")
	assert.Equal(t, []string{"Cappuccino", "Americano", "Mocha", "Flat White"}, names(results))
}

func TestSearchMatchesIngredientsAndCategory(t *testing.T) {
	p := Default()
	assert.Equal(t, []string{"Mocha"}, names(p.Search("chocolate")))
	assert.Len(t, p.Search("hot coffee"), 4)
	assert.Equal(t, []string{"Flat White"}, names(p.Search("microfoam")))
	assert.Empty(t, p.Search("matcha"))
}

func TestSearchTiesBreakOnName(t *testing.T) {
	p := New([]models.Product{
		{ID: "b", Name: "Breve", Rating: 4, Description: "milk"},
		{ID: "a", Name: "Affogato", Rating: 4, Description: "milk"},
	}, nil)
	assert.Equal(t, []string{"Affogato", "Breve"}, names(p.Search("milk")))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	content := `
products:
  - id: cortado
    name: Cortado
    price: 3.25
    rating: 4.8
    popular: true
    ingredients: espresso
  - id: latte
    name: Latte
    price: 3.60
    category: Iced Coffee
    ingredients: [espresso, milk]
rewards:
  - id: r1
    productId: cortado
    coffeeName: Cortado
    points: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)

	all := p.All()
	require.Len(t, all, 2)
	assert.Equal(t, CategoryHotCoffee, all[0].Category)
	assert.Equal(t, models.StringList{"espresso"}, all[0].Ingredients)
	assert.Equal(t, "Iced Coffee", all[1].Category)
	assert.Equal(t, models.StringList{"espresso", "milk"}, all[1].Ingredients)
	require.Len(t, p.Rewards(), 1)
	assert.Equal(t, 25, p.Rewards()[0].PointsRequired)
}

func TestLoadFileRejectsBadMenus(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty.yaml":     "products: []\n",
		"noprice.yaml":   "products:\n  - id: x\n    name: X\n",
		"duplicate.yaml": "products:\n  - {id: x, name: X, price: 1}\n  - {id: x, name: Y, price: 2}\n",
		"broken.yaml":    "products: [",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildDefaultsAndValidation(t *testing.T) {
	products := []models.Product{
		{ID: "cortado", Name: "Cortado", UnitPrice: 3.25},
		{ID: "latte", Name: "Latte", UnitPrice: 3.60, Category: "Iced Coffee"},
	}
	p, err := build("test", products, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryHotCoffee, p.All()[0].Category)
	assert.Equal(t, "Iced Coffee", p.All()[1].Category)
	assert.Equal(t, Default().Rewards(), p.Rewards())

	bad := map[string][]models.Product{
		"empty":     nil,
		"no name":   {{ID: "x", UnitPrice: 1}},
		"no price":  {{ID: "x", Name: "X"}},
		"duplicate": {{ID: "x", Name: "X", UnitPrice: 1}, {ID: "x", Name: "Y", UnitPrice: 2}},
	}
	for name, products := range bad {
		_, err := build("test", products, nil)
		assert.Error(t, err, name)
	}
}
