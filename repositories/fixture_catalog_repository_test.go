package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-fresh/models"
)

func TestFixtureCatalog_Embedded(t *testing.T) {
	repo, err := NewFixtureCatalogRepository("")
	require.NoError(t, err)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 10)
	assert.Equal(t, "Fresh Tomatoes", products[0].Name)
	assert.Equal(t, "50", products[0].Price.String())

	farmers, err := repo.ListFarmers(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, farmers)
	assert.Equal(t, "Ravi Kumar", farmers[0].Name)
	assert.Equal(t, "Pune", farmers[0].Location)

	require.NoError(t, EnsureProducts(context.Background(), repo))
}

func TestFixtureCatalog_GetProduct(t *testing.T) {
	repo, err := NewFixtureCatalogRepository("")
	require.NoError(t, err)

	p, err := repo.GetProduct(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "Pomegranates", p.Name)
	assert.False(t, p.InStock)

	_, err = repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestFixtureCatalog_ListReturnsCopy(t *testing.T) {
	repo, err := NewFixtureCatalogRepository("")
	require.NoError(t, err)

	first, _ := repo.ListProducts(context.Background())
	first[0].Name = "changed"

	second, _ := repo.ListProducts(context.Background())
	assert.Equal(t, "Fresh Tomatoes", second[0].Name)
}

func TestFixtureCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
products:
  - id: 7
    name: Okra
    price: 45.5
    rating: 4.1
    in_stock: true
    category: Vegetables
    location: Satara
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	repo, err := NewFixtureCatalogRepository(path)
	require.NoError(t, err)

	products, _ := repo.ListProducts(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "45.50", products[0].Price.StringFixed(2))
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
products:
  - {id: 1, name: A, price: 1}
  - {id: 1, name: B, price: 2}
`,
		"missing name":    "products:\n  - {id: 1, price: 1}\n",
		"negative price":  "products:\n  - {id: 1, name: A, price: -1}\n",
		"rating too high": "products:\n  - {id: 1, name: A, price: 1, rating: 6}\n",
		"bad id":          "products:\n  - {id: 0, name: A, price: 1}\n",
		"not yaml":        "products: [",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestEnsureProducts_Empty(t *testing.T) {
	repo, err := ParseCatalog([]byte("products: []\n"))
	require.NoError(t, err)

	assert.ErrorIs(t, EnsureProducts(context.Background(), repo), errEmptyCatalog)
}
