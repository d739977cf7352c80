package repositories

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"farm-fresh/models"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type catalogDocument struct {
	Products []productRecord `yaml:"products"`
	Farmers  []models.Farmer `yaml:"farmers"`
}

type productRecord struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	Image       string  `yaml:"image"`
	Rating      float64 `yaml:"rating"`
	InStock     bool    `yaml:"in_stock"`
	Category    string  `yaml:"category"`
	Location    string  `yaml:"location"`
}

// FixtureCatalogRepository serves a catalog decoded once from YAML. The
// slices it holds are never mutated after construction.
type FixtureCatalogRepository struct {
	products []models.Product
	farmers  []models.Farmer
}

// NewFixtureCatalogRepository loads the catalog from path, or from the
// embedded default catalog when path is empty.
func NewFixtureCatalogRepository(path string) (*FixtureCatalogRepository, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*FixtureCatalogRepository, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]bool, len(doc.Products))
	products := make([]models.Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		if err := rec.validate(); err != nil {
			return nil, err
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("catalog: duplicate product id %d", rec.ID)
		}
		seen[rec.ID] = true
		products = append(products, rec.product())
	}

	return &FixtureCatalogRepository{products: products, farmers: doc.Farmers}, nil
}

func (r productRecord) validate() error {
	switch {
	case r.ID <= 0:
		return fmt.Errorf("catalog: product %q has invalid id %d", r.Name, r.ID)
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("catalog: product %d has no name", r.ID)
	case r.Price < 0:
		return fmt.Errorf("catalog: product %d has negative price", r.ID)
	case r.Rating < 0 || r.Rating > 5:
		return fmt.Errorf("catalog: product %d rating %.1f outside 0-5", r.ID, r.Rating)
	}
	return nil
}

func (r productRecord) product() models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       decimal.NewFromFloat(r.Price),
		Description: r.Description,
		Image:       r.Image,
		Rating:      r.Rating,
		InStock:     r.InStock,
		Category:    r.Category,
		Location:    r.Location,
	}
}

func (r *FixtureCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *FixtureCatalogRepository) GetProduct(ctx context.Context, id int) (models.Product, error) {
	return findProduct(r.products, id)
}

func (r *FixtureCatalogRepository) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	out := make([]models.Farmer, len(r.farmers))
	copy(out, r.farmers)
	return out, nil
}

var errEmptyCatalog = errors.New("catalog: no products")

// EnsureProducts reports an error when a repository has nothing to sell.
func EnsureProducts(ctx context.Context, repo CatalogRepository) error {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return errEmptyCatalog
	}
	return nil
}
