package repositories

import (
	"context"

	"farm-fresh/models"
)

// CatalogRepository is where the storefront reads its catalog from. The
// query engine never depends on which implementation is in use.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
}

func findProduct(products []models.Product, id int) (models.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, models.ErrProductNotFound
}
