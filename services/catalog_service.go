package services

import (
	"context"

	"golang.org/x/text/language"

	"farm-fresh/libs"
	"farm-fresh/models"
	"farm-fresh/repositories"
)

type CatalogService struct {
	repo   repositories.CatalogRepository
	images libs.ImageResolver
	locale language.Tag
}

func NewCatalogService(repo repositories.CatalogRepository, images libs.ImageResolver) *CatalogService {
	return &CatalogService{
		repo:   repo,
		images: images,
		locale: language.English,
	}
}

// Query returns the products visible under f, with image URLs resolved.
func (s *CatalogService) Query(ctx context.Context, f models.FilterState) ([]models.Product, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	catalog, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := QueryProducts(catalog, f, s.locale)
	for i := range products {
		products[i].ImageURL = s.images.URL(products[i].Image)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (models.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p.ImageURL = s.images.URL(p.Image)
	return p, nil
}

func (s *CatalogService) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	catalog, err := s.repo.ListProducts(ctx)
	if err != nil {
		return models.FilterOptions{}, err
	}
	return FilterOptionsFor(catalog), nil
}

func (s *CatalogService) Farmers(ctx context.Context) ([]models.Farmer, error) {
	farmers, err := s.repo.ListFarmers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range farmers {
		farmers[i].ImageURL = s.images.URL(farmers[i].Image)
	}
	return farmers, nil
}

func (s *CatalogService) ImageURL(ref string) string {
	return s.images.URL(ref)
}
