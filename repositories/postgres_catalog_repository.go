package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"farm-fresh/models"
)

// Querier is the subset of *pgxpool.Pool the catalog needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var productColumns = []string{
	"id", "name", "price::text", "description", "COALESCE(image, '')",
	"rating", "in_stock", "category", "location",
}

type PostgresCatalogRepository struct {
	db Querier
}

func NewPostgresCatalogRepository(db Querier) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}
	return products, nil
}

func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id int) (models.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("building product query: %w", err)
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, models.ErrProductNotFound
	}
	return p, err
}

func (r *PostgresCatalogRepository) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	query, args, err := psql.Select("id", "name", "location", "produce_type", "COALESCE(image, '')").
		From("farmers").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building farmer query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying farmers: %w", err)
	}
	defer rows.Close()

	farmers := []models.Farmer{}
	for rows.Next() {
		var f models.Farmer
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.ProduceType, &f.Image); err != nil {
			return nil, fmt.Errorf("scanning farmer: %w", err)
		}
		farmers = append(farmers, f)
	}
	return farmers, rows.Err()
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p     models.Product
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &price, &p.Description, &p.Image, &p.Rating, &p.InStock, &p.Category, &p.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, err
		}
		return models.Product{}, fmt.Errorf("scanning product: %w", err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return models.Product{}, fmt.Errorf("parsing price of product %d: %w", p.ID, err)
	}
	return p, nil
}
