package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-fresh/models"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *bool:
			*p = r.values[i].(bool)
		}
	}
	return nil
}

type fakeQuerier struct {
	row      pgx.Row
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return nil, q.queryErr
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return q.row
}

func TestPostgresCatalog_GetProduct(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{values: []any{
		2, "Alphonso Mangoes", "120.00", "Sweet", "mangoes.jpg", 4.9, true, "Fruits", "Nashik",
	}}}
	repo := NewPostgresCatalogRepository(q)

	p, err := repo.GetProduct(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Alphonso Mangoes", p.Name)
	assert.Equal(t, "120.00", p.Price.StringFixed(2))
	assert.True(t, p.InStock)
	assert.Contains(t, q.lastSQL, "WHERE id = $1")
	assert.Equal(t, []any{2}, q.lastArgs)
}

func TestPostgresCatalog_GetProductNotFound(t *testing.T) {
	repo := NewPostgresCatalogRepository(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetProduct(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestPostgresCatalog_BadPrice(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{values: []any{
		2, "Mangoes", "not-a-number", "", "", 4.9, true, "Fruits", "Nashik",
	}}}

	_, err := NewPostgresCatalogRepository(q).GetProduct(context.Background(), 2)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrProductNotFound)
}

func TestPostgresCatalog_ListProductsQueryError(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("connection reset")}

	_, err := NewPostgresCatalogRepository(q).ListProducts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying products")
	assert.Contains(t, q.lastSQL, "ORDER BY position ASC, id ASC")
}
