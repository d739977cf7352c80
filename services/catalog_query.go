package services

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"farm-fresh/models"
)

var (
	lowPriceCeiling    = decimal.NewFromInt(50)
	mediumPriceCeiling = decimal.NewFromInt(100)
)

// InPriceBucket reports whether price falls in bucket. Buckets are half-open
// on the left: 50 is low and 100 is medium.
func InPriceBucket(price decimal.Decimal, bucket models.PriceBucket) bool {
	switch bucket {
	case models.PriceAll, "":
		return true
	case models.PriceLow:
		return price.LessThanOrEqual(lowPriceCeiling)
	case models.PriceMedium:
		return price.GreaterThan(lowPriceCeiling) && price.LessThanOrEqual(mediumPriceCeiling)
	case models.PriceHigh:
		return price.GreaterThan(mediumPriceCeiling)
	default:
		return false
	}
}

// MatchesFilter applies the category, location and price clauses.
func MatchesFilter(p models.Product, f models.FilterState) bool {
	if f.Category != models.FilterAll && p.Category != f.Category {
		return false
	}
	if f.Location != models.FilterAll && p.Location != f.Location {
		return false
	}
	return InPriceBucket(p.Price, f.PriceBucket)
}

// QueryProducts filters catalog by f and stable-sorts the result. The input
// slice is left untouched, and an empty result is a non-nil empty slice.
func QueryProducts(catalog []models.Product, f models.FilterState, tag language.Tag) []models.Product {
	f = f.Normalize()

	out := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if MatchesFilter(p, f) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, comparator(f.Sort, tag))
	return out
}

func comparator(key models.SortKey, tag language.Tag) func(a, b models.Product) int {
	switch key {
	case models.SortPriceLow:
		return func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	case models.SortPriceHigh:
		return func(a, b models.Product) int { return b.Price.Cmp(a.Price) }
	case models.SortRating:
		return func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		// collate.Collator is not safe for concurrent use, so each query gets its own.
		col := collate.New(tag)
		return func(a, b models.Product) int { return col.CompareString(a.Name, b.Name) }
	}
}

// FilterOptionsFor lists the distinct categories and locations in catalog
// order of first appearance.
func FilterOptionsFor(catalog []models.Product) models.FilterOptions {
	opts := models.FilterOptions{
		Categories:   []string{models.FilterAll},
		Locations:    []string{models.FilterAll},
		PriceBuckets: make([]string, 0, len(models.PriceBuckets)),
		SortKeys:     make([]string, 0, len(models.SortKeys)),
	}

	seenCategory := map[string]bool{}
	seenLocation := map[string]bool{}
	for _, p := range catalog {
		if p.Category != "" && !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			opts.Categories = append(opts.Categories, p.Category)
		}
		if p.Location != "" && !seenLocation[p.Location] {
			seenLocation[p.Location] = true
			opts.Locations = append(opts.Locations, p.Location)
		}
	}
	for _, b := range models.PriceBuckets {
		opts.PriceBuckets = append(opts.PriceBuckets, string(b))
	}
	for _, s := range models.SortKeys {
		opts.SortKeys = append(opts.SortKeys, string(s))
	}
	return opts
}
