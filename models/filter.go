package models

import (
	"fmt"
	"strings"
)

const FilterAll = "all"

type PriceBucket string

const (
	PriceAll    PriceBucket = "all"
	PriceLow    PriceBucket = "low"
	PriceMedium PriceBucket = "medium"
	PriceHigh   PriceBucket = "high"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

var (
	PriceBuckets = []PriceBucket{PriceAll, PriceLow, PriceMedium, PriceHigh}
	SortKeys     = []SortKey{SortName, SortPriceLow, SortPriceHigh, SortRating}
)

// FilterState is the shopper's current catalog selection. The zero value
// behaves like DefaultFilterState.
type FilterState struct {
	Category    string      `json:"category" form:"category"`
	Location    string      `json:"location" form:"location"`
	PriceBucket PriceBucket `json:"price" form:"price"`
	Sort        SortKey     `json:"sort" form:"sort"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Category:    FilterAll,
		Location:    FilterAll,
		PriceBucket: PriceAll,
		Sort:        SortName,
	}
}

// Normalize fills blank fields with their defaults and trims whitespace.
func (f FilterState) Normalize() FilterState {
	f.Category = strings.TrimSpace(f.Category)
	f.Location = strings.TrimSpace(f.Location)
	f.PriceBucket = PriceBucket(strings.ToLower(strings.TrimSpace(string(f.PriceBucket))))
	f.Sort = SortKey(strings.ToLower(strings.TrimSpace(string(f.Sort))))

	if f.Category == "" {
		f.Category = FilterAll
	}
	if f.Location == "" {
		f.Location = FilterAll
	}
	if f.PriceBucket == "" {
		f.PriceBucket = PriceAll
	}
	if f.Sort == "" {
		f.Sort = SortName
	}
	return f
}

func (f FilterState) Validate() error {
	if !f.PriceBucket.Valid() {
		return fmt.Errorf("%w: unknown price bucket %q", ErrInvalidFilter, f.PriceBucket)
	}
	if !f.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidFilter, f.Sort)
	}
	return nil
}

func (f FilterState) IsDefault() bool {
	return f.Normalize() == DefaultFilterState()
}

func (b PriceBucket) Valid() bool {
	for _, v := range PriceBuckets {
		if b == v {
			return true
		}
	}
	return false
}

func (s SortKey) Valid() bool {
	for _, v := range SortKeys {
		if s == v {
			return true
		}
	}
	return false
}
