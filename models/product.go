package models

import "github.com/shopspring/decimal"

type Product struct {
	ID          int             `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"-"`
	Description string          `json:"description" yaml:"description"`
	Image       string          `json:"image" yaml:"image"`
	ImageURL    string          `json:"image_url,omitempty" yaml:"-"`
	Rating      float64         `json:"rating" yaml:"rating"`
	InStock     bool            `json:"in_stock" yaml:"in_stock"`
	Category    string          `json:"category" yaml:"category"`
	Location    string          `json:"location" yaml:"location"`
}

type Farmer struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Location    string `json:"location" yaml:"location"`
	ProduceType string `json:"produce_type" yaml:"produce_type"`
	Image       string `json:"image" yaml:"image"`
	ImageURL    string `json:"image_url,omitempty" yaml:"-"`
}

// FilterOptions lists the values each catalog selector can take.
type FilterOptions struct {
	Categories   []string `json:"categories"`
	Locations    []string `json:"locations"`
	PriceBuckets []string `json:"price_buckets"`
	SortKeys     []string `json:"sort_keys"`
}
