package models

import "github.com/shopspring/decimal"

// CartLine is a product snapshot taken when it was first added to the cart.
type CartLine struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartEventType string

const (
	CartItemAdded   CartEventType = "cart.added"
	CartItemUpdated CartEventType = "cart.updated"
	CartItemRemoved CartEventType = "cart.removed"
	CartCleared     CartEventType = "cart.cleared"
)

type CartEvent struct {
	Type CartEventType `json:"type"`
	Line CartLine      `json:"line"`
}

// Notification is the message a client shows after a cart mutation.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CartLineView struct {
	CartLine
	PriceDisplay    string `json:"price_display"`
	Subtotal        string `json:"subtotal"`
	SubtotalDisplay string `json:"subtotal_display"`
	ImageURL        string `json:"image_url,omitempty"`
}

type CartSummary struct {
	Items        []CartLineView `json:"items"`
	TotalItems   int            `json:"total_items"`
	TotalPrice   string         `json:"total_price"`
	TotalDisplay string         `json:"total_display"`
	FreeDelivery bool           `json:"free_delivery"`
	Empty        bool           `json:"empty"`
}
