package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutIdle       CheckoutStatus = "idle"
	CheckoutSubmitting CheckoutStatus = "submitting"
	CheckoutConfirmed  CheckoutStatus = "confirmed"
)

type CheckoutForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
}

func (f CheckoutForm) Trimmed() CheckoutForm {
	return CheckoutForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Address: strings.TrimSpace(f.Address),
	}
}

// Complete reports whether every required field has a value.
func (f CheckoutForm) Complete() bool {
	t := f.Trimmed()
	return t.Name != "" && t.Email != "" && t.Address != ""
}

type Order struct {
	OrderNumber string          `json:"order_number"`
	SessionID   string          `json:"session_id"`
	Customer    CheckoutForm    `json:"customer"`
	Items       []CartLine      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Title       string          `json:"title,omitempty"`
	Message     string          `json:"message,omitempty"`
	PlacedAt    time.Time       `json:"placed_at"`
}

type CheckoutSnapshot struct {
	Status       CheckoutStatus `json:"status"`
	Form         CheckoutForm   `json:"form"`
	CanSubmit    bool           `json:"can_submit"`
	TotalAmount  string         `json:"total_amount"`
	TotalDisplay string         `json:"total_display"`
	Order        *Order         `json:"order,omitempty"`
	LastOrder    *Order         `json:"last_order,omitempty"`
	LastError    string         `json:"last_error,omitempty"`
}

// CheckoutEvent is published on every checkout status change.
type CheckoutEvent struct {
	Status CheckoutStatus `json:"status"`
	Order  *Order         `json:"order,omitempty"`
	Error  string         `json:"error,omitempty"`
}
