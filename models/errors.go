package models

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrIncompleteForm   = errors.New("name, email, and address are required")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrSessionNotFound  = errors.New("session not found")
)
