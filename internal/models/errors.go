package models

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInsufficientPoints   = errors.New("insufficient points")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidCustomization = errors.New("invalid customization")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrCardIncomplete       = errors.New("loyalty card is not complete")
)
