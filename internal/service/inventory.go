package service

import "errors"

// Errors shared by the inventory-facing services. Handlers map these onto
// 4xx responses; anything else is treated as a server fault.
var (
	ErrValidation        = errors.New("validation_failed")
	ErrInvalidReference  = errors.New("invalid_reference")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
