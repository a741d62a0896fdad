// Package errors provides custom error types for order-related operations.
package errors

import "errors"

var ErrNoItems = errors.New("order must contain at least one item")
var ErrInvalidQuantity = errors.New("item quantity must be positive")
var ErrNegativePrice = errors.New("item unit price must not be negative")
var ErrContactRequired = errors.New("customer contact is required (email or phone)")
