package product

import "errors"

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidPrice = errors.New("product price must be non-negative")
	ErrInvalidStock = errors.New("product stock must be non-negative")
	ErrNameRequired = errors.New("product name is required")
)
