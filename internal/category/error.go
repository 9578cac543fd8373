package category

import "errors"

var (
	ErrNotFound      = errors.New("category not found")
	ErrNameRequired  = errors.New("category name is required")
	ErrAlreadyExists = errors.New("category already exists")
)
