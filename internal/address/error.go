package address

import "errors"

var (
	ErrNotFound        = errors.New("address not found")
	ErrInvalidID       = errors.New("invalid address id")
	ErrUnauthenticated = errors.New("unauthenticated")
)
