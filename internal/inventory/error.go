package inventory

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrStockConflict means a conditional decrement matched no rows: the
	// stock no longer covers the requested quantity at write time. It is
	// surfaced to the caller as a stock validation failure, never retried
	// silently.
	ErrStockConflict = errors.New("stock changed concurrently")
)
