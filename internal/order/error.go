package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrAllocatorExhausted = errors.New("failed to generate unique order number")

	// ErrDuplicateOrderNumber signals a unique-index collision on the
	// order number at insert time. It is retryable within the allocator's
	// attempt bound.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")

	// ErrDuplicateIdempotencyKey signals that another request with the
	// same idempotency key committed first.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)

// StructuralError rejects a request missing required top-level sections.
// It is raised before any transaction is opened.
type StructuralError struct {
	Missing []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("missing required order fields: %s", strings.Join(e.Missing, ", "))
}

// ValidationError aggregates every failing line item from one validation
// pass. When it is returned, zero reservations were applied.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}
