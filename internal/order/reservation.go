package order

import (
	"context"
	"errors"
	"fmt"

	"scentra-be/internal/inventory"
	"scentra-be/internal/logger"
	"scentra-be/internal/product"
	"scentra-be/internal/storage"

	"go.uber.org/zap"
)

// Reservation is a validated, not-yet-committed intent to decrement a
// specific product or size variant by a specific quantity.
type Reservation struct {
	Product      *product.Product
	Quantity     int
	SelectedSize string
}

// ReservationEngine validates requested line items against live stock. It
// checks every item and collects all failures in one pass, so the caller
// sees every problem in a single round trip. It returns either the full
// reservation list or the full error list, never both and never a partial
// reservation list.
type ReservationEngine struct {
	ledger inventory.Ledger
}

func NewReservationEngine(ledger inventory.Ledger) *ReservationEngine {
	return &ReservationEngine{ledger: ledger}
}

// Reserve evaluates items inside the given unit of work. A non-nil error is
// an infrastructure failure; validation failures come back as messages.
func (e *ReservationEngine) Reserve(
	ctx context.Context,
	uow storage.UnitOfWork,
	items []ItemInput,
) ([]Reservation, []string, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "reservation"),
		zap.Int("item_count", len(items)),
	)

	reservations := make([]Reservation, 0, len(items))
	var failures []string

	for i, item := range items {
		id := item.ResolveProductID()
		if id == "" {
			failures = append(failures, fmt.Sprintf("Product ID missing for item %s", item.DisplayName()))
			continue
		}

		if item.Quantity < 1 {
			failures = append(failures, fmt.Sprintf("Invalid quantity for item %s", item.DisplayName()))
			continue
		}

		p, err := e.ledger.FindProduct(ctx, uow, id)
		if errors.Is(err, inventory.ErrProductNotFound) {
			failures = append(failures, fmt.Sprintf("Product %s not found", item.DisplayName()))
			continue
		}
		if err != nil {
			log.Error("failed to read product",
				zap.Int("index", i),
				zap.String("product_id", id),
				zap.Error(err),
			)
			return nil, nil, err
		}

		if !p.IsActive {
			failures = append(failures, fmt.Sprintf("Product %s is no longer available", p.Name))
			continue
		}

		if item.SelectedSize != "" {
			variant := p.Size(item.SelectedSize)
			if variant == nil {
				failures = append(failures, fmt.Sprintf("Size %s not found for product %s", item.SelectedSize, p.Name))
				continue
			}
			if !variant.Available {
				failures = append(failures, fmt.Sprintf("Size %s is not available for product %s", item.SelectedSize, p.Name))
				continue
			}
			if variant.Stock < item.Quantity {
				failures = append(failures, fmt.Sprintf(
					"Insufficient stock for %s (Size: %s). Available: %d, Requested: %d",
					p.Name, item.SelectedSize, variant.Stock, item.Quantity,
				))
				continue
			}
		} else if p.Stock < item.Quantity {
			failures = append(failures, fmt.Sprintf(
				"Insufficient stock for %s. Available: %d, Requested: %d",
				p.Name, p.Stock, item.Quantity,
			))
			continue
		}

		reservations = append(reservations, Reservation{
			Product:      p,
			Quantity:     item.Quantity,
			SelectedSize: item.SelectedSize,
		})
	}

	if len(failures) > 0 {
		log.Debug("reservation failed", zap.Strings("failures", failures))
		return nil, failures, nil
	}

	return reservations, nil, nil
}
