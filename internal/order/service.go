package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scentra-be/internal/inventory"
	"scentra-be/internal/logger"
	"scentra-be/internal/storage"

	"go.uber.org/zap"
)

// TxBeginner opens unit-of-work transaction scopes. *storage.Store
// satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (storage.UnitOfWork, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Confirmation, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	ListByEmail(ctx context.Context, email string, limit, page int32) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, byDay bool) (*Stats, error)
}

type service struct {
	store     TxBeginner
	repo      Repository
	ledger    inventory.Ledger
	engine    *ReservationEngine
	alloc     *NumberAllocator
	txTimeout time.Duration
}

func NewService(store TxBeginner, repo Repository, ledger inventory.Ledger, txTimeout time.Duration) Service {
	if txTimeout <= 0 {
		txTimeout = 15 * time.Second
	}
	return &service{
		store:     store,
		repo:      repo,
		ledger:    ledger,
		engine:    NewReservationEngine(ledger),
		alloc:     NewNumberAllocator(repo),
		txTimeout: txTimeout,
	}
}

// PlaceOrder runs the whole checkout as one atomic unit: validate every
// line item against live stock, allocate an order number, persist the
// snapshot and apply all decrements, then commit. Any failure before the
// commit leaves the ledger and the order store unchanged.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Confirmation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int("item_count", len(input.Items)),
	)

	// Structural validation happens before any transaction is opened.
	if missing := input.missingSections(); len(missing) > 0 {
		return nil, &StructuralError{Missing: missing}
	}

	// A client retry with the same idempotency key replays the original
	// confirmation instead of creating a second order.
	if input.IdempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil && !errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		if existing != nil {
			log.Info("idempotent replay", zap.String("order_number", existing.OrderNumber))
			return replayConfirmation(existing), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := uow.Rollback(); rbErr != nil {
				log.Error("failed to rollback order transaction", zap.Error(rbErr))
			}
		}
	}()

	reservations, failures, err := s.engine.Reserve(ctx, uow, input.Items)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, &ValidationError{Messages: failures}
	}

	number, err := s.alloc.Allocate(ctx, uow)
	if err != nil {
		return nil, err
	}

	o := buildOrder(input, number)

	// A duplicate-key error at insert, despite the pre-check, is an
	// allocator collision: regenerate and retry within the same bound.
	for attempt := 1; ; attempt++ {
		err = s.repo.InsertOrder(ctx, uow, o)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateOrderNumber) && attempt < maxAllocAttempts {
			o.OrderNumber, err = s.alloc.Allocate(ctx, uow)
			if err != nil {
				return nil, err
			}
			continue
		}
		if errors.Is(err, ErrDuplicateOrderNumber) {
			return nil, ErrAllocatorExhausted
		}
		if errors.Is(err, ErrDuplicateIdempotencyKey) {
			return s.replayAfterConflict(ctx, uow, input.IdempotencyKey, log)
		}
		return nil, err
	}

	for _, res := range reservations {
		if res.SelectedSize != "" {
			err = s.ledger.DecrementSizeStock(ctx, uow, res.Product.ID, res.SelectedSize, res.Quantity)
		} else {
			err = s.ledger.DecrementStock(ctx, uow, res.Product.ID, res.Quantity)
		}
		if errors.Is(err, inventory.ErrStockConflict) {
			// Availability changed concurrently between our read and the
			// write. First valid request wins; this one reports failure.
			return nil, &ValidationError{Messages: []string{
				stockConflictMessage(res),
			}}
		}
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	committed = true

	log.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Pricing.Total),
	)

	return &Confirmation{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Pricing.Total,
		CreatedAt:   o.CreatedAt,
	}, nil
}

// replayAfterConflict handles the race where a concurrent request with the
// same idempotency key committed between our pre-check and our insert.
func (s *service) replayAfterConflict(
	ctx context.Context,
	uow storage.UnitOfWork,
	key string,
	log *zap.Logger,
) (*Confirmation, error) {

	if rbErr := uow.Rollback(); rbErr != nil {
		log.Error("failed to rollback after idempotency conflict", zap.Error(rbErr))
	}

	existing, err := s.repo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	log.Info("idempotent replay after insert conflict", zap.String("order_number", existing.OrderNumber))
	return replayConfirmation(existing), nil
}

func replayConfirmation(o *Order) *Confirmation {
	return &Confirmation{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Pricing.Total,
		CreatedAt:   o.CreatedAt,
		Replayed:    true,
	}
}

func stockConflictMessage(res Reservation) string {
	if res.SelectedSize != "" {
		return fmt.Sprintf(
			"Insufficient stock for %s (Size: %s). Product availability changed, please try again",
			res.Product.Name, res.SelectedSize,
		)
	}
	return fmt.Sprintf(
		"Insufficient stock for %s. Product availability changed, please try again",
		res.Product.Name,
	)
}

// buildOrder assembles the immutable snapshot. Product ids are re-resolved
// with the same alias precedence used during validation, pricing fields are
// copied verbatim, and payment data is stripped to method, last-4 digits
// and cardholder name.
func buildOrder(input PlaceOrderInput, number string) *Order {
	items := make([]Item, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, Item{
			ProductID:    in.ResolveProductID(),
			Name:         in.Name,
			Price:        float64(in.Price),
			Quantity:     in.Quantity,
			SelectedSize: in.SelectedSize,
			Image:        in.Image,
		})
	}

	o := &Order{
		OrderNumber:  number,
		UserID:       input.UserID,
		Status:       StatusPending,
		Items:        items,
		CustomerInfo: *input.CustomerInfo,
		PaymentInfo: PaymentInfo{
			Method:         input.PaymentInfo.Method,
			CardLast4:      input.PaymentInfo.Last4(),
			CardholderName: input.PaymentInfo.CardholderName,
		},
		ShippingOption: input.ShippingOption,
		Pricing: Pricing{
			Subtotal: float64(input.Pricing.Subtotal),
			Shipping: float64(input.Pricing.Shipping),
			Tax:      float64(input.Pricing.Tax),
			Discount: float64(input.Pricing.Discount),
			Total:    float64(input.Pricing.Total),
		},
		PromoCode: input.PromoCode,
		CreatedAt: time.Now(),
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		o.IdempotencyKey = &key
	}
	return o
}

func (s *service) GetByNumber(ctx context.Context, number string) (*Order, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *service) ListByEmail(ctx context.Context, email string, limit, page int32) ([]*Order, error) {
	return s.repo.ListByEmail(ctx, email, limit, page)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Stats(ctx context.Context, byDay bool) (*Stats, error) {
	return s.repo.Stats(ctx, byDay)
}
