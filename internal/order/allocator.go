package order

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"scentra-be/internal/logger"
	"scentra-be/internal/storage"

	"go.uber.org/zap"
)

const (
	orderNumberPrefix = "ORD"

	// maxAllocAttempts bounds both the pre-insert uniqueness loop and the
	// duplicate-key retries at insert time.
	maxAllocAttempts = 10
)

// NumberAllocator produces unique human-readable order numbers. The format
// is prefix + time-derived digits + random digits, sized to make collisions
// rare but not impossible, hence the bounded retry loop. The unique index
// on orders.order_number remains the final authority.
type NumberAllocator struct {
	repo Repository
	now  func() time.Time
	rnd  func(n int) int
}

func NewNumberAllocator(repo Repository) *NumberAllocator {
	return &NumberAllocator{
		repo: repo,
		now:  time.Now,
		rnd:  rand.Intn,
	}
}

func (a *NumberAllocator) generate() string {
	millis := a.now().UnixMilli() % 100_000_000
	return fmt.Sprintf("%s%08d%04d", orderNumberPrefix, millis, a.rnd(10_000))
}

// Allocate returns a number not currently present in the order store,
// retrying on collision up to the attempt bound. Exhaustion aborts the
// whole order transaction: committing without a guaranteed-unique number
// would make order lookups ambiguous.
func (a *NumberAllocator) Allocate(ctx context.Context, uow storage.UnitOfWork) (string, error) {
	for attempt := 1; attempt <= maxAllocAttempts; attempt++ {
		number := a.generate()

		exists, err := a.repo.NumberExists(ctx, uow, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}

		logger.FromCtx(ctx).Warn("order number collision",
			zap.String("order_number", number),
			zap.Int("attempt", attempt),
		)
	}
	return "", ErrAllocatorExhausted
}
