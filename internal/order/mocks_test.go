package order

import (
	"context"
	"database/sql"

	"scentra-be/internal/product"
	"scentra-be/internal/storage"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) FindProduct(ctx context.Context, uow storage.UnitOfWork, id string) (*product.Product, error) {
	args := m.Called(ctx, uow, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockLedger) DecrementStock(ctx context.Context, uow storage.UnitOfWork, productID string, qty int) error {
	args := m.Called(ctx, uow, productID, qty)
	return args.Error(0)
}

func (m *MockLedger) DecrementSizeStock(ctx context.Context, uow storage.UnitOfWork, productID, size string, qty int) error {
	args := m.Called(ctx, uow, productID, size, qty)
	return args.Error(0)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertOrder(ctx context.Context, uow storage.UnitOfWork, o *Order) error {
	args := m.Called(ctx, uow, o)
	return args.Error(0)
}

func (m *MockRepository) NumberExists(ctx context.Context, uow storage.UnitOfWork, number string) (bool, error) {
	args := m.Called(ctx, uow, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByEmail(ctx context.Context, email string, limit, page int32) ([]*Order, error) {
	args := m.Called(ctx, email, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Stats(ctx context.Context, byDay bool) (*Stats, error) {
	args := m.Called(ctx, byDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

// MockUnitOfWork tracks commit/rollback calls; the query surface is unused
// because the ledger and repository are mocked alongside it.
type MockUnitOfWork struct {
	Committed  bool
	RolledBack bool
	CommitErr  error
}

func (m *MockUnitOfWork) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (m *MockUnitOfWork) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (m *MockUnitOfWork) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (m *MockUnitOfWork) Commit() error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	if m.Committed || m.RolledBack {
		return sql.ErrTxDone
	}
	m.Committed = true
	return nil
}

func (m *MockUnitOfWork) Rollback() error {
	if m.Committed {
		return nil
	}
	m.RolledBack = true
	return nil
}

type MockTxBeginner struct {
	Uow      *MockUnitOfWork
	BeginErr error
	Begun    int
}

func (m *MockTxBeginner) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Begun++
	return m.Uow, nil
}
