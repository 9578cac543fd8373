package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"scentra-be/internal/inventory"
	"scentra-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput(items ...ItemInput) PlaceOrderInput {
	return PlaceOrderInput{
		CustomerInfo: &CustomerInfo{
			FirstName: "Ada", LastName: "Kov", Email: "ada@example.com",
			Address: "1 Rue des Fleurs", City: "Lyon", Country: "FR",
		},
		Items: items,
		PaymentInfo: &PaymentInput{
			Method: "card", CardNumber: "4111 1111 1111 4242", CardholderName: "Ada Kov",
		},
		ShippingOption: "standard",
		Pricing: &PricingInput{
			Subtotal: 150, Shipping: 10, Tax: 16, Discount: 0, Total: 176,
		},
	}
}

type fixture struct {
	svc    Service
	tx     *MockTxBeginner
	uow    *MockUnitOfWork
	repo   *MockRepository
	ledger *MockLedger
}

func newFixture() *fixture {
	uow := &MockUnitOfWork{}
	tx := &MockTxBeginner{Uow: uow}
	repo := new(MockRepository)
	ledger := new(MockLedger)
	return &fixture{
		svc:    NewService(tx, repo, ledger, 5*time.Second),
		tx:     tx,
		uow:    uow,
		repo:   repo,
		ledger: ledger,
	}
}

func TestPlaceOrder_StructuralValidation(t *testing.T) {
	f := newFixture()

	t.Run("MissingEverything", func(t *testing.T) {
		_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{})

		var structural *StructuralError
		require.ErrorAs(t, err, &structural)
		assert.ElementsMatch(t,
			[]string{"customerInfo", "items", "paymentInfo", "shippingOption", "pricing"},
			structural.Missing,
		)
		assert.Zero(t, f.tx.Begun, "no transaction opened for structural failures")
	})

	t.Run("EmptyItems", func(t *testing.T) {
		input := validInput()
		_, err := f.svc.PlaceOrder(context.Background(), input)

		var structural *StructuralError
		require.ErrorAs(t, err, &structural)
		assert.Equal(t, []string{"items"}, structural.Missing)
		assert.Zero(t, f.tx.Begun)
	})
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil)
	f.ledger.On("DecrementStock", mock.Anything, f.uow, "p1", 3).Return(nil)

	conf, err := f.svc.PlaceOrder(ctx, validInput(
		ItemInput{ProductID: "p1", Name: "Amber Noir", Price: 50, Quantity: 3},
	))

	require.NoError(t, err)
	assert.Equal(t, StatusPending, conf.Status)
	assert.Equal(t, 176.0, conf.Total)
	assert.Regexp(t, `^ORD\d{12}$`, conf.OrderNumber)
	assert.True(t, f.uow.Committed)
	assert.False(t, f.uow.RolledBack)
	f.ledger.AssertCalled(t, "DecrementStock", mock.Anything, f.uow, "p1", 3)
}

func TestPlaceOrder_SnapshotContents(t *testing.T) {
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)

	var persisted *Order
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).(*Order)
		}).Return(nil)
	f.ledger.On("DecrementStock", mock.Anything, f.uow, "p1", 1).Return(nil)

	// The client sends the id under the legacy alias.
	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{LegacyID: "p1", Name: "Amber Noir", Price: 50, Quantity: 1, Image: "amber.jpg"},
	))
	require.NoError(t, err)
	require.NotNil(t, persisted)

	// Snapshot id matches what was validated, via the same alias precedence.
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "p1", persisted.Items[0].ProductID)
	assert.Equal(t, "Amber Noir", persisted.Items[0].Name)
	assert.Equal(t, 50.0, persisted.Items[0].Price)

	// Payment data stripped to method + last4 + cardholder.
	assert.Equal(t, "card", persisted.PaymentInfo.Method)
	assert.Equal(t, "4242", persisted.PaymentInfo.CardLast4)
	assert.Equal(t, "Ada Kov", persisted.PaymentInfo.CardholderName)

	// Pricing copied verbatim.
	assert.Equal(t, 176.0, persisted.Pricing.Total)
	assert.Equal(t, StatusPending, persisted.Status)
}

func TestPlaceOrder_ValidationAborts(t *testing.T) {
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 2, IsActive: true}, nil)

	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 3},
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Insufficient stock for Amber Noir. Available: 2, Requested: 3"}, verr.Messages)

	assert.True(t, f.uow.RolledBack)
	assert.False(t, f.uow.Committed)
	f.repo.AssertNotCalled(t, "InsertOrder")
	f.ledger.AssertNotCalled(t, "DecrementStock")
}

func TestPlaceOrder_AllocatorExhaustionAborts(t *testing.T) {
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(true, nil)

	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 1},
	))

	assert.ErrorIs(t, err, ErrAllocatorExhausted)
	assert.True(t, f.uow.RolledBack)
	f.repo.AssertNotCalled(t, "InsertOrder")
}

func TestPlaceOrder_DuplicateNumberAtInsertRetries(t *testing.T) {
	// The pre-check race: another transaction commits the same number
	// between our exists-check and insert. The duplicate-key signal is a
	// retryable collision.
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(ErrDuplicateOrderNumber).Once()
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil).Once()
	f.ledger.On("DecrementStock", mock.Anything, f.uow, "p1", 1).Return(nil)

	conf, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 1},
	))

	require.NoError(t, err)
	assert.True(t, f.uow.Committed)
	assert.NotEmpty(t, conf.OrderNumber)
	f.repo.AssertNumberOfCalls(t, "InsertOrder", 2)
}

func TestPlaceOrder_StockConflictSurfacedAsValidationError(t *testing.T) {
	// A concurrent checkout consumed the stock between our read and our
	// write. The conditional decrement reports the conflict, the whole
	// transaction aborts, and the caller sees a stock validation error
	// rather than a silent retry.
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p2").
		Return(&product.Product{
			ID: "p2", Name: "Oud Royal", IsActive: true,
			Sizes: []product.SizeVariant{{Size: "50ml", Stock: 1, Available: true}},
		}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil)
	f.ledger.On("DecrementSizeStock", mock.Anything, f.uow, "p2", "50ml", 1).
		Return(inventory.ErrStockConflict)

	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p2", Name: "Oud Royal", SelectedSize: "50ml", Quantity: 1},
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages[0], "Insufficient stock for Oud Royal (Size: 50ml)")
	assert.True(t, f.uow.RolledBack)
	assert.False(t, f.uow.Committed)
}

func TestPlaceOrder_FailureBeforeCommitRollsBackEverything(t *testing.T) {
	// Atomicity: an error after the order insert and stock decrement but
	// at commit time leaves nothing observable.
	f := newFixture()
	f.uow.CommitErr = errors.New("connection reset")

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil)
	f.ledger.On("DecrementStock", mock.Anything, f.uow, "p1", 1).Return(nil)

	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 1},
	))

	require.Error(t, err)
	assert.False(t, f.uow.Committed)
	assert.True(t, f.uow.RolledBack)
}

func TestPlaceOrder_SizeVsGeneralStockExclusivity(t *testing.T) {
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "p2").
		Return(&product.Product{
			ID: "p2", Name: "Oud Royal", Stock: 9, IsActive: true,
			Sizes: []product.SizeVariant{{Size: "50ml", Stock: 4, Available: true}},
		}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil)
	f.ledger.On("DecrementSizeStock", mock.Anything, f.uow, "p2", "50ml", 2).Return(nil)

	_, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "p2", Name: "Oud Royal", SelectedSize: "50ml", Quantity: 2},
	))

	require.NoError(t, err)
	f.ledger.AssertCalled(t, "DecrementSizeStock", mock.Anything, f.uow, "p2", "50ml", 2)
	f.ledger.AssertNotCalled(t, "DecrementStock", mock.Anything, f.uow, "p2", 2)
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	f := newFixture()
	original := &Order{
		OrderNumber: "ORD000000010001",
		Status:      StatusPending,
		Pricing:     Pricing{Total: 176},
		CreatedAt:   time.Now(),
	}
	f.repo.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(original, nil)

	input := validInput(ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 1})
	input.IdempotencyKey = "key-1"

	conf, err := f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, conf.Replayed)
	assert.Equal(t, "ORD000000010001", conf.OrderNumber)
	assert.Zero(t, f.tx.Begun, "replay opens no transaction")
	f.ledger.AssertNotCalled(t, "FindProduct")
}

func TestPlaceOrder_IdempotencyInsertRace(t *testing.T) {
	// A concurrent request with the same key commits between our
	// pre-check and our insert; the loser replays the winner's order.
	f := newFixture()
	original := &Order{OrderNumber: "ORD000000020002", Status: StatusPending, Pricing: Pricing{Total: 176}}

	f.repo.On("GetByIdempotencyKey", mock.Anything, "key-2").Return(nil, ErrOrderNotFound).Once()
	f.ledger.On("FindProduct", mock.Anything, f.uow, "p1").
		Return(&product.Product{ID: "p1", Name: "Amber Noir", Stock: 5, IsActive: true}, nil)
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(ErrDuplicateIdempotencyKey)
	f.repo.On("GetByIdempotencyKey", mock.Anything, "key-2").Return(original, nil).Once()

	input := validInput(ItemInput{ProductID: "p1", Name: "Amber Noir", Quantity: 1})
	input.IdempotencyKey = "key-2"

	conf, err := f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, conf.Replayed)
	assert.Equal(t, "ORD000000020002", conf.OrderNumber)
	assert.True(t, f.uow.RolledBack)
	f.ledger.AssertNotCalled(t, "DecrementStock")
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()

	t.Run("InvalidStatus", func(t *testing.T) {
		err := f.svc.UpdateStatus(context.Background(), 1, Status("PAID"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("AnyTransitionAllowed", func(t *testing.T) {
		f.repo.On("UpdateStatus", mock.Anything, uint(1), StatusCancelled).Return(nil)
		assert.NoError(t, f.svc.UpdateStatus(context.Background(), 1, StatusCancelled))
	})
}

func TestPlaceOrder_EndToEndSequential(t *testing.T) {
	// Product with stock 5: an order of 3 succeeds; re-running against the
	// decremented stock, a second order of 3 fails with the availability
	// message.
	f := newFixture()

	f.ledger.On("FindProduct", mock.Anything, f.uow, "P1").
		Return(&product.Product{ID: "P1", Name: "Fig Santal", Stock: 5, IsActive: true}, nil).Once()
	f.repo.On("NumberExists", mock.Anything, f.uow, mock.Anything).Return(false, nil)
	f.repo.On("InsertOrder", mock.Anything, f.uow, mock.Anything).Return(nil)
	f.ledger.On("DecrementStock", mock.Anything, f.uow, "P1", 3).Return(nil)

	conf, err := f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "P1", Name: "Fig Santal", Quantity: 3},
	))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, conf.Status)

	// Second request sees the post-decrement stock.
	f.uow.Committed = false
	f.ledger.On("FindProduct", mock.Anything, f.uow, "P1").
		Return(&product.Product{ID: "P1", Name: "Fig Santal", Stock: 2, IsActive: true}, nil).Once()

	_, err = f.svc.PlaceOrder(context.Background(), validInput(
		ItemInput{ProductID: "P1", Name: "Fig Santal", Quantity: 3},
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Insufficient stock for Fig Santal. Available: 2, Requested: 3", verr.Messages[0])
}
