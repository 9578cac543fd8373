package order

import (
	"context"
	"testing"

	"scentra-be/internal/inventory"
	"scentra-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeProduct(id, name string, stock int) *product.Product {
	return &product.Product{ID: id, Name: name, Stock: stock, IsActive: true, Price: 49.99}
}

func sizedProduct(id, name string, sizes ...product.SizeVariant) *product.Product {
	return &product.Product{ID: id, Name: name, IsActive: true, Sizes: sizes}
}

func TestReserve_Success(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)
	uow := &MockUnitOfWork{}

	ledger.On("FindProduct", mock.Anything, uow, "p1").
		Return(activeProduct("p1", "Amber Noir", 5), nil)

	reservations, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
		{ProductID: "p1", Name: "Amber Noir", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, reservations, 1)
	assert.Equal(t, "p1", reservations[0].Product.ID)
	assert.Equal(t, 3, reservations[0].Quantity)
	assert.Empty(t, reservations[0].SelectedSize)
}

func TestReserve_CollectsAllErrors(t *testing.T) {
	// Three items where items 1 and 3 fail for different reasons: the
	// response carries exactly two messages and zero reservations.
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)
	uow := &MockUnitOfWork{}

	ledger.On("FindProduct", mock.Anything, uow, "gone").
		Return(nil, inventory.ErrProductNotFound)
	ledger.On("FindProduct", mock.Anything, uow, "p2").
		Return(activeProduct("p2", "Cedar Mist", 10), nil)
	ledger.On("FindProduct", mock.Anything, uow, "p3").
		Return(activeProduct("p3", "Vetiver", 1), nil)

	reservations, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
		{ProductID: "gone", Name: "Ghost", Quantity: 1},
		{ProductID: "p2", Name: "Cedar Mist", Quantity: 2},
		{ProductID: "p3", Name: "Vetiver", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Nil(t, reservations, "no partial reservation list when any error exists")
	require.Len(t, failures, 2)
	assert.Equal(t, "Product Ghost not found", failures[0])
	assert.Equal(t, "Insufficient stock for Vetiver. Available: 1, Requested: 3", failures[1])
}

func TestReserve_MissingProductID(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)

	_, failures, err := engine.Reserve(context.Background(), &MockUnitOfWork{}, []ItemInput{
		{Name: "Rose Absolu", Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "Product ID missing for item Rose Absolu", failures[0])
	ledger.AssertNotCalled(t, "FindProduct")
}

func TestReserve_InactiveProduct(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)
	uow := &MockUnitOfWork{}

	p := activeProduct("p1", "Amber Noir", 5)
	p.IsActive = false
	ledger.On("FindProduct", mock.Anything, uow, "p1").Return(p, nil)

	_, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
		{ProductID: "p1", Name: "Amber Noir", Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "Product Amber Noir is no longer available", failures[0])
}

func TestReserve_SizeValidation(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)
	uow := &MockUnitOfWork{}

	p := sizedProduct("p2", "Oud Royal",
		product.SizeVariant{Size: "50ml", Stock: 2, Available: true, Price: 59.99},
		product.SizeVariant{Size: "100ml", Stock: 0, Available: false, Price: 89.99},
	)
	ledger.On("FindProduct", mock.Anything, uow, "p2").Return(p, nil)

	t.Run("UnknownSize", func(t *testing.T) {
		_, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
			{ProductID: "p2", Name: "Oud Royal", SelectedSize: "30ml", Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, failures, 1)
		assert.Equal(t, "Size 30ml not found for product Oud Royal", failures[0])
	})

	t.Run("UnavailableSize", func(t *testing.T) {
		_, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
			{ProductID: "p2", Name: "Oud Royal", SelectedSize: "100ml", Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, failures, 1)
		assert.Equal(t, "Size 100ml is not available for product Oud Royal", failures[0])
	})

	t.Run("InsufficientSizeStock", func(t *testing.T) {
		_, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
			{ProductID: "p2", Name: "Oud Royal", SelectedSize: "50ml", Quantity: 3},
		})
		require.NoError(t, err)
		require.Len(t, failures, 1)
		assert.Equal(t, "Insufficient stock for Oud Royal (Size: 50ml). Available: 2, Requested: 3", failures[0])
	})

	t.Run("SizeStockDoesNotLookAtGeneralStock", func(t *testing.T) {
		// The product has zero general stock, yet the sized request
		// succeeds against the variant counter.
		reservations, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
			{ProductID: "p2", Name: "Oud Royal", SelectedSize: "50ml", Quantity: 2},
		})
		require.NoError(t, err)
		assert.Empty(t, failures)
		require.Len(t, reservations, 1)
		assert.Equal(t, "50ml", reservations[0].SelectedSize)
	})
}

func TestReserve_IDAliasPrecedence(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)
	uow := &MockUnitOfWork{}

	ledger.On("FindProduct", mock.Anything, uow, "canonical").
		Return(activeProduct("canonical", "Neroli", 5), nil)

	// productId wins over _id and id.
	reservations, failures, err := engine.Reserve(context.Background(), uow, []ItemInput{
		{ProductID: "canonical", LegacyID: "legacy", AltID: "alt", Name: "Neroli", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, reservations, 1)

	ledger.AssertCalled(t, "FindProduct", mock.Anything, uow, "canonical")
}

func TestResolveProductID(t *testing.T) {
	assert.Equal(t, "a", ItemInput{ProductID: "a", LegacyID: "b", AltID: "c"}.ResolveProductID())
	assert.Equal(t, "b", ItemInput{LegacyID: "b", AltID: "c"}.ResolveProductID())
	assert.Equal(t, "c", ItemInput{AltID: "c"}.ResolveProductID())
	assert.Equal(t, "", ItemInput{}.ResolveProductID())
	assert.Equal(t, "a", ItemInput{ProductID: " a "}.ResolveProductID())
}

func TestReserve_InvalidQuantity(t *testing.T) {
	ledger := new(MockLedger)
	engine := NewReservationEngine(ledger)

	_, failures, err := engine.Reserve(context.Background(), &MockUnitOfWork{}, []ItemInput{
		{ProductID: "p1", Name: "Amber Noir", Quantity: 0},
	})

	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "Invalid quantity for item Amber Noir", failures[0])
}
