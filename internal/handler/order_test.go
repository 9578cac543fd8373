package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scentra-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, input order.PlaceOrderInput) (*order.Confirmation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Confirmation), args.Error(1)
}

func (m *MockOrderService) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListByEmail(ctx context.Context, email string, limit, page int32) ([]*order.Order, error) {
	args := m.Called(ctx, email, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) Stats(ctx context.Context, byDay bool) (*order.Stats, error) {
	args := m.Called(ctx, byDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Stats), args.Error(1)
}

const placeOrderBody = `{
	"customerInfo": {"email": "jane@example.com", "firstName": "Jane", "lastName": "Doe"},
	"items": [{"productId": "p1", "name": "Amber Noir", "price": 120, "quantity": 1}],
	"paymentInfo": {"method": "card", "cardNumber": "4111 1111 1111 4242"},
	"shippingOption": "standard",
	"pricing": {"subtotal": 120, "shipping": 10, "tax": 8, "total": 138}
}`

func TestPlaceOrderHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("PlaceOrder", mock.Anything, mock.AnythingOfType("order.PlaceOrderInput")).
			Return(&order.Confirmation{
				OrderNumber: "ORD123456780001",
				Status:      order.StatusPending,
				Total:       138,
				CreatedAt:   time.Now(),
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(placeOrderBody))
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var conf order.Confirmation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
		assert.Equal(t, "ORD123456780001", conf.OrderNumber)
		assert.Equal(t, order.StatusPending, conf.Status)
	})

	t.Run("IdempotentReplayReturns200", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in order.PlaceOrderInput) bool {
			return in.IdempotencyKey == "idem-1"
		})).Return(&order.Confirmation{
			OrderNumber: "ORD123456780001",
			Status:      order.StatusPending,
			Replayed:    true,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(placeOrderBody))
		req.Header.Set("Idempotency-Key", "idem-1")
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("StructuralErrorReturns400WithDetails", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, &order.StructuralError{Missing: []string{"items", "pricing"}})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "missing_fields", resp.Error)
		assert.Equal(t, []string{"items", "pricing"}, resp.Details)
	})

	t.Run("ValidationErrorReturns400WithMessages", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, &order.ValidationError{Messages: []string{
				"Insufficient stock for Amber Noir. Available: 2, Requested: 3",
			}})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(placeOrderBody))
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Details, 1)
		assert.Contains(t, resp.Details[0], "Insufficient stock for Amber Noir")
	})

	t.Run("AllocatorExhaustionReturns500", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, order.ErrAllocatorExhausted)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(placeOrderBody))
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "failed to generate unique order number", resp.Message)
	})

	t.Run("InvalidJSONReturns400", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		h.Place(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})
}

func TestGetOrderByNumberHandler(t *testing.T) {
	newRequest := func(number string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/number/"+number, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("orderNumber", number)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("Found", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("GetByNumber", mock.Anything, "ORD123456780001").
			Return(&order.Order{OrderNumber: "ORD123456780001", Status: order.StatusPending}, nil)

		rec := httptest.NewRecorder()
		h.GetByNumber(rec, newRequest("ORD123456780001"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("GetByNumber", mock.Anything, "ORD000000000000").
			Return(nil, order.ErrOrderNotFound)

		rec := httptest.NewRecorder()
		h.GetByNumber(rec, newRequest("ORD000000000000"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListOrdersByEmailHandler(t *testing.T) {
	t.Run("MissingEmail", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		rec := httptest.NewRecorder()
		h.ListByEmail(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("EmptyResultIsJSONArray", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("ListByEmail", mock.Anything, "jane@example.com", int32(20), int32(1)).
			Return([]*order.Order(nil), nil)

		rec := httptest.NewRecorder()
		h.ListByEmail(rec, httptest.NewRequest(http.MethodGet, "/api/orders?email=jane@example.com", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestAdminUpdateStatusHandler(t *testing.T) {
	newRequest := func(id, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+id+"/status", strings.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("UpdateStatus", mock.Anything, uint(7), order.StatusShipped).Return(nil)

		rec := httptest.NewRecorder()
		h.AdminUpdateStatus(rec, newRequest("7", `{"status":"shipped"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		svc.On("UpdateStatus", mock.Anything, uint(7), order.Status("teleported")).
			Return(order.ErrInvalidStatus)

		rec := httptest.NewRecorder()
		h.AdminUpdateStatus(rec, newRequest("7", `{"status":"teleported"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc)

		rec := httptest.NewRecorder()
		h.AdminUpdateStatus(rec, newRequest("abc", `{"status":"shipped"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
