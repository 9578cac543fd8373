package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{"EmptyName", CreateParams{Name: "  ", Price: 10}, ErrNameRequired},
		{"NegativePrice", CreateParams{Name: "Amber Noir", Price: -1}, ErrInvalidPrice},
		{"NegativeStock", CreateParams{Name: "Amber Noir", Price: 10, Stock: -1}, ErrInvalidStock},
		{"NegativeSizeStock", CreateParams{
			Name: "Amber Noir", Price: 10,
			Sizes: []SizeVariant{{Size: "50ml", Stock: -1}},
		}, ErrInvalidStock},
		{"NegativeSizePrice", CreateParams{
			Name: "Amber Noir", Price: 10,
			Sizes: []SizeVariant{{Size: "50ml", Stock: 1, Price: -5}},
		}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductCreate_Valid(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	params := CreateParams{Name: "Amber Noir", Brand: "Scentra", Price: 120, Stock: 5}
	repo.On("Create", mock.Anything, params).
		Return(&Product{ID: "p1", Name: "Amber Noir", IsActive: true}, nil)

	p, err := svc.Create(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	repo.AssertExpectations(t)
}

func TestProductUpdateValidation(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	negative := -3.0
	_, err := svc.Update(context.Background(), "p1", UpdateParams{Price: &negative})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSizeLookup(t *testing.T) {
	p := &Product{Sizes: []SizeVariant{
		{Size: "50ml", Stock: 3},
		{Size: "100ml", Stock: 0},
	}}

	assert.NotNil(t, p.Size("50ml"))
	assert.Equal(t, 0, p.Size("100ml").Stock)
	assert.Nil(t, p.Size("30ml"))
}
