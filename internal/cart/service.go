package cart

import (
	"context"

	"scentra-be/internal/product"
)

type Service interface {
	GetCart(ctx context.Context, userID uint) ([]Item, error)
	Add(ctx context.Context, params AddParams) (*Item, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	Remove(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]Item, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.GetItems(ctx, userID)
}

func (s *service) Add(ctx context.Context, params AddParams) (*Item, error) {
	if params.UserID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// The product must exist; stock is only enforced at checkout.
	if _, err := s.products.GetByID(ctx, params.ProductID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, params.UserID, params.ProductID, params.SelectedSize)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQty := existing.Quantity + params.Quantity
		if err := s.repo.UpdateQuantity(ctx, existing.ID, params.UserID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return existing, nil
	}

	return s.repo.Insert(ctx, params)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, itemID, userID, quantity)
}

func (s *service) Remove(ctx context.Context, userID, itemID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Remove(ctx, itemID, userID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	removed, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrCartEmpty
	}
	return nil
}
