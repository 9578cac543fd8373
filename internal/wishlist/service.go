package wishlist

import (
	"context"
	"errors"

	"scentra-be/internal/product"
)

var ErrUserNotAuthenticated = errors.New("user not authenticated")

type Service interface {
	List(ctx context.Context, userID uint) ([]Entry, error)
	Add(ctx context.Context, userID uint, productID string) error
	Remove(ctx context.Context, userID uint, productID string) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) List(ctx context.Context, userID uint) ([]Entry, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.List(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID uint, productID string) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *service) Remove(ctx context.Context, userID uint, productID string) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Remove(ctx, userID, productID)
}
