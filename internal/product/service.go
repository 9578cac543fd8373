package product

import (
	"context"
	"strings"

	"scentra-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Product, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	for _, v := range params.Sizes {
		if v.Stock < 0 {
			return nil, ErrInvalidStock
		}
		if v.Price < 0 {
			return nil, ErrInvalidPrice
		}
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	for _, v := range params.Sizes {
		if v.Stock < 0 {
			return nil, ErrInvalidStock
		}
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
