package category

import (
	"context"
	"strings"

	"scentra-be/internal/logger"
	"scentra-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, name string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error) {
	return s.repo.List(ctx, filter, limit, page)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	slug := utils.Slugify(name)

	c, err := s.repo.Create(ctx, name, slug)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("category created",
		zap.String("category_id", c.ID.String()),
		zap.String("slug", c.Slug),
	)
	return c, nil
}
