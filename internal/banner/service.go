package banner

import (
	"context"
	"strings"

	"scentra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	ListActive(ctx context.Context) ([]*Banner, error)
	List(ctx context.Context) ([]*Banner, error)
	Create(ctx context.Context, input CreateBannerInput) (*Banner, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]*Banner, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) List(ctx context.Context) ([]*Banner, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, input CreateBannerInput) (*Banner, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, ErrImageRequired
	}

	b := &Banner{
		ID:       uuid.New(),
		Title:    input.Title,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		Position: input.Position,
		Active:   input.Active,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("banner created",
		zap.String("banner_id", b.ID.String()),
		zap.Int("position", b.Position),
	)
	return b, nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
