package user

import (
	"context"
	"errors"
	"fmt"

	"scentra-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, string(RoleUser))
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return "", User{}, ErrEmailExists
		}
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	return token, u, err
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, email)
}
