package user

import (
	"context"
	"database/sql"

	"scentra-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, password, role string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password, role string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, email, password, role",
		email, password, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == "23505" {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password, role FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role)

	return u, err
}
