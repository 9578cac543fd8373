package banner

import (
	"context"
	"database/sql"

	"scentra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	ListActive(ctx context.Context) ([]*Banner, error)
	List(ctx context.Context) ([]*Banner, error)
	Create(ctx context.Context, b *Banner) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) list(ctx context.Context, activeOnly bool) ([]*Banner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Banner"),
		zap.String("method", "List"),
		zap.Bool("active_only", activeOnly),
	)

	q := `
		SELECT id, title, image_url, link_url, position, active, created_at
		FROM banners
	`
	if activeOnly {
		q += " WHERE active = true"
	}
	q += " ORDER BY position ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var banners []*Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ImageURL, &b.LinkURL,
			&b.Position, &b.Active, &b.CreatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		banners = append(banners, &b)
	}

	return banners, rows.Err()
}

func (r *repository) ListActive(ctx context.Context) ([]*Banner, error) {
	return r.list(ctx, true)
}

func (r *repository) List(ctx context.Context) ([]*Banner, error) {
	return r.list(ctx, false)
}

func (r *repository) Create(ctx context.Context, b *Banner) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Banner"),
		zap.String("method", "Create"),
		zap.String("banner_id", b.ID.String()),
	)

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO banners (id, title, image_url, link_url, position, active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		b.ID, b.Title, b.ImageURL, b.LinkURL, b.Position, b.Active,
	).Scan(&b.CreatedAt)

	if err != nil {
		log.Error("insert failed", zap.Error(err))
	}
	return err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE banners SET active = $1 WHERE id = $2",
		active, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM banners WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
