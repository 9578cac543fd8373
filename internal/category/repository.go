package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"scentra-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, name, slug string) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, error) {

	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Category"),
		zap.String("method", "List"),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	query := `
		SELECT c.id, c.name, c.slug, c.created_at
		FROM categories c
	`

	where := []string{}
	args := []interface{}{}

	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY c.name ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM categories WHERE slug = $1",
		slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, name, slug string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Category"),
		zap.String("method", "Create"),
		zap.String("slug", slug),
	)

	var c Category
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)
		 RETURNING id, name, slug, created_at`,
		uuid.New(), name, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == "23505" {
			return nil, ErrAlreadyExists
		}
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}

	return &c, nil
}
