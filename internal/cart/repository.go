package cart

import (
	"context"
	"database/sql"
	"errors"

	"scentra-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetItems(ctx context.Context, userID uint) ([]Item, error)
	GetItem(ctx context.Context, userID uint, productID, selectedSize string) (*Item, error)
	Insert(ctx context.Context, params AddParams) (*Item, error)
	UpdateQuantity(ctx context.Context, itemID uint, userID uint, quantity int) error
	Remove(ctx context.Context, itemID uint, userID uint) error
	Clear(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItems(ctx context.Context, userID uint) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.product_id, COALESCE(c.selected_size, ''), c.quantity,
		       c.created_at, c.updated_at, p.name, p.price, p.image_url
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get cart rows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.SelectedSize, &it.Quantity,
			&it.CreatedAt, &it.UpdatedAt, &it.ProductName, &it.ProductPrice, &it.ProductImage,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, userID uint, productID, selectedSize string) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, COALESCE(selected_size, ''), quantity, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2 AND COALESCE(selected_size, '') = $3
	`, userID, productID, selectedSize).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.SelectedSize, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Insert(ctx context.Context, params AddParams) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, product_id, selected_size, quantity)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, user_id, product_id, COALESCE(selected_size, ''), quantity, created_at, updated_at
	`, params.UserID, params.ProductID, params.SelectedSize, params.Quantity).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.SelectedSize, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			// Raced with another add of the same line; bump instead.
			existing, getErr := r.GetItem(ctx, params.UserID, params.ProductID, params.SelectedSize)
			if getErr != nil || existing == nil {
				return nil, err
			}
			if updErr := r.UpdateQuantity(ctx, existing.ID, params.UserID, existing.Quantity+params.Quantity); updErr != nil {
				return nil, updErr
			}
			existing.Quantity += params.Quantity
			return existing, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID uint, userID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, quantity, itemID, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, itemID uint, userID uint) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM carts WHERE id = $1 AND user_id = $2",
		itemID, userID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID uint) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM carts WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
