package wishlist

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotInWishlist = errors.New("product not in wishlist")

type Repository interface {
	List(ctx context.Context, userID uint) ([]Entry, error)
	Add(ctx context.Context, userID uint, productID string) error
	Remove(ctx context.Context, userID uint, productID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID uint) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at, p.name, p.price, p.image_url
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt,
			&e.ProductName, &e.ProductPrice, &e.ProductImage,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Add is a no-op when the product is already wishlisted.
func (r *repository) Add(ctx context.Context, userID uint, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *repository) Remove(ctx context.Context, userID uint, productID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotInWishlist
	}
	return nil
}
