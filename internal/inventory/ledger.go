package inventory

import (
	"context"
	"database/sql"
	"errors"

	"scentra-be/internal/logger"
	"scentra-be/internal/product"
	"scentra-be/internal/storage"

	"go.uber.org/zap"
)

// Ledger is the access layer over per-product stock counters. All methods
// take the unit of work of the enclosing checkout so reads and decrements
// share one transaction scope. The order coordinator is the only caller of
// the decrement paths.
type Ledger interface {
	FindProduct(ctx context.Context, uow storage.UnitOfWork, id string) (*product.Product, error)
	DecrementStock(ctx context.Context, uow storage.UnitOfWork, productID string, qty int) error
	DecrementSizeStock(ctx context.Context, uow storage.UnitOfWork, productID, size string, qty int) error
}

type ledger struct{}

func NewLedger() Ledger {
	return &ledger{}
}

func (l *ledger) FindProduct(ctx context.Context, uow storage.UnitOfWork, id string) (*product.Product, error) {
	var p product.Product
	err := uow.QueryRowContext(ctx, `
		SELECT id, name, brand, price, stock, is_active
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Stock, &p.IsActive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := uow.QueryContext(ctx, `
		SELECT size, stock, available, price
		FROM product_sizes
		WHERE product_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v product.SizeVariant
		if err := rows.Scan(&v.Size, &v.Stock, &v.Available, &v.Price); err != nil {
			return nil, err
		}
		p.Sizes = append(p.Sizes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// DecrementStock applies the general-stock decrement. The guard re-verifies
// sufficiency at write time; zero rows affected means a concurrent checkout
// consumed the stock first.
func (l *ledger) DecrementStock(ctx context.Context, uow storage.UnitOfWork, productID string, qty int) error {
	res, err := uow.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.FromCtx(ctx).Warn("stock decrement conflict",
			zap.String("product_id", productID),
			zap.Int("quantity", qty),
		)
		return ErrStockConflict
	}
	return nil
}

// DecrementSizeStock decrements one size variant, marking it unavailable
// when the remaining stock reaches zero.
func (l *ledger) DecrementSizeStock(ctx context.Context, uow storage.UnitOfWork, productID, size string, qty int) error {
	res, err := uow.ExecContext(ctx, `
		UPDATE product_sizes
		SET stock = stock - $1, available = (stock - $1) > 0
		WHERE product_id = $2 AND size = $3 AND stock >= $1
	`, qty, productID, size)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.FromCtx(ctx).Warn("size stock decrement conflict",
			zap.String("product_id", productID),
			zap.String("size", size),
			zap.Int("quantity", qty),
		)
		return ErrStockConflict
	}
	return nil
}
