package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scentra-be/internal/logger"
	"scentra-be/internal/storage"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	// Write paths used by the transaction coordinator, bound to its unit
	// of work.
	InsertOrder(ctx context.Context, uow storage.UnitOfWork, o *Order) error
	NumberExists(ctx context.Context, uow storage.UnitOfWork, number string) (bool, error)

	// Read/update paths, plain CRUD outside the transactional core.
	GetByNumber(ctx context.Context, number string) (*Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	ListByEmail(ctx context.Context, email string, limit, page int32) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, byDay bool) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) NumberExists(ctx context.Context, uow storage.UnitOfWork, number string) (bool, error) {
	var exists bool
	err := uow.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)",
		number,
	).Scan(&exists)
	return exists, err
}

// InsertOrder persists the order snapshot and its items inside the unit of
// work. The insert runs under a savepoint so a unique-index collision on
// the order number can be retried without poisoning the transaction.
func (r *repository) InsertOrder(ctx context.Context, uow storage.UnitOfWork, o *Order) error {
	if _, err := uow.ExecContext(ctx, "SAVEPOINT order_insert"); err != nil {
		return err
	}

	err := uow.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, status,
			customer_first_name, customer_last_name, customer_email, customer_phone,
			customer_address, customer_city, customer_postal_code, customer_country,
			payment_method, card_last4, cardholder_name,
			shipping_option, subtotal, shipping, tax, discount, total,
			promo_code, idempotency_key
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22
		)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.UserID, o.Status,
		o.CustomerInfo.FirstName, o.CustomerInfo.LastName, o.CustomerInfo.Email, o.CustomerInfo.Phone,
		o.CustomerInfo.Address, o.CustomerInfo.City, o.CustomerInfo.PostalCode, o.CustomerInfo.Country,
		o.PaymentInfo.Method, o.PaymentInfo.CardLast4, o.PaymentInfo.CardholderName,
		o.ShippingOption, o.Pricing.Subtotal, o.Pricing.Shipping, o.Pricing.Tax, o.Pricing.Discount, o.Pricing.Total,
		nullIfEmpty(o.PromoCode), o.IdempotencyKey,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			if _, rbErr := uow.ExecContext(ctx, "ROLLBACK TO SAVEPOINT order_insert"); rbErr != nil {
				return rbErr
			}
			if pqErr.Constraint == "orders_idempotency_key_key" {
				return ErrDuplicateIdempotencyKey
			}
			return ErrDuplicateOrderNumber
		}
		return err
	}

	for _, item := range o.Items {
		_, err = uow.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, selected_size, image_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			o.ID, item.ProductID, item.Name, item.Price, item.Quantity,
			nullIfEmpty(item.SelectedSize), nullIfEmpty(item.Image),
		)
		if err != nil {
			return err
		}
	}

	if _, err := uow.ExecContext(ctx, "RELEASE SAVEPOINT order_insert"); err != nil {
		return err
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const orderColumns = `
	o.id, o.order_number, o.user_id, o.status,
	o.customer_first_name, o.customer_last_name, o.customer_email, o.customer_phone,
	o.customer_address, o.customer_city, o.customer_postal_code, o.customer_country,
	o.payment_method, o.card_last4, o.cardholder_name,
	o.shipping_option, o.subtotal, o.shipping, o.tax, o.discount, o.total,
	o.promo_code, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var promo sql.NullString
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status,
		&o.CustomerInfo.FirstName, &o.CustomerInfo.LastName, &o.CustomerInfo.Email, &o.CustomerInfo.Phone,
		&o.CustomerInfo.Address, &o.CustomerInfo.City, &o.CustomerInfo.PostalCode, &o.CustomerInfo.Country,
		&o.PaymentInfo.Method, &o.PaymentInfo.CardLast4, &o.PaymentInfo.CardholderName,
		&o.ShippingOption, &o.Pricing.Subtotal, &o.Pricing.Shipping, &o.Pricing.Tax, &o.Pricing.Discount, &o.Pricing.Total,
		&promo, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.PromoCode = promo.String
	return &o, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.order_number = $1",
		number,
	)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.idempotency_key = $1",
		key,
	)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, price, quantity, selected_size, image_url
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		var size, image sql.NullString
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity, &size, &image); err != nil {
			return err
		}
		item.SelectedSize = size.String
		item.Image = image.String
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) ListByEmail(ctx context.Context, email string, limit, page int32) ([]*Order, error) {
	return r.List(ctx, ListFilter{Email: &email, Limit: limit, Page: page})
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	limit := int32(20)
	page := int32(1)
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	if limit > 100 {
		limit = 100
	}
	if filter.Page > 0 {
		page = filter.Page
	}
	offset := (page - 1) * limit

	query := "SELECT " + orderColumns + " FROM orders o WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Email != nil && *filter.Email != "" {
		query += fmt.Sprintf(" AND o.customer_email = $%d", argIndex)
		args = append(args, *filter.Email)
		argIndex++
	}
	if filter.Status != nil && *filter.Status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		query += fmt.Sprintf(" AND (o.order_number ILIKE $%d OR o.customer_email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}

	log.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Stats(ctx context.Context, byDay bool) (*Stats, error) {
	stats := &Stats{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s StatusStat
		if err := rows.Scan(&s.Status, &s.Count, &s.Revenue); err != nil {
			return nil, err
		}
		stats.ByStatus = append(stats.ByStatus, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !byDay {
		return stats, nil
	}

	dayRows, err := r.db.QueryContext(ctx, `
		SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		GROUP BY day
		ORDER BY day DESC
		LIMIT 30
	`)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var d DayStat
		if err := dayRows.Scan(&d.Day, &d.Count, &d.Revenue); err != nil {
			return nil, err
		}
		stats.ByDay = append(stats.ByDay, d)
	}
	return stats, dayRows.Err()
}
