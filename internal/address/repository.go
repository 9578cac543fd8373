package address

import (
	"context"
	"database/sql"

	"scentra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	ClearDefault(ctx context.Context, userID uint) error
	SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id,
	label, recipient, phone,
	street, apartment,
	city, province, postal_code, country,
	is_default, is_active
`

func scanAddress(row interface{ Scan(...any) error }) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.Label, &a.Recipient, &a.Phone,
		&a.Street, &a.Apartment,
		&a.City, &a.Province, &a.Postal, &a.Country,
		&a.IsDefault, &a.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID uint,
) ([]*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	q := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		  AND is_active = true
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByID"),
		zap.String("address_id", id.String()),
	)

	q := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1 AND is_active = true
		LIMIT 1
	`

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return a, nil
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.String("address_id", addr.ID.String()),
	)

	const q = `
		INSERT INTO addresses (
			id, user_id,
			label, recipient, phone,
			street, apartment,
			city, province, postal_code, country,
			is_default, is_active
		) VALUES (
			$1, $2,
			$3, $4, $5,
			$6, $7,
			$8, $9, $10, $11,
			$12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, q,
		addr.ID, addr.UserID,
		addr.Label, addr.Recipient, addr.Phone,
		addr.Street, addr.Apartment,
		addr.City, addr.Province, addr.Postal, addr.Country,
		addr.IsDefault, addr.IsActive,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
	}
	return err
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Deactivate"),
		zap.String("address_id", id.String()),
	)

	res, err := r.db.ExecContext(ctx,
		"UPDATE addresses SET is_active = false, is_default = false WHERE id = $1",
		id,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ClearDefault(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default = true",
		userID,
	)
	return err
}

func (r *repository) SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE addresses SET is_default = true WHERE id = $1 AND user_id = $2 AND is_active = true",
		addressID, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
