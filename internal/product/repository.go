package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scentra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Product, error)
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	limit := int32(20)
	page := int32(1)
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if limit > 100 {
		limit = 100
	}
	if opts.Page > 0 {
		page = opts.Page
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, name, brand, description, price, stock, is_active, image_url, category_id, created_at, updated_at
		FROM products
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if opts.OnlyActive {
		query += " AND is_active = TRUE"
	}
	if opts.CategoryID != nil && *opts.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", argIndex)
		args = append(args, *opts.CategoryID)
		argIndex++
	}
	if opts.Search != nil && *opts.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR brand ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*opts.Search+"%")
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []Product
	ids := []any{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
			&p.IsActive, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return products, nil
	}

	sizesByProduct, err := r.loadSizes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Sizes = sizesByProduct[products[i].ID]
	}

	return products, nil
}

func (r *repository) loadSizes(ctx context.Context, productIDs []any) (map[string][]SizeVariant, error) {
	query := "SELECT product_id, size, stock, available, price FROM product_sizes WHERE product_id IN ("
	for i := range productIDs {
		if i > 0 {
			query += ","
		}
		query += fmt.Sprintf("$%d", i+1)
	}
	query += ") ORDER BY product_id, position"

	rows, err := r.db.QueryContext(ctx, query, productIDs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]SizeVariant)
	for rows.Next() {
		var pid string
		var v SizeVariant
		if err := rows.Scan(&pid, &v.Size, &v.Stock, &v.Available, &v.Price); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], v)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, brand, description, price, stock, is_active, image_url, category_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.IsActive, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sizes, err := r.loadSizes(ctx, []any{id})
	if err != nil {
		return nil, err
	}
	p.Sizes = sizes[id]

	return &p, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("name", params.Name),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	var p Product
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (id, name, brand, description, price, stock, is_active, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING id, name, brand, description, price, stock, is_active, image_url, category_id, created_at, updated_at
	`,
		id, params.Name, params.Brand, params.Description, params.Price,
		params.Stock, params.ImageURL, params.CategoryID,
	).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.IsActive, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	if err := insertSizes(ctx, tx, id, params.Sizes); err != nil {
		log.Error("failed to insert product sizes", zap.Error(err))
		return nil, err
	}
	p.Sizes = params.Sizes

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &p, nil
}

func insertSizes(ctx context.Context, tx *sql.Tx, productID string, sizes []SizeVariant) error {
	for i, v := range sizes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product_sizes (product_id, size, stock, available, price, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, productID, v.Size, v.Stock, v.Available, v.Price, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := "UPDATE products SET updated_at = NOW()"
	args := []any{}
	argIndex := 1

	appendSet := func(col string, val any) {
		query += fmt.Sprintf(", %s = $%d", col, argIndex)
		args = append(args, val)
		argIndex++
	}

	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.Brand != nil {
		appendSet("brand", *params.Brand)
	}
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Price != nil {
		appendSet("price", *params.Price)
	}
	if params.Stock != nil {
		appendSet("stock", *params.Stock)
	}
	if params.IsActive != nil {
		appendSet("is_active", *params.IsActive)
	}
	if params.ImageURL != nil {
		appendSet("image_url", *params.ImageURL)
	}
	if params.CategoryID != nil {
		appendSet("category_id", *params.CategoryID)
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrNotFound
	}

	// A sizes update replaces the whole variant list.
	if params.Sizes != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM product_sizes WHERE product_id = $1", id); err != nil {
			return nil, err
		}
		if err := insertSizes(ctx, tx, id, params.Sizes); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
