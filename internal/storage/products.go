package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
)

// SaveProducts upserts catalog products. Items without a ProductID are
// assigned one.
func (s *SQLiteStorage) SaveProducts(ctx context.Context, products []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if products == nil {
		return fmt.Errorf("%w: products", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range products {
		p := &products[i]
		if err := validateItem(p); err != nil {
			return fmt.Errorf("product at index %d: %w", i, err)
		}
		id := p.ProductID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, sku, unit_price) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, sku = excluded.sku, unit_price = excluded.unit_price`,
			id, p.Name, p.SKU, p.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}
	return nil
}

// GetProductByID loads one catalog product.
func (s *SQLiteStorage) GetProductByID(ctx context.Context, id string) (*model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var item model.Item
	var unitPrice string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, sku, unit_price FROM products WHERE id = ?`, id).
		Scan(&item.ProductID, &item.Name, &item.SKU, &unitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	item.Quantity = 1
	item.UnitPrice, err = decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: bad unit price %q", common.ErrDatabaseCorrupted, unitPrice)
	}
	return &item, nil
}

// ListProducts returns the whole catalog, name order.
func (s *SQLiteStorage) ListProducts(ctx context.Context) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, sku, unit_price FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var unitPrice string
		if err := rows.Scan(&item.ProductID, &item.Name, &item.SKU, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		item.Quantity = 1
		item.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: bad unit price %q", common.ErrDatabaseCorrupted, unitPrice)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
