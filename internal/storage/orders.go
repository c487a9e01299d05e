package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
)

// SaveOrder persists an order and replaces its items and declaration lines
// atomically. Positions preserve input order; the matcher's positional tier
// depends on it.
func (s *SQLiteStorage) SaveOrder(ctx context.Context, order *model.Order) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOrder(order); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (reference, currency) VALUES (?, ?)
		ON CONFLICT(reference) DO UPDATE SET currency = excluded.currency`,
		order.Reference, order.Currency)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_reference = ?`, order.Reference); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_reference, position, name, sku, external_id, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			order.Reference, i, item.Name, item.SKU, item.ExternalID, item.ProductID, item.Quantity, item.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("failed to save order item: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM declaration_lines WHERE order_reference = ?`, order.Reference); err != nil {
		return fmt.Errorf("failed to clear declaration lines: %w", err)
	}
	for i := range order.DeclarationLines {
		line := &order.DeclarationLines[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO declaration_lines (order_reference, position, description, code, origin_country, sku, declaration_id, quantity, value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.Reference, i, line.Description, line.Code, line.OriginCountry, line.SKU, line.DeclarationID, line.Quantity, line.Value.String())
		if err != nil {
			return fmt.Errorf("failed to save declaration line: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// GetOrder loads an order with its items and declaration lines in stored
// position order.
func (s *SQLiteStorage) GetOrder(ctx context.Context, reference string) (*model.Order, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reference, "reference"); err != nil {
		return nil, err
	}

	order := &model.Order{Reference: reference}
	err := s.db.QueryRowContext(ctx, `
		SELECT currency, created_at FROM orders WHERE reference = ?`, reference).
		Scan(&order.Currency, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %q: %w", reference, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	items, err := s.loadItems(ctx, reference)
	if err != nil {
		return nil, err
	}
	order.Items = items

	lines, err := s.loadLines(ctx, reference)
	if err != nil {
		return nil, err
	}
	order.DeclarationLines = lines

	return order, nil
}

// ListOrderReferences returns every stored order reference, oldest first.
func (s *SQLiteStorage) ListOrderReferences(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT reference FROM orders ORDER BY created_at, reference`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("failed to scan order reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Get implements service.OrderStore.
func (s *SQLiteStorage) Get(ctx context.Context, reference string) (*model.Order, error) {
	return s.GetOrder(ctx, reference)
}

// Save implements service.OrderStore.
func (s *SQLiteStorage) Save(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := s.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order.Reference)
}

func (s *SQLiteStorage) loadItems(ctx context.Context, reference string) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, sku, external_id, product_id, quantity, unit_price
		FROM order_items WHERE order_reference = ? ORDER BY position`, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var unitPrice string
		if err := rows.Scan(&item.Name, &item.SKU, &item.ExternalID, &item.ProductID, &item.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: bad unit price %q", common.ErrDatabaseCorrupted, unitPrice)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStorage) loadLines(ctx context.Context, reference string) ([]model.DeclarationLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description, code, origin_country, sku, declaration_id, quantity, value
		FROM declaration_lines WHERE order_reference = ? ORDER BY position`, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load declaration lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []model.DeclarationLine
	for rows.Next() {
		var line model.DeclarationLine
		var value string
		if err := rows.Scan(&line.Description, &line.Code, &line.OriginCountry, &line.SKU, &line.DeclarationID, &line.Quantity, &value); err != nil {
			return nil, fmt.Errorf("failed to scan declaration line: %w", err)
		}
		line.Value, err = decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: bad line value %q", common.ErrDatabaseCorrupted, value)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
