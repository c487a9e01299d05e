package storage

import (
	"context"
	"fmt"

	"github.com/inkwell-commerce/declare/internal/model"
)

// SaveChanges appends reconciliation changes to the audit log.
func (s *SQLiteStorage) SaveChanges(ctx context.Context, orderReference string, changes []model.Change) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(orderReference, "orderReference"); err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range changes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO change_log (order_reference, kind, line_index, field, before_value, after_value)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderReference, string(c.Kind), c.LineIndex, c.Field, c.Before, c.After)
		if err != nil {
			return fmt.Errorf("failed to save change: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}

// GetChanges returns the audit log for one order, oldest first.
func (s *SQLiteStorage) GetChanges(ctx context.Context, orderReference string) ([]model.Change, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(orderReference, "orderReference"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, line_index, field, before_value, after_value
		FROM change_log WHERE order_reference = ? ORDER BY id`, orderReference)
	if err != nil {
		return nil, fmt.Errorf("failed to load changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var changes []model.Change
	for rows.Next() {
		var c model.Change
		var kind string
		if err := rows.Scan(&kind, &c.LineIndex, &c.Field, &c.Before, &c.After); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		c.Kind = model.ChangeKind(kind)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
