package storage

import (
	"context"
	"fmt"
)

// ListUsedCodes returns every product code ever issued or observed. The
// synthesizer's uniqueness guarantee is only as good as this registry, so
// imports record codes here as well as on their items.
func (s *SQLiteStorage) ListUsedCodes(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT code FROM used_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list used codes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan used code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// AddUsedCode records a code as issued. Recording the same code twice is
// harmless.
func (s *SQLiteStorage) AddUsedCode(ctx context.Context, code string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(code, "code"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO used_codes (code) VALUES (?)
		ON CONFLICT(code) DO NOTHING`, code)
	if err != nil {
		return fmt.Errorf("failed to record used code: %w", err)
	}
	return nil
}
