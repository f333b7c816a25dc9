package db

import (
	"context"
	"fmt"
)

// migrate applies additive schema changes to databases created by older
// builds. Each statement must be safe to run repeatedly.
func (db *DB) migrate() error {
	var hasLabel int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM pragma_table_info('sessions') WHERE name = 'label'`,
	).Scan(&hasLabel)
	if err != nil {
		return fmt.Errorf("failed to inspect sessions table: %w", err)
	}

	if hasLabel == 0 {
		if _, err := db.ExecContext(context.Background(),
			`ALTER TABLE sessions ADD COLUMN label TEXT`); err != nil {
			return fmt.Errorf("failed to add label column: %w", err)
		}
	}

	return nil
}
