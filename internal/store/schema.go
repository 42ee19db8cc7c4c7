package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
)

//go:embed migrations/schema.sql
var migrationFS embed.FS

// ApplySchema creates the tables when they do not exist yet. The statements
// are written in the dialect subset shared by PostgreSQL and SQLite.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	schema, err := migrationFS.ReadFile("migrations/schema.sql")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
