// Package migrations embeds the SQL schema used by the PostgreSQL stores.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
)

// Files contains SQL migrations embedded into the binary.
//
// The migrations are stored alongside this package using a flat naming
// convention (e.g., 001_init.sql) so callers can read them directly via the
// returned embed.FS.
//
//go:embed *.sql
var Files embed.FS

// Apply executes every embedded migration in lexical order. Statements are
// idempotent (IF NOT EXISTS) so re-applying is safe.
func Apply(ctx context.Context, db *sql.DB) error {
	entries, err := Files.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := Files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
