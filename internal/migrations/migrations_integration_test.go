//go:build integration

package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workscope/internal/migrations"
	"workscope/pkg/testutil/containers"
)

// The server applies the schema on startup, so Apply has to work against a
// fresh database and be safe to run again on every restart.
func TestApplyBootstrapsSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	require.NoError(t, migrations.Apply(ctx, pg.DB))

	for _, table := range []string{
		"workspaces", "workspace_members", "users",
		"calendar_events", "report_templates", "reports",
		"report_deadlines", "query_audit",
	} {
		var exists bool
		err := pg.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist after Apply", table)
	}

	// Re-applying simulates a restart against an already migrated database.
	assert.NoError(t, migrations.Apply(ctx, pg.DB))
}
