package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e Event) error {
	query := `
		INSERT INTO query_audit (ts, user_id, action, workspace_id, scope_size, failed_workspaces)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	failed := e.FailedWorkspaces
	if failed == nil {
		failed = []string{}
	}
	_, err := s.db.ExecContext(ctx, query,
		e.Timestamp, e.UserID, e.Action, e.WorkspaceID, e.ScopeSize, pq.Array(failed),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	query := `
		SELECT ts, user_id, action, workspace_id, scope_size, failed_workspaces
		FROM query_audit
		WHERE user_id = $1
		ORDER BY ts
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			failed pq.StringArray
		)
		if err := rows.Scan(&e.Timestamp, &e.UserID, &e.Action, &e.WorkspaceID, &e.ScopeSize, &failed); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.FailedWorkspaces = failed
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
