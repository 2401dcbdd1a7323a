package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"workscope/internal/directory/models"
	id "workscope/pkg/domain"
)

// PostgresStore reads users from PostgreSQL, scoped per workspace.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UsersByWorkspace(ctx context.Context, ws id.WorkspaceID) ([]models.User, error) {
	query := `
		SELECT id, workspace_id, name, email, created_at
		FROM users
		WHERE workspace_id = $1
		ORDER BY name, id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(ws))
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var (
			u      models.User
			userID uuid.UUID
			wsID   uuid.UUID
		)
		if err := rows.Scan(&userID, &wsID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.ID = id.UserID(userID)
		u.WorkspaceID = id.WorkspaceID(wsID)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
