package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"workscope/internal/workspace/models"
	id "workscope/pkg/domain"
	"workscope/pkg/platform/sentinel"
)

// PostgresDirectory reads workspaces and memberships from PostgreSQL.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) AccessibleWorkspaces(ctx context.Context, p *models.Principal) ([]models.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.type, w.parent_id, w.region_id, w.branch_id, w.created_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY (w.id = $2) DESC, m.granted_at, w.id
	`
	rows, err := d.db.QueryContext(ctx, query, uuid.UUID(p.UserID), uuid.UUID(p.WorkspaceID))
	if err != nil {
		return nil, fmt.Errorf("query accessible workspaces: %w", err)
	}
	defer rows.Close()

	var out []models.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return out, nil
}

func (d *PostgresDirectory) Workspace(ctx context.Context, ws id.WorkspaceID) (*models.Workspace, error) {
	query := `
		SELECT id, name, type, parent_id, region_id, branch_id, created_at
		FROM workspaces
		WHERE id = $1
	`
	row := d.db.QueryRowContext(ctx, query, uuid.UUID(ws))
	w, err := scanWorkspace(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func scanWorkspace(scan func(...any) error) (*models.Workspace, error) {
	var (
		w        models.Workspace
		wsID     uuid.UUID
		parentID uuid.NullUUID
	)
	if err := scan(&wsID, &w.Name, &w.Type, &parentID, &w.RegionID, &w.BranchID, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workspace: %w", err)
	}
	w.ID = id.WorkspaceID(wsID)
	if parentID.Valid {
		pid := id.WorkspaceID(parentID.UUID)
		w.ParentID = &pid
	}
	return &w, nil
}
