// Package workspace exposes the workspace directory boundary: which
// workspaces exist and which of them a principal may reach. Scope resolution
// consumes this; membership management itself stays behind the directory.
package workspace

import (
	"context"

	"workscope/internal/workspace/models"
	id "workscope/pkg/domain"
)

// Directory answers workspace lookups for the engine.
type Directory interface {
	// AccessibleWorkspaces returns the workspaces the principal may query,
	// in stable membership order. The current workspace is always included.
	AccessibleWorkspaces(ctx context.Context, p *models.Principal) ([]models.Workspace, error)

	// Workspace returns one workspace by id, or sentinel.ErrNotFound.
	Workspace(ctx context.Context, ws id.WorkspaceID) (*models.Workspace, error)
}
