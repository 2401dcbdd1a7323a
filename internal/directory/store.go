// Package directory exposes the user directory boundary. The engine resolves
// report authors through it to label submitted reports.
package directory

import (
	"context"

	"workscope/internal/directory/models"
	id "workscope/pkg/domain"
)

// Store is the per-workspace read contract for users.
type Store interface {
	UsersByWorkspace(ctx context.Context, ws id.WorkspaceID) ([]models.User, error)
}
