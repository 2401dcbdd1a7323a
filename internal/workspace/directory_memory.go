package workspace

import (
	"context"
	"sync"

	"workscope/internal/workspace/models"
	id "workscope/pkg/domain"
	"workscope/pkg/platform/sentinel"
)

// InMemoryDirectory keeps workspaces and memberships in process.
type InMemoryDirectory struct {
	mu          sync.RWMutex
	workspaces  map[id.WorkspaceID]models.Workspace
	memberships map[id.UserID][]id.WorkspaceID
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		workspaces:  make(map[id.WorkspaceID]models.Workspace),
		memberships: make(map[id.UserID][]id.WorkspaceID),
	}
}

// Put registers a workspace.
func (d *InMemoryDirectory) Put(_ context.Context, w models.Workspace) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.workspaces[w.ID] = w
	return nil
}

// Grant records that the user may access the workspace. Order of grants is
// preserved and drives scope order.
func (d *InMemoryDirectory) Grant(_ context.Context, user id.UserID, ws id.WorkspaceID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.memberships[user] {
		if existing == ws {
			return nil
		}
	}
	d.memberships[user] = append(d.memberships[user], ws)
	return nil
}

func (d *InMemoryDirectory) AccessibleWorkspaces(_ context.Context, p *models.Principal) ([]models.Workspace, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := d.memberships[p.UserID]
	out := make([]models.Workspace, 0, len(ids)+1)
	seen := make(map[id.WorkspaceID]struct{}, len(ids)+1)

	appendWorkspace := func(wsID id.WorkspaceID) {
		if _, ok := seen[wsID]; ok {
			return
		}
		if w, ok := d.workspaces[wsID]; ok {
			seen[wsID] = struct{}{}
			out = append(out, w)
		}
	}

	appendWorkspace(p.WorkspaceID)
	for _, wsID := range ids {
		appendWorkspace(wsID)
	}
	return out, nil
}

func (d *InMemoryDirectory) Workspace(_ context.Context, ws id.WorkspaceID) (*models.Workspace, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	w, ok := d.workspaces[ws]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &w, nil
}
