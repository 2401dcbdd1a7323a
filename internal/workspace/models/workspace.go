package models

import (
	"time"

	id "workscope/pkg/domain"
	dErrors "workscope/pkg/domain-errors"
)

// WorkspaceType distinguishes top-level workspaces from region/branch-bound
// sub workspaces.
type WorkspaceType string

const (
	WorkspaceTypeMain WorkspaceType = "main"
	WorkspaceTypeSub  WorkspaceType = "sub"
)

func ParseWorkspaceType(raw string) (WorkspaceType, error) {
	switch WorkspaceType(raw) {
	case WorkspaceTypeMain, WorkspaceTypeSub:
		return WorkspaceType(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown workspace type: "+raw)
	}
}

// Workspace is a tenant-like data partition.
//
// Invariants:
//   - Name is non-empty
//   - Type is main or sub
//   - A sub workspace may carry a parent and a region/branch binding; a main
//     workspace carries neither
type Workspace struct {
	ID        id.WorkspaceID `json:"id"`
	Name      string         `json:"name"`
	Type      WorkspaceType  `json:"type"`
	ParentID  *id.WorkspaceID `json:"parent_id,omitempty"`
	RegionID  *string        `json:"region_id,omitempty"`
	BranchID  *string        `json:"branch_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// EffectiveSource returns the workspace whose data backs this one: the parent
// for a sub workspace that records one, otherwise the workspace itself.
func (w *Workspace) EffectiveSource() id.WorkspaceID {
	if w.Type == WorkspaceTypeSub && w.ParentID != nil && !w.ParentID.IsNil() {
		return *w.ParentID
	}
	return w.ID
}

func NewWorkspace(wsID id.WorkspaceID, name string, typ WorkspaceType, now time.Time) (*Workspace, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "workspace name cannot be empty")
	}
	if typ != WorkspaceTypeMain && typ != WorkspaceTypeSub {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "workspace type must be main or sub")
	}
	return &Workspace{
		ID:        wsID,
		Name:      name,
		Type:      typ,
		CreatedAt: now,
	}, nil
}
