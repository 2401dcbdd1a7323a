package models

import (
	id "workscope/pkg/domain"
	dErrors "workscope/pkg/domain-errors"
)

// Role is the principal's role within their current workspace.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleMember, RoleAdmin, RoleOwner:
		return Role(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+raw)
	}
}

// IsElevated reports whether the role carries admin-or-owner privileges.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Principal is the acting user plus their role and workspace-access scope for
// one query.
//
// Invariants:
//   - WorkspaceID is the current workspace and is always a member of Accessible
//   - Accessible is a singleton for non-owner roles
type Principal struct {
	UserID      id.UserID         `json:"user_id"`
	Role        Role              `json:"role"`
	WorkspaceID id.WorkspaceID    `json:"workspace_id"`
	Accessible  []id.WorkspaceID  `json:"accessible"`
}

// CanAccess reports whether the workspace is within the principal's scope.
func (p *Principal) CanAccess(ws id.WorkspaceID) bool {
	for _, a := range p.Accessible {
		if a == ws {
			return true
		}
	}
	return ws == p.WorkspaceID
}

func (p *Principal) Validate() error {
	if p.UserID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "principal user id is required")
	}
	if p.WorkspaceID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "principal workspace id is required")
	}
	if _, err := ParseRole(string(p.Role)); err != nil {
		return err
	}
	if p.Role != RoleOwner && len(p.Accessible) > 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, "non-owner principals have a single accessible workspace")
	}
	return nil
}
