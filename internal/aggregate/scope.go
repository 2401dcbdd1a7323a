// Package aggregate implements the cross-workspace read pipeline: scope
// resolution, partitioned parallel fetch with failure isolation,
// first-seen-wins merging, access filtering, and statistics summation.
//
// Each query is a pure function of (principal, scope, stores) executed to
// completion; the engine holds no mutable state between calls.
package aggregate

import (
	"workscope/internal/workspace/models"
	id "workscope/pkg/domain"
)

// ResolveScope produces the ordered, deduplicated list of workspace ids one
// query will fan out over.
//
// The full accessible set is only used when all three hold: the caller asked
// for it, the principal is an owner, and there is more than one workspace to
// widen into. Everything else degrades to the current workspace. An empty
// accessible list yields an empty scope; callers treat that as nothing to
// query, not a fault.
func ResolveScope(p *models.Principal, includeAllAccessible bool) []id.WorkspaceID {
	if !includeAllAccessible || p.Role != models.RoleOwner || len(p.Accessible) <= 1 {
		if p.WorkspaceID.IsNil() {
			return nil
		}
		return []id.WorkspaceID{p.WorkspaceID}
	}

	seen := make(map[id.WorkspaceID]struct{}, len(p.Accessible))
	scope := make([]id.WorkspaceID, 0, len(p.Accessible))
	for _, ws := range p.Accessible {
		if ws.IsNil() {
			continue
		}
		if _, ok := seen[ws]; ok {
			continue
		}
		seen[ws] = struct{}{}
		scope = append(scope, ws)
	}
	return scope
}
