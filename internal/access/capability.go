// Package access centralizes per-item visibility and permission rules for the
// aggregation engine. Predicates are pure functions so the same logic serves
// list filtering, permission flags on derived items, and boundary checks
// without drifting apart.
package access

import (
	wsmodels "workscope/internal/workspace/models"
)

// Capability is an explicit, role-derived permission. Resolving the set once
// per query replaces ad hoc per-item permission objects.
type Capability string

const (
	CapabilityCreateEvents          Capability = "create_events"
	CapabilityEditEvents            Capability = "edit_events"
	CapabilityDeleteEvents          Capability = "delete_events"
	CapabilityViewAllEvents         Capability = "view_all_events"
	CapabilityCreateRestricted      Capability = "create_restricted_events"
	CapabilityManageReportDeadlines Capability = "manage_report_deadlines"
)

// CapabilitySet is a resolved set of capabilities for one principal.
type CapabilitySet map[Capability]struct{}

// Has reports whether the capability is present.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func newSet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// ResolveCapabilities maps a workspace role to its capability set. Resolved
// once at query start and threaded through every predicate.
func ResolveCapabilities(role wsmodels.Role) CapabilitySet {
	switch role {
	case wsmodels.RoleOwner, wsmodels.RoleAdmin:
		return newSet(
			CapabilityCreateEvents,
			CapabilityEditEvents,
			CapabilityDeleteEvents,
			CapabilityViewAllEvents,
			CapabilityCreateRestricted,
			CapabilityManageReportDeadlines,
		)
	case wsmodels.RoleMember:
		return newSet(CapabilityCreateEvents)
	default:
		return newSet()
	}
}
