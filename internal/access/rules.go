package access

import (
	calmodels "workscope/internal/calendar/models"
	repmodels "workscope/internal/report/models"
	wsmodels "workscope/internal/workspace/models"
)

// EventPermissions carries the per-item flags exposed alongside a filtered
// event.
type EventPermissions struct {
	CanView   bool `json:"can_view"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// CanViewEvent applies the event visibility rule chain.
// This is pure domain logic - no I/O, no side effects.
//
// Rule order:
//  1. Creator always sees their own event, restricted included
//  2. Restricted events are otherwise admin-or-owner only
//  3. Public events are visible to everyone in scope
//  4. Attendees see events they are invited to
//  5. Blanket calendar access (role-derived) sees the rest
func CanViewEvent(e *calmodels.CalendarEvent, p *wsmodels.Principal, caps CapabilitySet) bool {
	if e.CreatedBy == p.UserID {
		return true
	}
	if e.Visibility == calmodels.VisibilityRestricted {
		return p.Role.IsElevated()
	}
	if e.Visibility == calmodels.VisibilityPublic {
		return true
	}
	if e.HasAttendee(p.UserID) {
		return true
	}
	return caps.Has(CapabilityViewAllEvents)
}

// CanEditEvent is true for the creator, for principals with explicit edit
// capability, and for admin-or-owner principals when the event's workspace is
// within their scope.
func CanEditEvent(e *calmodels.CalendarEvent, p *wsmodels.Principal, caps CapabilitySet) bool {
	if e.CreatedBy == p.UserID {
		return true
	}
	if caps.Has(CapabilityEditEvents) {
		return true
	}
	return p.Role.IsElevated() && p.CanAccess(e.WorkspaceID)
}

// CanDeleteEvent mirrors CanEditEvent with the delete capability.
func CanDeleteEvent(e *calmodels.CalendarEvent, p *wsmodels.Principal, caps CapabilitySet) bool {
	if e.CreatedBy == p.UserID {
		return true
	}
	if caps.Has(CapabilityDeleteEvents) {
		return true
	}
	return p.Role.IsElevated() && p.CanAccess(e.WorkspaceID)
}

// EventPermissionsFor evaluates all three event flags at once.
func EventPermissionsFor(e *calmodels.CalendarEvent, p *wsmodels.Principal, caps CapabilitySet) EventPermissions {
	return EventPermissions{
		CanView:   CanViewEvent(e, p, caps),
		CanEdit:   CanEditEvent(e, p, caps),
		CanDelete: CanDeleteEvent(e, p, caps),
	}
}

// CanViewReport applies the report visibility rule chain: authors see their
// own reports; submitted and approved reports are visible workspace-wide;
// deadline managers and admin-or-owner roles see everything.
func CanViewReport(r *repmodels.Report, p *wsmodels.Principal, caps CapabilitySet) bool {
	if r.AuthorID == p.UserID {
		return true
	}
	if r.Status == repmodels.ReportStatusSubmitted || r.Status == repmodels.ReportStatusApproved {
		return true
	}
	if caps.Has(CapabilityManageReportDeadlines) {
		return true
	}
	return p.Role.IsElevated()
}

// CanSubmitReport is true only for the author while the report is still in a
// submittable state.
func CanSubmitReport(r *repmodels.Report, p *wsmodels.Principal) bool {
	if r.AuthorID != p.UserID {
		return false
	}
	switch r.Status {
	case repmodels.ReportStatusSubmitted, repmodels.ReportStatusApproved, repmodels.ReportStatusArchived:
		return false
	default:
		return true
	}
}

// CanCreateRestricted gates write-side creation of restricted events. The
// check lives here, next to the read-side rule, so the two cannot diverge.
func CanCreateRestricted(caps CapabilitySet) bool {
	return caps.Has(CapabilityCreateRestricted)
}

// FilterEvents returns the events the principal may see, preserving input
// order, with the per-item permission flags evaluated for each survivor.
func FilterEvents(events []calmodels.CalendarEvent, p *wsmodels.Principal, caps CapabilitySet) ([]calmodels.CalendarEvent, []EventPermissions) {
	visible := make([]calmodels.CalendarEvent, 0, len(events))
	perms := make([]EventPermissions, 0, len(events))
	for i := range events {
		if !CanViewEvent(&events[i], p, caps) {
			continue
		}
		visible = append(visible, events[i])
		perms = append(perms, EventPermissionsFor(&events[i], p, caps))
	}
	return visible, perms
}
