// Package models defines calendar domain entities and the statistics value
// types derived from them. The aggregation engine only reads these; all
// mutation happens behind the store boundary.
package models

import (
	"time"

	id "workscope/pkg/domain"
	dErrors "workscope/pkg/domain-errors"
)

type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeDeadline EventType = "deadline"
	EventTypeTraining EventType = "training"
	EventTypeReview   EventType = "review"
	EventTypeReminder EventType = "reminder"
	EventTypeReport   EventType = "report"
	EventTypeOther    EventType = "other"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusPending   EventStatus = "pending"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityRestricted Visibility = "restricted"
)

// CalendarEvent is one entry in a workspace calendar.
//
// Invariants:
//   - Start <= End
//   - Visibility=restricted is only settable by admin-or-owner roles; the
//     access filter enforces the matching read-side rule
type CalendarEvent struct {
	ID           id.EventID     `json:"id"`
	WorkspaceID  id.WorkspaceID `json:"workspace_id"`
	Title        string         `json:"title"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	AllDay       bool           `json:"all_day"`
	Type         EventType      `json:"type"`
	Status       EventStatus    `json:"status"`
	Priority     Priority       `json:"priority"`
	Visibility   Visibility     `json:"visibility"`
	CreatedBy    id.UserID      `json:"created_by"`
	Attendees    []id.UserID    `json:"attendees,omitempty"`
	TeamID       *string        `json:"team_id,omitempty"`
	DepartmentID *string        `json:"department_id,omitempty"`
}

// HasAttendee reports whether the user is on the attendee list.
func (e *CalendarEvent) HasAttendee(userID id.UserID) bool {
	for _, a := range e.Attendees {
		if a == userID {
			return true
		}
	}
	return false
}

func (e *CalendarEvent) Validate() error {
	if e.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "event title cannot be empty")
	}
	if e.End.Before(e.Start) {
		return dErrors.New(dErrors.CodeValidation, "event end cannot precede start")
	}
	return nil
}

// EventFilter narrows a per-workspace event fetch.
type EventFilter struct {
	Types    []EventType
	Statuses []EventStatus
	TeamID   *string
}
