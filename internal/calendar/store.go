// Package calendar exposes the event store boundary consumed by the
// aggregation engine. Persistence and CRUD live behind the Store interface;
// the engine only issues per-workspace reads.
package calendar

import (
	"context"
	"time"

	"workscope/internal/calendar/models"
	id "workscope/pkg/domain"
)

// Store is the per-workspace read contract for calendar data. Implementations
// must scope every call to the given workspace; the engine handles fan-out,
// merging, and access filtering above this boundary.
type Store interface {
	// EventsInWindow returns the workspace's events overlapping [start, end).
	EventsInWindow(ctx context.Context, ws id.WorkspaceID, start, end time.Time, f models.EventFilter) ([]models.CalendarEvent, error)

	// CalendarStats returns the workspace's precomputed calendar rollup for
	// the user. Each workspace computes its window independently.
	CalendarStats(ctx context.Context, ws id.WorkspaceID, user id.UserID) (models.CalendarStats, error)

	// ReportDeadlineStats returns the workspace's report deadline rollup.
	ReportDeadlineStats(ctx context.Context, ws id.WorkspaceID) (models.ReportDeadlineStats, error)
}
