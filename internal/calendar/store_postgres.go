package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"workscope/internal/calendar/models"
	id "workscope/pkg/domain"
)

// PostgresStore reads calendar data from PostgreSQL. Queries are scoped to a
// single workspace; fan-out across workspaces is the engine's job.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EventsInWindow(ctx context.Context, ws id.WorkspaceID, start, end time.Time, f models.EventFilter) ([]models.CalendarEvent, error) {
	query := `
		SELECT id, workspace_id, title, start_at, end_at, all_day, type, status,
		       priority, visibility, created_by, attendees, team_id, department_id
		FROM calendar_events
		WHERE workspace_id = $1
		  AND start_at < $3 AND end_at >= $2
		ORDER BY start_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(ws), start, end)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []models.CalendarEvent
	for rows.Next() {
		var (
			e         models.CalendarEvent
			eventID   uuid.UUID
			wsID      uuid.UUID
			createdBy uuid.UUID
			attendees pq.StringArray
		)
		if err := rows.Scan(
			&eventID, &wsID, &e.Title, &e.Start, &e.End, &e.AllDay, &e.Type,
			&e.Status, &e.Priority, &e.Visibility, &createdBy, &attendees,
			&e.TeamID, &e.DepartmentID,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.ID = id.EventID(eventID)
		e.WorkspaceID = id.WorkspaceID(wsID)
		e.CreatedBy = id.UserID(createdBy)
		for _, raw := range attendees {
			attendee, err := id.ParseUserID(raw)
			if err != nil {
				return nil, fmt.Errorf("scan attendee: %w", err)
			}
			e.Attendees = append(e.Attendees, attendee)
		}
		if !matchesFilter(e, f) {
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// CalendarStats computes the workspace rollup in one pass, windowed to the
// workspace's own clock. The engine sums these partials without correction.
func (s *PostgresStore) CalendarStats(ctx context.Context, ws id.WorkspaceID, user id.UserID) (models.CalendarStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE start_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE start_at >= date_trunc('week', now())
			                   AND start_at < date_trunc('week', now()) + interval '7 days'),
			COUNT(*) FILTER (WHERE type = 'deadline' AND status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'
			                   AND end_at >= date_trunc('week', now()))
		FROM calendar_events
		WHERE workspace_id = $1
		  AND (visibility = 'public' OR created_by = $2 OR $2 = ANY(attendees))
	`
	var stats models.CalendarStats
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(ws), uuid.UUID(user).String()).Scan(
		&stats.TodayEvents, &stats.WeekEvents, &stats.PendingDeadlines, &stats.CompletedThisWeek,
	)
	if err != nil {
		return models.CalendarStats{}, fmt.Errorf("calendar stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) ReportDeadlineStats(ctx context.Context, ws id.WorkspaceID) (models.ReportDeadlineStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE due_at::date = CURRENT_DATE AND status NOT IN ('submitted', 'approved')),
			COUNT(*) FILTER (WHERE due_at >= now() AND due_at < now() + interval '7 days'
			                   AND status NOT IN ('submitted', 'approved')),
			COUNT(*) FILTER (WHERE due_at < now() AND status NOT IN ('submitted', 'approved')),
			COUNT(*) FILTER (WHERE status IN ('submitted', 'under_review', 'approved'))
		FROM report_deadlines
		WHERE workspace_id = $1
	`
	var stats models.ReportDeadlineStats
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(ws)).Scan(
		&stats.DueToday, &stats.DueThisWeek, &stats.Overdue, &stats.Submitted,
	)
	if err != nil {
		return models.ReportDeadlineStats{}, fmt.Errorf("report deadline stats: %w", err)
	}
	return stats, nil
}
