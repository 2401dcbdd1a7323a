package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workscope/internal/audit"
	"workscope/internal/calendar"
	calmodels "workscope/internal/calendar/models"
	"workscope/internal/directory"
	dirmodels "workscope/internal/directory/models"
	"workscope/internal/report"
	repmodels "workscope/internal/report/models"
	"workscope/internal/workspace"
	wsmodels "workscope/internal/workspace/models"
	id "workscope/pkg/domain"
	"workscope/pkg/requestcontext"
)

// serviceFixture wires the in-memory stores into a Service the way the
// server does, minus transport.
type serviceFixture struct {
	events     *calendar.InMemoryStore
	reports    *report.InMemoryStore
	users      *directory.InMemoryStore
	workspaces *workspace.InMemoryDirectory
	auditStore *audit.InMemoryStore
	svc        *Service
}

func newServiceFixture(t *testing.T, opts ...Option) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		events:     calendar.NewInMemoryStore(),
		reports:    report.NewInMemoryStore(),
		users:      directory.NewInMemoryStore(),
		workspaces: workspace.NewInMemoryDirectory(),
		auditStore: audit.NewInMemoryStore(),
	}
	opts = append(opts, WithAudit(audit.NewPublisher(f.auditStore)))
	f.svc = NewService(f.events, f.reports, f.reports, f.users, f.workspaces, opts...)
	return f
}

func (f *serviceFixture) addWorkspace(t *testing.T, name string, now time.Time) id.WorkspaceID {
	t.Helper()
	wsID := id.WorkspaceID(uuid.New())
	w, err := wsmodels.NewWorkspace(wsID, name, wsmodels.WorkspaceTypeMain, now)
	require.NoError(t, err)
	require.NoError(t, f.workspaces.Put(context.Background(), *w))
	return wsID
}

func TestServiceOverview_DeduplicatesAcrossWorkspaces(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)
	wsB := f.addWorkspace(t, "North Branch", now)

	ownerID := id.UserID(uuid.New())
	otherID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsA))
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsB))

	// The same event surfaces in both workspaces; workspace A's copy must win.
	sharedID := id.EventID(uuid.New())
	e1 := calmodels.CalendarEvent{
		ID:          sharedID,
		WorkspaceID: wsA,
		Title:       "Quarterly planning",
		Start:       now.Add(time.Hour),
		End:         now.Add(2 * time.Hour),
		Visibility:  calmodels.VisibilityPublic,
		CreatedBy:   otherID,
	}
	e1Copy := e1
	e1Copy.WorkspaceID = wsB
	e2 := calmodels.CalendarEvent{
		ID:          id.EventID(uuid.New()),
		WorkspaceID: wsB,
		Title:       "1:1 sync",
		Start:       now.Add(3 * time.Hour),
		End:         now.Add(4 * time.Hour),
		Visibility:  calmodels.VisibilityPrivate,
		CreatedBy:   otherID,
	}
	require.NoError(t, f.events.Put(ctx, e1))
	require.NoError(t, f.events.Put(ctx, e1Copy))
	require.NoError(t, f.events.Put(ctx, e2))

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      ownerID,
			Role:        wsmodels.RoleOwner,
			WorkspaceID: wsA,
		},
		IncludeAllAccessible: true,
		WindowStart:          now,
		WindowEnd:            now.Add(24 * time.Hour),
	}

	overview, err := f.svc.Overview(ctx, q)
	require.NoError(t, err)

	// Two events, not three: the duplicate collapsed, and the owner's blanket
	// access lets the private event through.
	require.Len(t, overview.Events, 2)
	assert.Equal(t, sharedID, overview.Events[0].Event.ID)
	assert.Equal(t, wsA, overview.Events[0].Event.WorkspaceID, "first-seen copy from workspace A wins")
	assert.Equal(t, e2.ID, overview.Events[1].Event.ID)
	assert.Empty(t, overview.PartialFailures)
}

func TestServiceOverview_MemberScopeIsCurrentWorkspaceOnly(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)
	wsB := f.addWorkspace(t, "North Branch", now)

	memberID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(ctx, memberID, wsA))
	require.NoError(t, f.workspaces.Grant(ctx, memberID, wsB))

	inA := calmodels.CalendarEvent{
		ID: id.EventID(uuid.New()), WorkspaceID: wsA, Title: "Standup",
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		Visibility: calmodels.VisibilityPublic, CreatedBy: memberID,
	}
	inB := calmodels.CalendarEvent{
		ID: id.EventID(uuid.New()), WorkspaceID: wsB, Title: "Branch review",
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		Visibility: calmodels.VisibilityPublic, CreatedBy: memberID,
	}
	require.NoError(t, f.events.Put(ctx, inA))
	require.NoError(t, f.events.Put(ctx, inB))

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      memberID,
			Role:        wsmodels.RoleMember,
			WorkspaceID: wsA,
		},
		IncludeAllAccessible: true,
		WindowStart:          now,
		WindowEnd:            now.Add(24 * time.Hour),
	}

	overview, err := f.svc.Overview(ctx, q)
	require.NoError(t, err)

	// includeAllAccessible is owner-only; the member stays pinned to A.
	require.Len(t, overview.Events, 1)
	assert.Equal(t, inA.ID, overview.Events[0].Event.ID)
}

func TestServiceOverview_ReportItemsAndStats(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)

	ownerID := id.UserID(uuid.New())
	authorID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsA))
	require.NoError(t, f.users.Put(ctx, dirmodels.User{ID: authorID, WorkspaceID: wsA, Name: "Dana Author"}))

	tmplID := id.TemplateID(uuid.New())
	require.NoError(t, f.reports.PutTemplate(ctx, repmodels.ReportTemplate{
		ID:          tmplID,
		WorkspaceID: wsA,
		Category:    "operations",
		Deadline:    &repmodels.DeadlineConfig{Frequency: repmodels.FrequencyMonthly, Priority: "high"},
	}))
	require.NoError(t, f.reports.PutReport(ctx, repmodels.Report{
		ID:          id.ReportID(uuid.New()),
		WorkspaceID: wsA,
		AuthorID:    authorID,
		Title:       "January operations report",
		Status:      repmodels.ReportStatusPending,
		Priority:    "high",
		CreatedAt:   now.Add(-48 * time.Hour),
		TemplateID:  &tmplID,
	}))

	f.events.SetCalendarStats(wsA, calmodels.CalendarStats{TodayEvents: 2, WeekEvents: 5})
	f.events.SetReportDeadlineStats(wsA, calmodels.ReportDeadlineStats{DueThisWeek: 1, Overdue: 1})

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      ownerID,
			Role:        wsmodels.RoleOwner,
			WorkspaceID: wsA,
		},
		WindowStart: now,
		WindowEnd:   now.Add(24 * time.Hour),
	}

	overview, err := f.svc.Overview(ctx, q)
	require.NoError(t, err)

	require.Len(t, overview.ReportItems, 1)
	item := overview.ReportItems[0]
	assert.Equal(t, "January operations report", item.Title)
	assert.Equal(t, "Headquarters", item.Location)
	assert.Equal(t, "operations", item.Type)
	assert.Equal(t, now.AddDate(0, 1, 0), item.DueDate, "monthly template projects one month from now")
	assert.True(t, item.CanView)
	assert.False(t, item.CanEdit, "the owner is not the author")

	assert.Equal(t, calmodels.CalendarStats{TodayEvents: 2, WeekEvents: 5}, overview.Stats)
	assert.Equal(t, calmodels.ReportDeadlineStats{DueThisWeek: 1, Overdue: 1}, overview.ReportStats)
}

// failingEventStore wraps a calendar store and fails every call for one
// workspace.
type failingEventStore struct {
	calendar.Store
	broken id.WorkspaceID
}

var errPartitionDown = errors.New("partition down")

func (s *failingEventStore) EventsInWindow(ctx context.Context, ws id.WorkspaceID, start, end time.Time, f calmodels.EventFilter) ([]calmodels.CalendarEvent, error) {
	if ws == s.broken {
		return nil, errPartitionDown
	}
	return s.Store.EventsInWindow(ctx, ws, start, end, f)
}

func (s *failingEventStore) CalendarStats(ctx context.Context, ws id.WorkspaceID, user id.UserID) (calmodels.CalendarStats, error) {
	if ws == s.broken {
		return calmodels.CalendarStats{}, errPartitionDown
	}
	return s.Store.CalendarStats(ctx, ws, user)
}

func TestServiceOverview_PartialFailureSurfacesWorkspace(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)
	wsB := f.addWorkspace(t, "North Branch", now)

	ownerID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsA))
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsB))

	healthy := calmodels.CalendarEvent{
		ID: id.EventID(uuid.New()), WorkspaceID: wsA, Title: "All hands",
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
		Visibility: calmodels.VisibilityPublic, CreatedBy: ownerID,
	}
	require.NoError(t, f.events.Put(ctx, healthy))
	f.events.SetCalendarStats(wsA, calmodels.CalendarStats{WeekEvents: 3})

	svc := NewService(
		&failingEventStore{Store: f.events, broken: wsB},
		f.reports, f.reports, f.users, f.workspaces,
		WithAudit(audit.NewPublisher(f.auditStore)),
	)

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      ownerID,
			Role:        wsmodels.RoleOwner,
			WorkspaceID: wsA,
		},
		IncludeAllAccessible: true,
		WindowStart:          now,
		WindowEnd:            now.Add(24 * time.Hour),
	}

	overview, err := svc.Overview(ctx, q)
	require.NoError(t, err, "a failed partition must not fail the query")

	require.Len(t, overview.Events, 1)
	assert.Equal(t, healthy.ID, overview.Events[0].Event.ID)
	assert.Equal(t, calmodels.CalendarStats{WeekEvents: 3}, overview.Stats, "failed partition contributes nothing to stats")
	assert.Equal(t, []id.WorkspaceID{wsB}, overview.PartialFailures)
}

func TestServiceOverview_CancellationAbortsWholeQuery(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)

	ownerID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(context.Background(), ownerID, wsA))

	ctx, cancel := context.WithCancel(requestcontext.WithTime(context.Background(), now))
	cancel()

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      ownerID,
			Role:        wsmodels.RoleOwner,
			WorkspaceID: wsA,
		},
		WindowStart: now,
		WindowEnd:   now.Add(24 * time.Hour),
	}

	overview, err := f.svc.Overview(ctx, q)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, overview)
}

func TestServiceOverview_EmitsQueryAudit(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	f := newServiceFixture(t)
	wsA := f.addWorkspace(t, "Headquarters", now)
	wsB := f.addWorkspace(t, "North Branch", now)

	ownerID := id.UserID(uuid.New())
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsA))
	require.NoError(t, f.workspaces.Grant(ctx, ownerID, wsB))

	q := QueryContext{
		Principal: wsmodels.Principal{
			UserID:      ownerID,
			Role:        wsmodels.RoleOwner,
			WorkspaceID: wsA,
		},
		IncludeAllAccessible: true,
		WindowStart:          now,
		WindowEnd:            now.Add(24 * time.Hour),
	}

	_, err := f.svc.Overview(ctx, q)
	require.NoError(t, err)

	trail, err := f.auditStore.ListByUser(ctx, ownerID.String())
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, audit.ActionOverviewQuery, trail[0].Action)
	assert.Equal(t, 2, trail[0].ScopeSize)
	assert.Empty(t, trail[0].FailedWorkspaces)
	assert.Equal(t, now, trail[0].Timestamp)
}
