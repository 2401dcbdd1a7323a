package aggregate

import (
	"context"
	"log/slog"
	"time"

	"workscope/internal/access"
	"workscope/internal/aggregate/metrics"
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
	dErrors "workscope/pkg/domain-errors"
	"workscope/pkg/requestcontext"
)

// QueryContext is the explicit per-query input: who is asking, how wide, and
// over which window. No ambient state; everything a query needs rides here or
// in the context.
type QueryContext struct {
	Principal            wsmodels.Principal
	IncludeAllAccessible bool
	WindowStart          time.Time
	WindowEnd            time.Time
}

// EventView pairs a visible event with the principal's per-item permissions.
type EventView struct {
	Event       calmodels.CalendarEvent `json:"event"`
	Permissions access.EventPermissions `json:"permissions"`
}

// Overview is the aggregated, access-filtered result of one query.
// PartialFailures lists workspaces whose fetches failed and were skipped;
// callers render what aggregated and surface the rest as a notice.
type Overview struct {
	Events          []EventView                   `json:"events"`
	Stats           calmodels.CalendarStats       `json:"stats"`
	ReportItems     []repmodels.ReportItem        `json:"report_items"`
	ReportStats     calmodels.ReportDeadlineStats `json:"report_stats"`
	PartialFailures []id.WorkspaceID              `json:"partial_failures,omitempty"`
}

// Service runs the aggregation pipeline. Stateless between calls; safe for
// concurrent use.
type Service struct {
	events     calendar.Store
	reports    report.Store
	templates  report.TemplateStore
	users      directory.Store
	workspaces workspace.Directory

	logger      *slog.Logger
	metrics     *metrics.Metrics
	audit       *audit.Publisher
	concurrency int
	timeout     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches engine metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit attaches a query audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// WithFetchConcurrency overrides the per-resource fan-out ceiling.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithPartitionFetchTimeout overrides the per-workspace fetch timeout.
func WithPartitionFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewService(
	events calendar.Store,
	reports report.Store,
	templates report.TemplateStore,
	users directory.Store,
	workspaces workspace.Directory,
	opts ...Option,
) *Service {
	s := &Service{
		events:      events,
		reports:     reports,
		templates:   templates,
		users:       users,
		workspaces:  workspaces,
		concurrency: defaultFetchConcurrency,
		timeout:     defaultPartitionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overview runs the full pipeline: scope resolution, partitioned fetches,
// merge, access filter, stats summation, report item derivation. Partition
// failures are isolated and reported; only caller cancellation aborts.
func (s *Service) Overview(ctx context.Context, q QueryContext) (*Overview, error) {
	start := time.Now()
	if s.metrics != nil {
		defer s.metrics.ObserveOverview(start)
	}

	principal := q.Principal
	if err := principal.Validate(); err != nil {
		return nil, err
	}
	caps := access.ResolveCapabilities(principal.Role)
	now := requestcontext.Now(ctx)

	accessible, err := s.workspaces.AccessibleWorkspaces(ctx, &principal)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to resolve accessible workspaces")
	}
	names := make(map[id.WorkspaceID]string, len(accessible))
	if len(principal.Accessible) == 0 {
		for _, w := range accessible {
			principal.Accessible = append(principal.Accessible, w.EffectiveSource())
		}
	}
	for _, w := range accessible {
		names[w.ID] = w.Name
		names[w.EffectiveSource()] = w.Name
	}

	scope := ResolveScope(&principal, q.IncludeAllAccessible)
	if len(scope) == 0 {
		return &Overview{Events: []EventView{}, ReportItems: []repmodels.ReportItem{}}, nil
	}

	events, eventFailures, err := s.gatherEvents(ctx, scope, &principal, caps, q)
	if err != nil {
		return nil, err
	}
	items, reportFailures, err := s.gatherReportItems(ctx, scope, &principal, caps, names, now)
	if err != nil {
		return nil, err
	}
	stats, reportStats, statsFailures, err := s.gatherStats(ctx, scope, &principal)
	if err != nil {
		return nil, err
	}

	failed := mergeFailures(scope, eventFailures, reportFailures, statsFailures)
	if len(failed) > 0 && s.logger != nil {
		s.logger.WarnContext(ctx, "overview aggregated with partial failures",
			"user_id", principal.UserID.String(),
			"scope_size", len(scope),
			"failed_workspaces", len(failed),
		)
	}
	s.emitQueryAudit(ctx, &principal, scope, failed, now)

	return &Overview{
		Events:          events,
		Stats:           stats,
		ReportItems:     items,
		ReportStats:     reportStats,
		PartialFailures: failed,
	}, nil
}

func (s *Service) fetchOptions(resource string) []FetchOption {
	opts := []FetchOption{
		WithConcurrency(s.concurrency),
		WithPartitionTimeout(s.timeout),
	}
	if s.metrics != nil {
		opts = append(opts, WithFetchObserver(func(d time.Duration) {
			s.metrics.ObservePartitionFetch(resource, d)
		}))
	}
	return opts
}

func (s *Service) gatherEvents(
	ctx context.Context,
	scope []id.WorkspaceID,
	p *wsmodels.Principal,
	caps access.CapabilitySet,
	q QueryContext,
) ([]EventView, []id.WorkspaceID, error) {
	result, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]calmodels.CalendarEvent, error) {
		return s.events.EventsInWindow(fctx, ws, q.WindowStart, q.WindowEnd, calmodels.EventFilter{})
	}, s.fetchOptions("events")...)
	if err != nil {
		return nil, nil, err
	}
	s.recordFailures(ctx, "events", result.Failures)

	merged, dropped := MergePartitions(result, func(e calmodels.CalendarEvent) string { return e.ID.String() })
	if s.metrics != nil {
		s.metrics.AddDuplicatesDropped("events", dropped)
	}

	visible, perms := access.FilterEvents(merged, p, caps)
	views := make([]EventView, len(visible))
	for i := range visible {
		views[i] = EventView{Event: visible[i], Permissions: perms[i]}
	}
	sortEventViews(views)
	return views, result.FailedWorkspaces(scope), nil
}

func (s *Service) gatherReportItems(
	ctx context.Context,
	scope []id.WorkspaceID,
	p *wsmodels.Principal,
	caps access.CapabilitySet,
	names map[id.WorkspaceID]string,
	now time.Time,
) ([]repmodels.ReportItem, []id.WorkspaceID, error) {
	// Elevated principals and deadline managers sweep whole workspaces;
	// everyone else only fetches their own reports. The access filter still
	// applies per item either way.
	wide := p.Role.IsElevated() || caps.Has(access.CapabilityManageReportDeadlines)

	reports, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]repmodels.Report, error) {
		if wide {
			return s.reports.WorkspaceReports(fctx, ws, repmodels.ListOptions{OrderBy: "created_at", OrderDirection: "desc"})
		}
		return s.reports.UserReports(fctx, ws, p.UserID, repmodels.ListOptions{OrderBy: "created_at", OrderDirection: "desc"})
	}, s.fetchOptions("reports")...)
	if err != nil {
		return nil, nil, err
	}
	s.recordFailures(ctx, "reports", reports.Failures)

	templates, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]repmodels.ReportTemplate, error) {
		return s.templates.WorkspaceTemplates(fctx, ws, repmodels.TemplateFilter{})
	}, s.fetchOptions("templates")...)
	if err != nil {
		return nil, nil, err
	}
	s.recordFailures(ctx, "templates", templates.Failures)

	users, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]dirmodels.User, error) {
		return s.users.UsersByWorkspace(fctx, ws)
	}, s.fetchOptions("users")...)
	if err != nil {
		return nil, nil, err
	}
	s.recordFailures(ctx, "users", users.Failures)

	mergedReports, dropped := MergePartitions(reports, func(r repmodels.Report) string { return r.ID.String() })
	if s.metrics != nil {
		s.metrics.AddDuplicatesDropped("reports", dropped)
	}
	mergedTemplates, _ := MergePartitions(templates, func(t repmodels.ReportTemplate) string { return t.ID.String() })
	mergedUsers, _ := MergePartitions(users, func(u dirmodels.User) string { return u.ID.String() })

	templatesByID := make(map[id.TemplateID]*repmodels.ReportTemplate, len(mergedTemplates))
	for i := range mergedTemplates {
		templatesByID[mergedTemplates[i].ID] = &mergedTemplates[i]
	}
	usersByID := make(map[id.UserID]*dirmodels.User, len(mergedUsers))
	for i := range mergedUsers {
		usersByID[mergedUsers[i].ID] = &mergedUsers[i]
	}

	items := make([]repmodels.ReportItem, 0, len(mergedReports))
	for i := range mergedReports {
		r := &mergedReports[i]

		var template *repmodels.ReportTemplate
		if r.TemplateID != nil {
			template = templatesByID[*r.TemplateID]
		}
		item := report.BuildReportItem(r, template, usersByID[r.AuthorID], names[r.WorkspaceID], p, caps, now)
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	report.SortReportItems(items)

	// Report-side failures are the union across the three co-fetched kinds.
	failures := make(map[id.WorkspaceID]error, len(reports.Failures))
	for ws, err := range reports.Failures {
		failures[ws] = err
	}
	for ws, err := range templates.Failures {
		failures[ws] = err
	}
	for ws, err := range users.Failures {
		failures[ws] = err
	}
	ordered := make([]id.WorkspaceID, 0, len(failures))
	for _, ws := range scope {
		if _, ok := failures[ws]; ok {
			ordered = append(ordered, ws)
		}
	}
	return items, ordered, nil
}

func (s *Service) gatherStats(
	ctx context.Context,
	scope []id.WorkspaceID,
	p *wsmodels.Principal,
) (calmodels.CalendarStats, calmodels.ReportDeadlineStats, []id.WorkspaceID, error) {
	calStats, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]calmodels.CalendarStats, error) {
		partial, err := s.events.CalendarStats(fctx, ws, p.UserID)
		if err != nil {
			return nil, err
		}
		return []calmodels.CalendarStats{partial}, nil
	}, s.fetchOptions("calendar_stats")...)
	if err != nil {
		return calmodels.CalendarStats{}, calmodels.ReportDeadlineStats{}, nil, err
	}
	s.recordFailures(ctx, "calendar_stats", calStats.Failures)

	deadlineStats, err := FetchPartitions(ctx, scope, func(fctx context.Context, ws id.WorkspaceID) ([]calmodels.ReportDeadlineStats, error) {
		partial, err := s.events.ReportDeadlineStats(fctx, ws)
		if err != nil {
			return nil, err
		}
		return []calmodels.ReportDeadlineStats{partial}, nil
	}, s.fetchOptions("report_deadline_stats")...)
	if err != nil {
		return calmodels.CalendarStats{}, calmodels.ReportDeadlineStats{}, nil, err
	}
	s.recordFailures(ctx, "report_deadline_stats", deadlineStats.Failures)

	failures := make(map[id.WorkspaceID]error, len(calStats.Failures))
	for ws, ferr := range calStats.Failures {
		failures[ws] = ferr
	}
	for ws, ferr := range deadlineStats.Failures {
		failures[ws] = ferr
	}
	ordered := make([]id.WorkspaceID, 0, len(failures))
	for _, ws := range scope {
		if _, ok := failures[ws]; ok {
			ordered = append(ordered, ws)
		}
	}
	return SumCalendarStats(calStats), SumReportDeadlineStats(deadlineStats), ordered, nil
}

func (s *Service) recordFailures(ctx context.Context, resource string, failures map[id.WorkspaceID]error) {
	for ws, err := range failures {
		if s.metrics != nil {
			s.metrics.IncrementPartitionFailure(resource)
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "partition fetch failed",
				"resource", resource,
				"workspace_id", ws.String(),
				"error", err,
			)
		}
	}
}

func (s *Service) emitQueryAudit(ctx context.Context, p *wsmodels.Principal, scope, failed []id.WorkspaceID, now time.Time) {
	if s.audit == nil {
		return
	}
	failedIDs := make([]string, len(failed))
	for i, ws := range failed {
		failedIDs[i] = ws.String()
	}
	event := audit.Event{
		Timestamp:        now,
		UserID:           p.UserID.String(),
		Action:           audit.ActionOverviewQuery,
		WorkspaceID:      p.WorkspaceID.String(),
		ScopeSize:        len(scope),
		FailedWorkspaces: failedIDs,
	}
	if err := s.audit.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit query audit event", "error", err)
	}
}

// mergeFailures unions per-resource failure lists into scope order without
// duplicates.
func mergeFailures(scope []id.WorkspaceID, lists ...[]id.WorkspaceID) []id.WorkspaceID {
	failed := make(map[id.WorkspaceID]struct{})
	for _, list := range lists {
		for _, ws := range list {
			failed[ws] = struct{}{}
		}
	}
	if len(failed) == 0 {
		return nil
	}
	out := make([]id.WorkspaceID, 0, len(failed))
	for _, ws := range scope {
		if _, ok := failed[ws]; ok {
			out = append(out, ws)
		}
	}
	return out
}
