package calendar

import (
	"context"
	"sync"
	"time"

	"workscope/internal/calendar/models"
	id "workscope/pkg/domain"
)

// InMemoryStore keeps events and per-workspace rollups in process. Used in
// tests and for single-node development runs.
type InMemoryStore struct {
	mu            sync.RWMutex
	events        map[id.WorkspaceID][]models.CalendarEvent
	calendarStats map[id.WorkspaceID]models.CalendarStats
	deadlineStats map[id.WorkspaceID]models.ReportDeadlineStats
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events:        make(map[id.WorkspaceID][]models.CalendarEvent),
		calendarStats: make(map[id.WorkspaceID]models.CalendarStats),
		deadlineStats: make(map[id.WorkspaceID]models.ReportDeadlineStats),
	}
}

// Put inserts or replaces an event in its workspace partition.
func (s *InMemoryStore) Put(_ context.Context, e models.CalendarEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events[e.WorkspaceID]
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = e
			return nil
		}
	}
	s.events[e.WorkspaceID] = append(events, e)
	return nil
}

// SetCalendarStats seeds the workspace's precomputed calendar rollup.
func (s *InMemoryStore) SetCalendarStats(ws id.WorkspaceID, stats models.CalendarStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendarStats[ws] = stats
}

// SetReportDeadlineStats seeds the workspace's report deadline rollup.
func (s *InMemoryStore) SetReportDeadlineStats(ws id.WorkspaceID, stats models.ReportDeadlineStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlineStats[ws] = stats
}

func (s *InMemoryStore) EventsInWindow(_ context.Context, ws id.WorkspaceID, start, end time.Time, f models.EventFilter) ([]models.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CalendarEvent, 0)
	for _, e := range s.events[ws] {
		if !overlaps(e.Start, e.End, start, end) {
			continue
		}
		if !matchesFilter(e, f) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *InMemoryStore) CalendarStats(_ context.Context, ws id.WorkspaceID, _ id.UserID) (models.CalendarStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calendarStats[ws], nil
}

func (s *InMemoryStore) ReportDeadlineStats(_ context.Context, ws id.WorkspaceID) (models.ReportDeadlineStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deadlineStats[ws], nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if bStart.IsZero() && bEnd.IsZero() {
		return true
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd.Add(time.Nanosecond))
}

func matchesFilter(e models.CalendarEvent, f models.EventFilter) bool {
	if len(f.Types) > 0 && !containsType(f.Types, e.Type) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, e.Status) {
		return false
	}
	if f.TeamID != nil && (e.TeamID == nil || *e.TeamID != *f.TeamID) {
		return false
	}
	return true
}

func containsType(ts []models.EventType, t models.EventType) bool {
	for _, c := range ts {
		if c == t {
			return true
		}
	}
	return false
}

func containsStatus(ss []models.EventStatus, s models.EventStatus) bool {
	for _, c := range ss {
		if c == s {
			return true
		}
	}
	return false
}
