package report

import (
	"context"
	"sort"
	"sync"

	"workscope/internal/report/models"
	id "workscope/pkg/domain"
)

// InMemoryStore keeps reports and templates in process, partitioned by
// workspace. Used in tests and development runs.
type InMemoryStore struct {
	mu        sync.RWMutex
	reports   map[id.WorkspaceID][]models.Report
	templates map[id.WorkspaceID][]models.ReportTemplate
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		reports:   make(map[id.WorkspaceID][]models.Report),
		templates: make(map[id.WorkspaceID][]models.ReportTemplate),
	}
}

// PutReport inserts or replaces a report in its workspace partition.
func (s *InMemoryStore) PutReport(_ context.Context, r models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := s.reports[r.WorkspaceID]
	for i := range reports {
		if reports[i].ID == r.ID {
			reports[i] = r
			return nil
		}
	}
	s.reports[r.WorkspaceID] = append(reports, r)
	return nil
}

// PutTemplate inserts or replaces a template in its workspace partition.
func (s *InMemoryStore) PutTemplate(_ context.Context, t models.ReportTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	templates := s.templates[t.WorkspaceID]
	for i := range templates {
		if templates[i].ID == t.ID {
			templates[i] = t
			return nil
		}
	}
	s.templates[t.WorkspaceID] = append(templates, t)
	return nil
}

func (s *InMemoryStore) UserReports(_ context.Context, ws id.WorkspaceID, user id.UserID, opts models.ListOptions) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, 0)
	for _, r := range s.reports[ws] {
		if r.AuthorID != user {
			continue
		}
		if opts.Status != "" && r.Status != opts.Status {
			continue
		}
		out = append(out, r)
	}
	applyOrder(out, opts)
	return applyLimit(out, opts), nil
}

func (s *InMemoryStore) WorkspaceReports(_ context.Context, ws id.WorkspaceID, opts models.ListOptions) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, 0)
	for _, r := range s.reports[ws] {
		if opts.Status != "" && r.Status != opts.Status {
			continue
		}
		out = append(out, r)
	}
	applyOrder(out, opts)
	return applyLimit(out, opts), nil
}

func (s *InMemoryStore) WorkspaceTemplates(_ context.Context, ws id.WorkspaceID, f models.TemplateFilter) ([]models.ReportTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ReportTemplate{}, s.templates[ws]...), nil
}

func applyOrder(reports []models.Report, opts models.ListOptions) {
	if opts.OrderBy == "" {
		return
	}
	desc := opts.OrderDirection == "desc"
	sort.SliceStable(reports, func(i, j int) bool {
		var less bool
		switch opts.OrderBy {
		case "created_at":
			less = reports[i].CreatedAt.Before(reports[j].CreatedAt)
		case "title":
			less = reports[i].Title < reports[j].Title
		default:
			less = reports[i].CreatedAt.Before(reports[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func applyLimit(reports []models.Report, opts models.ListOptions) []models.Report {
	if opts.Limit > 0 && len(reports) > opts.Limit {
		return reports[:opts.Limit]
	}
	return reports
}
