package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"workscope/internal/report/models"
	id "workscope/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	ws    id.WorkspaceID
	base  time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.ws = id.WorkspaceID(uuid.New())
	s.base = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) newReport(title string, author id.UserID, status models.ReportStatus, createdAt time.Time) models.Report {
	return models.Report{
		ID:          id.ReportID(uuid.New()),
		WorkspaceID: s.ws,
		AuthorID:    author,
		Title:       title,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func (s *InMemoryStoreSuite) TestUserReports() {
	alice := id.UserID(uuid.New())
	bob := id.UserID(uuid.New())

	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("alice draft", alice, models.ReportStatusDraft, s.base)))
	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("alice submitted", alice, models.ReportStatusSubmitted, s.base.Add(time.Hour))))
	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("bob draft", bob, models.ReportStatusDraft, s.base)))

	s.Run("filters by author", func() {
		got, err := s.store.UserReports(s.ctx, s.ws, alice, models.ListOptions{})
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("filters by status", func() {
		got, err := s.store.UserReports(s.ctx, s.ws, alice, models.ListOptions{Status: models.ReportStatusDraft})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("alice draft", got[0].Title)
	})

	s.Run("unknown author gets nothing", func() {
		got, err := s.store.UserReports(s.ctx, s.ws, id.UserID(uuid.New()), models.ListOptions{})
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *InMemoryStoreSuite) TestWorkspaceReportsOrderingAndLimit() {
	author := id.UserID(uuid.New())
	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("oldest", author, models.ReportStatusDraft, s.base)))
	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("middle", author, models.ReportStatusDraft, s.base.Add(time.Hour))))
	s.Require().NoError(s.store.PutReport(s.ctx, s.newReport("newest", author, models.ReportStatusDraft, s.base.Add(2*time.Hour))))

	s.Run("created_at descending", func() {
		got, err := s.store.WorkspaceReports(s.ctx, s.ws, models.ListOptions{OrderBy: "created_at", OrderDirection: "desc"})
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal("newest", got[0].Title)
		s.Equal("oldest", got[2].Title)
	})

	s.Run("title ascending", func() {
		got, err := s.store.WorkspaceReports(s.ctx, s.ws, models.ListOptions{OrderBy: "title"})
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal("middle", got[0].Title)
	})

	s.Run("limit truncates", func() {
		got, err := s.store.WorkspaceReports(s.ctx, s.ws, models.ListOptions{OrderBy: "created_at", Limit: 2})
		s.Require().NoError(err)
		s.Len(got, 2)
	})
}

func (s *InMemoryStoreSuite) TestPutReportReplacesByID() {
	r := s.newReport("draft", id.UserID(uuid.New()), models.ReportStatusDraft, s.base)
	s.Require().NoError(s.store.PutReport(s.ctx, r))

	r.Status = models.ReportStatusSubmitted
	s.Require().NoError(s.store.PutReport(s.ctx, r))

	got, err := s.store.WorkspaceReports(s.ctx, s.ws, models.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(models.ReportStatusSubmitted, got[0].Status)
}

func (s *InMemoryStoreSuite) TestTemplates() {
	tmpl := models.ReportTemplate{
		ID:          id.TemplateID(uuid.New()),
		WorkspaceID: s.ws,
		Category:    "operations",
		Deadline:    &models.DeadlineConfig{Frequency: models.FrequencyWeekly},
	}
	s.Require().NoError(s.store.PutTemplate(s.ctx, tmpl))

	got, err := s.store.WorkspaceTemplates(s.ctx, s.ws, models.TemplateFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("operations", got[0].Category)

	other, err := s.store.WorkspaceTemplates(s.ctx, id.WorkspaceID(uuid.New()), models.TemplateFilter{})
	s.Require().NoError(err)
	s.Empty(other)
}
