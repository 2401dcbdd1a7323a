//go:build integration

package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"workscope/internal/migrations"
	"workscope/internal/report"
	"workscope/internal/report/models"
	id "workscope/pkg/domain"
	"workscope/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *report.PostgresStore
	ws       id.WorkspaceID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(migrations.Apply(context.Background(), s.postgres.DB))
	s.store = report.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.postgres.DB.Exec(`TRUNCATE workspaces CASCADE`)
	s.Require().NoError(err)

	wsID := uuid.New()
	_, err = s.postgres.DB.Exec(
		`INSERT INTO workspaces (id, name, type) VALUES ($1, 'Test', 'main')`, wsID)
	s.Require().NoError(err)
	s.ws = id.WorkspaceID(wsID)
}

func (s *PostgresStoreSuite) insertReport(title string, author id.UserID, status models.ReportStatus, createdAt time.Time, templateID *id.TemplateID) id.ReportID {
	rID := uuid.New()
	var tmpl any
	if templateID != nil {
		tmpl = uuid.UUID(*templateID)
	}
	_, err := s.postgres.DB.Exec(`
		INSERT INTO reports (id, workspace_id, author_id, title, status, priority, created_at, template_id)
		VALUES ($1, $2, $3, $4, $5, 'medium', $6, $7)`,
		rID, uuid.UUID(s.ws), uuid.UUID(author), title, string(status), createdAt, tmpl,
	)
	s.Require().NoError(err)
	return id.ReportID(rID)
}

func (s *PostgresStoreSuite) insertTemplate(category string, config string) id.TemplateID {
	tID := uuid.New()
	var cfg any
	if config != "" {
		cfg = config
	}
	_, err := s.postgres.DB.Exec(`
		INSERT INTO report_templates (id, workspace_id, category, deadline_config)
		VALUES ($1, $2, $3, $4)`,
		tID, uuid.UUID(s.ws), category, cfg,
	)
	s.Require().NoError(err)
	return id.TemplateID(tID)
}

func (s *PostgresStoreSuite) TestUserReports() {
	ctx := context.Background()
	alice := id.UserID(uuid.New())
	bob := id.UserID(uuid.New())
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s.insertReport("alice draft", alice, models.ReportStatusDraft, base, nil)
	s.insertReport("alice submitted", alice, models.ReportStatusSubmitted, base.Add(time.Hour), nil)
	s.insertReport("bob draft", bob, models.ReportStatusDraft, base, nil)

	s.Run("filters by author", func() {
		got, err := s.store.UserReports(ctx, s.ws, alice, models.ListOptions{})
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("filters by status", func() {
		got, err := s.store.UserReports(ctx, s.ws, alice, models.ListOptions{Status: models.ReportStatusSubmitted})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("alice submitted", got[0].Title)
	})
}

func (s *PostgresStoreSuite) TestWorkspaceReportsOrderingAndLimit() {
	ctx := context.Background()
	author := id.UserID(uuid.New())
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s.insertReport("oldest", author, models.ReportStatusDraft, base, nil)
	s.insertReport("newest", author, models.ReportStatusDraft, base.Add(2*time.Hour), nil)
	s.insertReport("middle", author, models.ReportStatusDraft, base.Add(time.Hour), nil)

	s.Run("created_at descending", func() {
		got, err := s.store.WorkspaceReports(ctx, s.ws, models.ListOptions{OrderBy: "created_at", OrderDirection: "desc"})
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal("newest", got[0].Title)
		s.Equal("oldest", got[2].Title)
	})

	s.Run("unknown order column falls back to created_at", func() {
		got, err := s.store.WorkspaceReports(ctx, s.ws, models.ListOptions{OrderBy: "; DROP TABLE reports"})
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal("oldest", got[0].Title)
	})

	s.Run("limit truncates", func() {
		got, err := s.store.WorkspaceReports(ctx, s.ws, models.ListOptions{Limit: 2})
		s.Require().NoError(err)
		s.Len(got, 2)
	})
}

func (s *PostgresStoreSuite) TestTemplatesDecodeDeadlineConfig() {
	ctx := context.Background()
	withConfig := s.insertTemplate("operations", `{"frequency":"monthly","priority":"high"}`)
	s.insertTemplate("misc", "")

	got, err := s.store.WorkspaceTemplates(ctx, s.ws, models.TemplateFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	var ops *models.ReportTemplate
	for i := range got {
		if got[i].ID == withConfig {
			ops = &got[i]
		}
	}
	s.Require().NotNil(ops)
	s.Require().NotNil(ops.Deadline)
	s.Equal(models.FrequencyMonthly, ops.Deadline.Frequency)
	s.Equal("high", ops.Deadline.Priority)
}

func (s *PostgresStoreSuite) TestTemplateLinkedReport() {
	ctx := context.Background()
	author := id.UserID(uuid.New())
	tmplID := s.insertTemplate("safety", `{"frequency":"weekly","priority":"low"}`)
	s.insertReport("weekly safety", author, models.ReportStatusPending, time.Now(), &tmplID)

	got, err := s.store.UserReports(ctx, s.ws, author, models.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Require().NotNil(got[0].TemplateID)
	s.Equal(tmplID, *got[0].TemplateID)
}
