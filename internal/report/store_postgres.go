package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"workscope/internal/report/models"
	id "workscope/pkg/domain"
)

// PostgresStore reads reports and templates from PostgreSQL, scoped per
// workspace.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// allowed order columns; anything else falls back to created_at so caller
// input never reaches the query text.
var orderColumns = map[string]string{
	"created_at":   "created_at",
	"submitted_at": "submitted_at",
	"title":        "title",
	"priority":     "priority",
}

func orderClause(opts models.ListOptions) string {
	col, ok := orderColumns[opts.OrderBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if opts.OrderDirection == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

func (s *PostgresStore) UserReports(ctx context.Context, ws id.WorkspaceID, user id.UserID, opts models.ListOptions) ([]models.Report, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, author_id, title, status, priority,
		       submitted_at, created_at, template_id
		FROM reports
		WHERE workspace_id = $1 AND author_id = $2
		  AND ($3 = '' OR status = $3)
		%s
		LIMIT CASE WHEN $4 > 0 THEN $4 ELSE NULL END
	`, orderClause(opts))
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(ws), uuid.UUID(user), string(opts.Status), opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("query user reports: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func (s *PostgresStore) WorkspaceReports(ctx context.Context, ws id.WorkspaceID, opts models.ListOptions) ([]models.Report, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, author_id, title, status, priority,
		       submitted_at, created_at, template_id
		FROM reports
		WHERE workspace_id = $1
		  AND ($2 = '' OR status = $2)
		%s
		LIMIT CASE WHEN $3 > 0 THEN $3 ELSE NULL END
	`, orderClause(opts))
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(ws), string(opts.Status), opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("query workspace reports: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]models.Report, error) {
	var out []models.Report
	for rows.Next() {
		var (
			r          models.Report
			reportID   uuid.UUID
			wsID       uuid.UUID
			authorID   uuid.UUID
			templateID uuid.NullUUID
		)
		if err := rows.Scan(
			&reportID, &wsID, &authorID, &r.Title, &r.Status, &r.Priority,
			&r.SubmittedAt, &r.CreatedAt, &templateID,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.ID = id.ReportID(reportID)
		r.WorkspaceID = id.WorkspaceID(wsID)
		r.AuthorID = id.UserID(authorID)
		if templateID.Valid {
			tid := id.TemplateID(templateID.UUID)
			r.TemplateID = &tid
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) WorkspaceTemplates(ctx context.Context, ws id.WorkspaceID, f models.TemplateFilter) ([]models.ReportTemplate, error) {
	query := `
		SELECT id, workspace_id, category, deadline_config
		FROM report_templates
		WHERE workspace_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY category, id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(ws), f.Status)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var out []models.ReportTemplate
	for rows.Next() {
		var (
			t          models.ReportTemplate
			templateID uuid.UUID
			wsID       uuid.UUID
			rawConfig  []byte
		)
		if err := rows.Scan(&templateID, &wsID, &t.Category, &rawConfig); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.ID = id.TemplateID(templateID)
		t.WorkspaceID = id.WorkspaceID(wsID)
		if len(rawConfig) > 0 {
			var cfg models.DeadlineConfig
			if err := json.Unmarshal(rawConfig, &cfg); err != nil {
				return nil, fmt.Errorf("decode deadline config: %w", err)
			}
			t.Deadline = &cfg
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}
