// Package report holds the report-side read boundary plus the two derivation
// steps the engine applies to raw reports: deadline projection and adaptation
// into presentation-agnostic report items.
package report

import (
	"context"

	"workscope/internal/report/models"
	id "workscope/pkg/domain"
)

// Store is the per-workspace read contract for reports.
type Store interface {
	// UserReports returns the user's reports within one workspace.
	UserReports(ctx context.Context, ws id.WorkspaceID, user id.UserID, opts models.ListOptions) ([]models.Report, error)

	// WorkspaceReports returns a workspace's reports, optionally narrowed by
	// status.
	WorkspaceReports(ctx context.Context, ws id.WorkspaceID, opts models.ListOptions) ([]models.Report, error)
}

// TemplateStore is the per-workspace read contract for report templates.
type TemplateStore interface {
	WorkspaceTemplates(ctx context.Context, ws id.WorkspaceID, f models.TemplateFilter) ([]models.ReportTemplate, error)
}
