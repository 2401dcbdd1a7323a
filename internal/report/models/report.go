// Package models defines report domain entities: persisted reports and
// templates, and the derived ReportItem view the engine hands to callers.
package models

import (
	"time"

	id "workscope/pkg/domain"
	dErrors "workscope/pkg/domain-errors"
)

type ReportStatus string

const (
	ReportStatusDraft       ReportStatus = "draft"
	ReportStatusPending     ReportStatus = "pending"
	ReportStatusSubmitted   ReportStatus = "submitted"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusApproved    ReportStatus = "approved"
	ReportStatusRejected    ReportStatus = "rejected"
	ReportStatusArchived    ReportStatus = "archived"
)

// IsSubmittedForm reports whether the status implies the report has been
// handed in (used to decide whether SubmittedBy is populated).
func (s ReportStatus) IsSubmittedForm() bool {
	return s == ReportStatusSubmitted || s == ReportStatusUnderReview || s == ReportStatusApproved
}

// Frequency is a report template recurrence unit.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

func ParseFrequency(raw string) (Frequency, error) {
	switch Frequency(raw) {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return Frequency(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown frequency: "+raw)
	}
}

// DeadlineConfig binds a recurrence frequency and default priority to a
// template.
type DeadlineConfig struct {
	Frequency Frequency `json:"frequency"`
	Priority  string    `json:"priority"`
}

// ReportTemplate defines a recurring report kind within a workspace.
type ReportTemplate struct {
	ID          id.TemplateID   `json:"id"`
	WorkspaceID id.WorkspaceID  `json:"workspace_id"`
	Category    string          `json:"category"`
	Deadline    *DeadlineConfig `json:"deadline,omitempty"`
}

// Report is one submitted or in-flight report instance.
type Report struct {
	ID          id.ReportID    `json:"id"`
	WorkspaceID id.WorkspaceID `json:"workspace_id"`
	AuthorID    id.UserID      `json:"author_id"`
	Title       string         `json:"title"`
	Status      ReportStatus   `json:"status"`
	Priority    string         `json:"priority"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	TemplateID  *id.TemplateID `json:"template_id,omitempty"`
}

// AnchorTime is the timestamp deadline projection falls back to when the
// report has no template: submission time when recorded, creation time
// otherwise.
func (r *Report) AnchorTime() time.Time {
	if r.SubmittedAt != nil && !r.SubmittedAt.IsZero() {
		return *r.SubmittedAt
	}
	return r.CreatedAt
}

// ReportItem is the presentation-agnostic view of one report: computed due
// date, permission flags, and a normalized status. It is recomputed on every
// query and never persisted.
type ReportItem struct {
	ID          id.ReportID  `json:"id"`
	Title       string       `json:"title"`
	Location    string       `json:"location"`
	DueDate     time.Time    `json:"due_date"`
	Status      ReportStatus `json:"status"`
	Priority    string       `json:"priority"`
	SubmittedBy string       `json:"submitted_by,omitempty"`
	Type        string       `json:"type"`
	CanView     bool         `json:"can_view"`
	CanEdit     bool         `json:"can_edit"`
	CanSubmit   bool         `json:"can_submit"`
}

// ListOptions narrows and orders a per-workspace report fetch.
type ListOptions struct {
	Status         ReportStatus
	OrderBy        string
	OrderDirection string
	Limit          int
}

// TemplateFilter narrows a per-workspace template fetch.
type TemplateFilter struct {
	Status string
}
