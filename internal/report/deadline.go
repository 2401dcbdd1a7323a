package report

import (
	"time"

	"workscope/internal/report/models"
)

// fallbackDeadline is applied when a report has no template frequency to
// project from.
const fallbackDeadline = 30 * 24 * time.Hour

// ProjectDeadline derives a report's due date. Deterministic, no I/O.
//
// When the template defines a recurrence frequency, the due date is "now"
// advanced by one frequency unit: this models the next occurrence of the
// recurring deadline, anchored to the query clock rather than the report's
// own submission time. Without a template (or frequency), the due date is the
// report's submission time (creation time if never submitted) plus 30 days.
//
// A missing template is a fallback case, never an error.
func ProjectDeadline(r *models.Report, t *models.ReportTemplate, now time.Time) time.Time {
	if t != nil && t.Deadline != nil {
		switch t.Deadline.Frequency {
		case models.FrequencyWeekly:
			return now.AddDate(0, 0, 7)
		case models.FrequencyMonthly:
			return now.AddDate(0, 1, 0)
		case models.FrequencyQuarterly:
			return now.AddDate(0, 3, 0)
		case models.FrequencyYearly:
			return now.AddDate(1, 0, 0)
		}
	}
	return r.AnchorTime().Add(fallbackDeadline)
}
