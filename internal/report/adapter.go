package report

import (
	"sort"
	"time"

	"workscope/internal/access"
	dirmodels "workscope/internal/directory/models"
	"workscope/internal/report/models"
	wsmodels "workscope/internal/workspace/models"
)

// statusRank orders report items for display: actionable first, terminal
// last. Unknown statuses sink to the bottom.
var statusRank = map[models.ReportStatus]int{
	models.ReportStatusPending:   0,
	models.ReportStatusDraft:     1,
	models.ReportStatusSubmitted: 2,
	models.ReportStatusApproved:  3,
	models.ReportStatusRejected:  4,
}

const unknownStatusRank = 5

func rankOf(s models.ReportStatus) int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return unknownStatusRank
}

// BuildReportItem combines a raw report with its resolved template and author
// into one presentation-agnostic item. Returns nil when the principal may not
// view the report: permission failure suppresses the item, it is never an
// error. Template and author may both be absent; the adapter falls back
// instead of failing.
//
// Status normalization: under_review is presented as submitted. SubmittedBy is
// populated only when the status implies the report was handed in.
func BuildReportItem(
	r *models.Report,
	template *models.ReportTemplate,
	author *dirmodels.User,
	location string,
	p *wsmodels.Principal,
	caps access.CapabilitySet,
	now time.Time,
) *models.ReportItem {
	if !access.CanViewReport(r, p, caps) {
		return nil
	}

	status := r.Status
	if status == models.ReportStatusUnderReview {
		status = models.ReportStatusSubmitted
	}

	itemType := "custom"
	if template != nil && template.Category != "" {
		itemType = template.Category
	}

	submittedBy := ""
	if r.Status.IsSubmittedForm() && author != nil {
		submittedBy = author.Name
	}

	return &models.ReportItem{
		ID:          r.ID,
		Title:       r.Title,
		Location:    location,
		DueDate:     ProjectDeadline(r, template, now),
		Status:      status,
		Priority:    r.Priority,
		SubmittedBy: submittedBy,
		Type:        itemType,
		CanView:     true,
		CanEdit:     access.CanSubmitReport(r, p),
		CanSubmit:   access.CanSubmitReport(r, p),
	}
}

// SortReportItems orders items by status rank, then ascending due date. The
// sort is stable so equal items keep their merged order.
func SortReportItems(items []models.ReportItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := rankOf(items[i].Status), rankOf(items[j].Status)
		if ri != rj {
			return ri < rj
		}
		return items[i].DueDate.Before(items[j].DueDate)
	})
}
