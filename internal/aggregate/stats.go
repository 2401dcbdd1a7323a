package aggregate

import (
	calmodels "workscope/internal/calendar/models"
)

// SumCalendarStats folds per-workspace calendar partials into one rollup.
// Pure summation in scope order; failed partitions simply contribute nothing.
//
// Each partial is windowed independently by its workspace, so an item visible
// from two workspaces is counted in both. The sum is not corrected for that;
// bounding per-query cost was chosen over cross-partition precision.
func SumCalendarStats(r *PartitionResult[calmodels.CalendarStats]) calmodels.CalendarStats {
	var total calmodels.CalendarStats
	for _, ws := range r.order {
		for _, partial := range r.Items[ws] {
			total.Add(partial)
		}
	}
	return total
}

// SumReportDeadlineStats folds per-workspace report deadline partials into one
// rollup, under the same accepted approximation as SumCalendarStats.
func SumReportDeadlineStats(r *PartitionResult[calmodels.ReportDeadlineStats]) calmodels.ReportDeadlineStats {
	var total calmodels.ReportDeadlineStats
	for _, ws := range r.order {
		for _, partial := range r.Items[ws] {
			total.Add(partial)
		}
	}
	return total
}
