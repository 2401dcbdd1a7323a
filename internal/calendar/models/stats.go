package models

// CalendarStats is the per-workspace calendar rollup. Each workspace computes
// its own window independently; the aggregator sums them field-wise without a
// cross-workspace dedup correction. That approximation is deliberate: summing
// partials bounds per-query cost, at the price of potentially counting an item
// once per workspace it is visible from.
type CalendarStats struct {
	TodayEvents       int `json:"today_events"`
	WeekEvents        int `json:"week_events"`
	PendingDeadlines  int `json:"pending_deadlines"`
	CompletedThisWeek int `json:"completed_this_week"`
}

// Add accumulates another workspace's partial into this one.
func (s *CalendarStats) Add(other CalendarStats) {
	s.TodayEvents += other.TodayEvents
	s.WeekEvents += other.WeekEvents
	s.PendingDeadlines += other.PendingDeadlines
	s.CompletedThisWeek += other.CompletedThisWeek
}

// ReportDeadlineStats is the per-workspace report deadline rollup, summed the
// same way as CalendarStats.
type ReportDeadlineStats struct {
	DueToday    int `json:"due_today"`
	DueThisWeek int `json:"due_this_week"`
	Overdue     int `json:"overdue"`
	Submitted   int `json:"submitted"`
}

// Add accumulates another workspace's partial into this one.
func (s *ReportDeadlineStats) Add(other ReportDeadlineStats) {
	s.DueToday += other.DueToday
	s.DueThisWeek += other.DueThisWeek
	s.Overdue += other.Overdue
	s.Submitted += other.Submitted
}
