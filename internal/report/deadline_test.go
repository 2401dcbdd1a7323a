package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"workscope/internal/report/models"
)

func TestProjectDeadline_TemplateFrequencies(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	r := &models.Report{CreatedAt: now.Add(-90 * 24 * time.Hour)}

	template := func(f models.Frequency) *models.ReportTemplate {
		return &models.ReportTemplate{Deadline: &models.DeadlineConfig{Frequency: f}}
	}

	tests := []struct {
		name      string
		frequency models.Frequency
		want      time.Time
	}{
		{"weekly", models.FrequencyWeekly, time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)},
		{"monthly", models.FrequencyMonthly, time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)},
		{"quarterly", models.FrequencyQuarterly, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)},
		{"yearly", models.FrequencyYearly, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectDeadline(r, template(tt.frequency), now))
		})
	}
}

func TestProjectDeadline_AnchorsToQueryClockNotReportAge(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	tmpl := &models.ReportTemplate{Deadline: &models.DeadlineConfig{Frequency: models.FrequencyMonthly}}

	old := &models.Report{CreatedAt: now.AddDate(-1, 0, 0)}
	fresh := &models.Report{CreatedAt: now.Add(-time.Hour)}

	// Recurring deadlines project from the clock, so report age is irrelevant.
	assert.Equal(t, ProjectDeadline(old, tmpl, now), ProjectDeadline(fresh, tmpl, now))
}

func TestProjectDeadline_FallbackWithoutTemplate(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no template uses creation time plus thirty days", func(t *testing.T) {
		r := &models.Report{CreatedAt: created}
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), ProjectDeadline(r, nil, now))
	})

	t.Run("submission time wins over creation time", func(t *testing.T) {
		submitted := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		r := &models.Report{CreatedAt: created, SubmittedAt: &submitted}
		assert.Equal(t, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), ProjectDeadline(r, nil, now))
	})

	t.Run("template without deadline config falls back too", func(t *testing.T) {
		r := &models.Report{CreatedAt: created}
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), ProjectDeadline(r, &models.ReportTemplate{}, now))
	})
}
