package coverage

import (
	"testing"

	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(daysAgo int, typ domain.CareLogType) domain.CareLogEntry {
	return domain.CareLogEntry{
		Date: at(12, 0).AddDate(0, 0, -daysAgo).Format(domain.DateLayout),
		Type: typ,
	}
}

func TestTrend30DaysWindow(t *testing.T) {
	report := Trend30Days(nil, at(23, 59))

	require.Len(t, report.Days, 30)
	assert.Equal(t, "2026-09-16", report.Days[0].Date)
	assert.Equal(t, "2026-10-15", report.Days[29].Date)
	for i := 1; i < len(report.Days); i++ {
		assert.Less(t, report.Days[i-1].Date, report.Days[i].Date)
	}
	assert.Zero(t, report.Trend)
}

func TestTrend30DaysBuckets(t *testing.T) {
	entries := []domain.CareLogEntry{
		entry(0, domain.CareLogIncident),
		entry(0, domain.CareLogGoodDay),
		entry(0, domain.CareLogObservation),
		entry(3, domain.CareLogGoodDay),
		entry(29, domain.CareLogIncident),
		// outside the window: counted in the totals only
		entry(30, domain.CareLogIncident),
	}

	report := Trend30Days(entries, at(8, 0))

	assert.Equal(t, DayBucket{Date: "2026-10-15", Incidents: 1, GoodDays: 1, Total: 3}, report.Days[29])
	assert.Equal(t, 1, report.Days[26].GoodDays)
	assert.Equal(t, 1, report.Days[0].Incidents)
	assert.Equal(t, 3, report.TotalIncidents)
	assert.Equal(t, 2, report.TotalGoodDays)
	assert.Equal(t, 1, report.TotalObservations)
}

func TestTrend30DaysNoPriorIncidents(t *testing.T) {
	entries := []domain.CareLogEntry{
		entry(1, domain.CareLogIncident),
		entry(5, domain.CareLogIncident),
	}

	report := Trend30Days(entries, at(8, 0))

	assert.Equal(t, 2, report.RecentIncidents)
	assert.Equal(t, 0, report.PriorIncidents)
	assert.Zero(t, report.Trend)
}

func TestTrend30DaysRatio(t *testing.T) {
	entries := []domain.CareLogEntry{
		entry(6, domain.CareLogIncident),
		entry(7, domain.CareLogIncident),
		entry(10, domain.CareLogIncident),
		entry(13, domain.CareLogIncident),
		entry(14, domain.CareLogIncident),
	}

	report := Trend30Days(entries, at(8, 0))

	assert.Equal(t, 1, report.RecentIncidents)
	assert.Equal(t, 3, report.PriorIncidents)
	assert.InDelta(t, (1.0-3.0)/3.0*100, report.Trend, 1e-9)
}
