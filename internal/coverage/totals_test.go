package coverage

import (
	"testing"

	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalHoursForCountsOnlyCompletedShifts(t *testing.T) {
	shifts := []domain.Shift{
		{ID: 1, CaregiverID: 1, Date: "2026-10-01", StartTime: "07:00", EndTime: "12:00", CheckoutTime: "12:00"},
		{ID: 2, CaregiverID: 1, Date: "2026-10-02", StartTime: "13:00", EndTime: "18:00", CheckinTime: "13:00", CheckoutTime: "16:00"},
		{ID: 3, CaregiverID: 1, Date: "2026-10-03", StartTime: "08:00", EndTime: "12:00"},
		{ID: 4, CaregiverID: 2, Date: "2026-10-03", StartTime: "08:00", EndTime: "12:00", CheckoutTime: "12:00"},
	}

	totals, err := TotalHoursFor(1, shifts)
	require.NoError(t, err)

	assert.Equal(t, int64(1), totals.CaregiverID)
	assert.Equal(t, 3, totals.Scheduled)
	assert.Equal(t, 2, totals.Completed)
	assert.InDelta(t, 8.0, totals.Hours, 1e-9)
}

func TestTotalHoursForUsesActualTimesAcrossMidnight(t *testing.T) {
	shifts := []domain.Shift{
		{ID: 1, CaregiverID: 7, StartTime: "18:00", EndTime: "00:00", CheckinTime: "22:00", CheckoutTime: "06:00"},
		// check-out without check-in falls back to the scheduled start
		{ID: 2, CaregiverID: 7, StartTime: "07:00", EndTime: "12:00", CheckoutTime: "13:30"},
	}

	totals, err := TotalHoursFor(7, shifts)
	require.NoError(t, err)
	assert.InDelta(t, 8.0+6.5, totals.Hours, 1e-9)
}

func TestTotalHoursForMalformedTime(t *testing.T) {
	shifts := []domain.Shift{
		{ID: 9, CaregiverID: 1, StartTime: "07:00", EndTime: "12:00", CheckoutTime: "meio-dia"},
	}

	_, err := TotalHoursFor(1, shifts)
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestTotalHoursForUnknownCaregiver(t *testing.T) {
	totals, err := TotalHoursFor(42, []domain.Shift{{CaregiverID: 1, CheckoutTime: "12:00", StartTime: "07:00", EndTime: "12:00"}})
	require.NoError(t, err)
	assert.Equal(t, CaregiverTotals{CaregiverID: 42}, totals)
}

func TestRankCaregivers(t *testing.T) {
	caregivers := []domain.Caregiver{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bia"}, {ID: 3, Name: "Carla"}, {ID: 4, Name: "Duda"}}
	shifts := []domain.Shift{
		{CaregiverID: 2, StartTime: "07:00", EndTime: "12:00", CheckoutTime: "12:00"},
		{CaregiverID: 2, StartTime: "13:00", EndTime: "18:00", CheckoutTime: "18:00"},
		{CaregiverID: 3, StartTime: "07:00", EndTime: "12:00", CheckoutTime: "12:00"},
		{CaregiverID: 1, StartTime: "07:00", EndTime: "12:00"},
	}

	ranking, err := RankCaregivers(caregivers, shifts)
	require.NoError(t, err)
	require.Len(t, ranking, 4)

	names := []string{}
	for _, r := range ranking {
		names = append(names, r.Caregiver.Name)
	}
	// ties keep the original order
	assert.Equal(t, []string{"Bia", "Carla", "Ana", "Duda"}, names)

	assert.InDelta(t, 100.0, ranking[0].Percent, 1e-9)
	assert.InDelta(t, 50.0, ranking[1].Percent, 1e-9)
	assert.Zero(t, ranking[2].Percent)

	full := 0
	for i, r := range ranking {
		assert.LessOrEqual(t, r.Percent, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, ranking[i-1].Hours, r.Hours)
		}
		if r.Percent == 100 {
			full++
		}
	}
	assert.Equal(t, 1, full)
}

func TestRankCaregiversAllZero(t *testing.T) {
	ranking, err := RankCaregivers([]domain.Caregiver{{ID: 1}, {ID: 2}}, nil)
	require.NoError(t, err)
	for _, r := range ranking {
		assert.Zero(t, r.Percent)
	}
}

func TestRankCaregiversBelowOneHour(t *testing.T) {
	shifts := []domain.Shift{{CaregiverID: 1, StartTime: "07:00", EndTime: "07:30", CheckoutTime: "07:30"}}

	ranking, err := RankCaregivers([]domain.Caregiver{{ID: 1}}, shifts)
	require.NoError(t, err)
	// the denominator never drops below one hour
	assert.InDelta(t, 50.0, ranking[0].Percent, 1e-9)
}

func TestSummarize(t *testing.T) {
	caregivers := []domain.Caregiver{{ID: 1}, {ID: 2}}
	shifts := []domain.Shift{
		{CaregiverID: 1, StartTime: "07:00", EndTime: "12:00", CheckoutTime: "12:00"},
		{CaregiverID: 2, StartTime: "22:00", EndTime: "06:00", CheckoutTime: "06:00"},
		{CaregiverID: 2, StartTime: "13:00", EndTime: "18:00"},
	}
	entries := []domain.CareLogEntry{
		{Type: domain.CareLogIncident},
		{Type: domain.CareLogGoodDay},
		{Type: domain.CareLogGoodDay},
		{Type: domain.CareLogObservation},
	}

	summary, err := Summarize(caregivers, shifts, entries)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Caregivers)
	assert.Equal(t, 3, summary.ScheduledShifts)
	assert.Equal(t, 2, summary.CompletedShifts)
	assert.InDelta(t, 13.0, summary.TotalHours, 1e-9)
	assert.Equal(t, 1, summary.Incidents)
	assert.Equal(t, 2, summary.GoodDays)
	assert.Equal(t, int64(2), summary.Ranking[0].Caregiver.ID)
}
