package scheduler

import (
	"testing"

	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParameters() *Parameters {
	return &Parameters{
		PopulationSize: 40,
		MaxGenerations: 150,
		CrossoverRate:  0.8,
		MutationRate:   0.1,
		EliteCount:     2,
		FairnessWeight: 0.05,
	}
}

func fullDayGaps() []domain.Gap {
	gaps := []domain.Gap{}
	for _, p := range domain.Periods() {
		gaps = append(gaps, domain.Gap{Start: p.StartTime, End: p.EndTime, Period: p.Name, PeriodID: p.ID})
	}
	gaps[0].Duration, gaps[1].Duration, gaps[2].Duration, gaps[3].Duration = 5, 5, 6, 7
	return gaps
}

func TestScheduleFavoursTheLessLoadedCaregiver(t *testing.T) {
	caregivers := []domain.Caregiver{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bia"}}
	// Ana already carries a heavy week
	weekShifts := []domain.Shift{}
	for i := 0; i < 5; i++ {
		weekShifts = append(weekShifts, domain.Shift{ID: int64(i + 1), CaregiverID: 1, StartTime: "07:00", EndTime: "07:00"})
	}
	gaps := map[string][]domain.Gap{"2026-10-16": fullDayGaps()}

	s, err := New(defaultParameters(), caregivers, gaps, weekShifts, 42)
	require.NoError(t, err)

	suggestions, err := s.Schedule()
	require.NoError(t, err)
	require.Len(t, suggestions, 4)

	for i, sug := range suggestions {
		assert.Equal(t, int64(2), sug.CaregiverID)
		assert.Equal(t, "2026-10-16", sug.Date)
		assert.Equal(t, domain.PeriodIDs()[i], sug.Period)
		assert.Zero(t, sug.ID)
	}
	assert.Equal(t, "18:00", suggestions[2].StartTime)
	assert.Equal(t, "00:00", suggestions[2].EndTime)
}

func TestScheduleRespectsAvailability(t *testing.T) {
	// 2026-10-17 is a Saturday
	ana := domain.NewAvailability()
	ana.TogglePeriod(domain.Saturday, domain.PeriodMorning)
	bia := domain.NewAvailability()
	bia.TogglePeriod(domain.Saturday, domain.PeriodAfternoon)

	caregivers := []domain.Caregiver{
		{ID: 1, Name: "Ana", Availability: ana},
		{ID: 2, Name: "Bia", Availability: bia},
	}
	gaps := map[string][]domain.Gap{"2026-10-17": fullDayGaps()}

	s, err := New(defaultParameters(), caregivers, gaps, nil, 7)
	require.NoError(t, err)

	suggestions, err := s.Schedule()
	require.NoError(t, err)

	// evening and overnight have no candidate and stay open
	require.Len(t, suggestions, 2)
	assert.Equal(t, domain.PeriodMorning, suggestions[0].Period)
	assert.Equal(t, int64(1), suggestions[0].CaregiverID)
	assert.Equal(t, domain.PeriodAfternoon, suggestions[1].Period)
	assert.Equal(t, int64(2), suggestions[1].CaregiverID)
}

func TestScheduleIsDeterministicForASeed(t *testing.T) {
	caregivers := []domain.Caregiver{{ID: 1}, {ID: 2}, {ID: 3}}
	gaps := map[string][]domain.Gap{
		"2026-10-16": fullDayGaps(),
		"2026-10-17": fullDayGaps(),
		"2026-10-18": fullDayGaps(),
	}

	run := func() []domain.Shift {
		s, err := New(defaultParameters(), caregivers, gaps, nil, 99)
		require.NoError(t, err)
		out, err := s.Schedule()
		require.NoError(t, err)
		return out
	}

	first := run()
	assert.Len(t, first, 12)
	assert.Equal(t, first, run())

	// dates come out in order
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1].Date, first[i].Date)
	}
}

func TestScheduleWithNothingToDo(t *testing.T) {
	s, err := New(defaultParameters(), nil, map[string][]domain.Gap{"2026-10-16": fullDayGaps()}, nil, 1)
	require.NoError(t, err)
	out, err := s.Schedule()
	require.NoError(t, err)
	assert.Empty(t, out)

	s, err = New(defaultParameters(), []domain.Caregiver{{ID: 1}}, nil, nil, 1)
	require.NoError(t, err)
	out, err = s.Schedule()
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	tests := map[string]func(p *Parameters){
		"tiny population":   func(p *Parameters) { p.PopulationSize = 1 },
		"no generations":    func(p *Parameters) { p.MaxGenerations = 0 },
		"too many elites":   func(p *Parameters) { p.EliteCount = 41 },
		"crossover above 1": func(p *Parameters) { p.CrossoverRate = 1.5 },
		"negative mutation": func(p *Parameters) { p.MutationRate = -0.1 },
		"negative fairness": func(p *Parameters) { p.FairnessWeight = -1 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := defaultParameters()
			mutate(p)
			_, err := New(p, nil, nil, nil, 1)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}

	_, err := New(nil, nil, nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestNewRejectsMalformedExistingShift(t *testing.T) {
	_, err := New(defaultParameters(), []domain.Caregiver{{ID: 1}}, nil, []domain.Shift{{ID: 3, CaregiverID: 1, StartTime: "sete", EndTime: "12:00"}}, 1)
	assert.ErrorContains(t, err, "turno 3")
}
