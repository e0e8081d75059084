package coverage

import (
	"fmt"
	"sort"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

type CaregiverTotals struct {
	CaregiverID int64   `json:"acompanhanteId"`
	Scheduled   int     `json:"turnosAgendados"`
	Completed   int     `json:"turnosConcluidos"`
	Hours       float64 `json:"horas"`
}

// TotalHoursFor sums the worked hours of a caregiver. Only checked-out shifts count; each
// one runs from its check-in (or scheduled start) to its check-out (or scheduled end).
func TotalHoursFor(caregiverID int64, shifts []domain.Shift) (CaregiverTotals, error) {
	totals := CaregiverTotals{CaregiverID: caregiverID}

	for i := range shifts {
		s := &shifts[i]
		if s.CaregiverID != caregiverID {
			continue
		}
		totals.Scheduled++
		if !s.Completed() {
			continue
		}
		totals.Completed++

		hours, err := Duration(s.ActualStart(), s.ActualEnd())
		if err != nil {
			return CaregiverTotals{}, fmt.Errorf("turno %d: %w", s.ID, err)
		}
		totals.Hours += hours
	}

	return totals, nil
}

type RankEntry struct {
	Caregiver domain.Caregiver `json:"acompanhante"`
	CaregiverTotals
	// Percent is relative to the largest total, for bar widths
	Percent float64 `json:"porcentagem"`
}

func RankCaregivers(caregivers []domain.Caregiver, shifts []domain.Shift) ([]RankEntry, error) {
	ranking := make([]RankEntry, 0, len(caregivers))
	maxHours := 1.0

	for _, c := range caregivers {
		totals, err := TotalHoursFor(c.ID, shifts)
		if err != nil {
			return nil, err
		}
		maxHours = max(maxHours, totals.Hours)
		ranking = append(ranking, RankEntry{Caregiver: c, CaregiverTotals: totals})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Hours > ranking[j].Hours
	})

	for i := range ranking {
		ranking[i].Percent = ranking[i].Hours / maxHours * 100
	}

	return ranking, nil
}

type Summary struct {
	Caregivers      int         `json:"totalAcompanhantes"`
	ScheduledShifts int         `json:"turnosAgendados"`
	CompletedShifts int         `json:"turnosConcluidos"`
	TotalHours      float64     `json:"totalHoras"`
	Incidents       int         `json:"totalIntercorrencias"`
	GoodDays        int         `json:"totalDiasBons"`
	Ranking         []RankEntry `json:"ranking"`
}

func Summarize(caregivers []domain.Caregiver, shifts []domain.Shift, entries []domain.CareLogEntry) (*Summary, error) {
	ranking, err := RankCaregivers(caregivers, shifts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Caregivers: len(caregivers),
		Ranking:    ranking,
	}
	for _, r := range ranking {
		summary.ScheduledShifts += r.Scheduled
		summary.CompletedShifts += r.Completed
		summary.TotalHours += r.Hours
	}
	summary.Incidents, summary.GoodDays, _ = countByType(entries)

	return summary, nil
}

func countByType(entries []domain.CareLogEntry) (incidents, goodDays, observations int) {
	for _, e := range entries {
		switch e.Type {
		case domain.CareLogIncident:
			incidents++
		case domain.CareLogGoodDay:
			goodDays++
		case domain.CareLogObservation:
			observations++
		}
	}
	return incidents, goodDays, observations
}
