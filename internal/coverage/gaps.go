package coverage

import (
	"time"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// WeekBounds returns midnight of the Monday and of the Sunday of the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// dateIn keeps the calendar date of t and moves it to midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ComputeGaps reports, per date of the week containing weekStart, the catalog periods that
// have no shift. Past days are skipped, and periods of today that already ended are
// skipped too, except the overnight one.
func ComputeGaps(weekStart time.Time, shifts []domain.Shift, now time.Time) (map[string][]domain.Gap, error) {
	monday, _ := WeekBounds(dateIn(weekStart, now.Location()))
	today := startOfDay(now)

	covered := make(map[string]map[string]bool)
	for _, s := range shifts {
		if covered[s.Date] == nil {
			covered[s.Date] = make(map[string]bool)
		}
		covered[s.Date][s.Period] = true
	}

	gaps := make(map[string][]domain.Gap)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		if day.Before(today) {
			continue
		}
		date := day.Format(domain.DateLayout)
		isToday := day.Equal(today)

		var dayGaps []domain.Gap
		for _, p := range domain.Periods() {
			if covered[date][p.ID] {
				continue
			}
			if isToday {
				elapsed, err := periodElapsed(p, now)
				if err != nil {
					return nil, err
				}
				if elapsed {
					continue
				}
			}

			hours, err := Duration(p.StartTime, p.EndTime)
			if err != nil {
				return nil, err
			}
			dayGaps = append(dayGaps, domain.Gap{
				Start:    p.StartTime,
				End:      p.EndTime,
				Duration: hours,
				Period:   p.Name,
				PeriodID: p.ID,
			})
		}

		if len(dayGaps) > 0 {
			gaps[date] = dayGaps
		}
	}

	return gaps, nil
}

// periodElapsed reports whether a period of today has already ended at now.
func periodElapsed(p domain.Period, now time.Time) (bool, error) {
	if p.ID == domain.PeriodOvernight || p.EndsNextDay {
		return false, nil
	}
	end, err := ParseClock(p.EndTime)
	if err != nil {
		return false, err
	}
	return ClockOf(now).Minutes() >= end.Minutes(), nil
}

func CountGaps(gaps map[string][]domain.Gap) int {
	n := 0
	for _, g := range gaps {
		n += len(g)
	}
	return n
}

type WeekCoverageReport struct {
	WeekStart    string                  `json:"semanaInicio"`
	WeekEnd      string                  `json:"semanaFim"`
	Gaps         map[string][]domain.Gap `json:"gaps"`
	TotalGaps    int                     `json:"totalGaps"`
	DaysWithGaps int                     `json:"diasComGaps"`
	CompleteDays int                     `json:"diasCompletos"`
}

func WeekCoverage(weekStart time.Time, shifts []domain.Shift, now time.Time) (*WeekCoverageReport, error) {
	gaps, err := ComputeGaps(weekStart, shifts, now)
	if err != nil {
		return nil, err
	}
	monday, sunday := WeekBounds(dateIn(weekStart, now.Location()))

	return &WeekCoverageReport{
		WeekStart:    monday.Format(domain.DateLayout),
		WeekEnd:      sunday.Format(domain.DateLayout),
		Gaps:         gaps,
		TotalGaps:    CountGaps(gaps),
		DaysWithGaps: len(gaps),
		CompleteDays: 7 - len(gaps),
	}, nil
}
