// Package seed fills a store with plausible data for local development and demos.
package seed

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/repository"
	"github.com/escala-acompanhantes/backend/internal/utils"
)

// Seeder writes random records through the repository, so every record passes the same checks as
// the API.
type Seeder struct {
	repo *repository.Repository
	rng  *rand.Rand
	loc  *time.Location
}

func New(repo *repository.Repository, seed int64, loc *time.Location) *Seeder {
	return &Seeder{
		repo: repo,
		rng:  rand.New(rand.NewSource(seed)),
		loc:  loc,
	}
}

// Caregivers inserts n random caregivers and returns how many were stored.
func (s *Seeder) Caregivers(n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		c := utils.GenerateRandomCaregiver(s.rng)
		if err := s.repo.CreateCaregiver(c); err != nil {
			slog.Error("falha ao inserir acompanhante", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}

// Shifts fills `weeks` weeks starting on the Monday of the current week. Each period gets an
// available caregiver with a 3 in 4 chance, and shifts that already ended are checked in and out.
func (s *Seeder) Shifts(weeks int, now time.Time) (int, error) {
	caregivers, err := s.repo.GetAllCaregivers()
	if err != nil {
		return 0, err
	}
	if len(caregivers) == 0 {
		return 0, errors.New("nenhum acompanhante cadastrado, insira acompanhantes primeiro")
	}

	now = now.In(s.loc)
	monday, _ := coverage.WeekBounds(now)

	shifts := []*domain.Shift{}
	for day := 0; day < weeks*7; day++ {
		date := monday.AddDate(0, 0, day)
		for _, p := range domain.Periods() {
			if s.rng.Float64() >= 0.75 {
				continue
			}

			candidates := []domain.Caregiver{}
			for _, c := range caregivers {
				if c.Availability == nil || c.Availability.Allows(date.Weekday(), p.ID) {
					candidates = append(candidates, c)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			shift := &domain.Shift{
				CaregiverID: candidates[s.rng.Intn(len(candidates))].ID,
				Date:        date.Format(domain.DateLayout),
				Period:      p.ID,
				StartTime:   p.StartTime,
				EndTime:     p.EndTime,
			}
			s.attend(shift, p, now)
			shifts = append(shifts, shift)
		}
	}

	if err := s.repo.CreateShifts(shifts); err != nil {
		return 0, err
	}
	return len(shifts), nil
}

// attend records check-in and check-out on shifts that are over by now.
func (s *Seeder) attend(shift *domain.Shift, p domain.Period, now time.Time) {
	end, err := time.ParseInLocation("2006-01-02 15:04", shift.Date+" "+p.EndTime, s.loc)
	if err != nil {
		return
	}
	if p.EndsNextDay {
		end = end.AddDate(0, 0, 1)
	}
	if !end.Before(now) {
		return
	}
	hours, err := coverage.Duration(p.StartTime, p.EndTime)
	if err != nil {
		return
	}

	checkin := end.Add(-time.Duration(hours * float64(time.Hour))).Add(time.Duration(s.rng.Intn(20)) * time.Minute)
	checkout := end.Add(time.Duration(s.rng.Intn(30)-10) * time.Minute)
	shift.CheckinTime = coverage.ClockOf(checkin).String()
	shift.CheckoutTime = coverage.ClockOf(checkout).String()
	checkinAt, checkoutAt := checkin.UTC(), checkout.UTC()
	shift.CheckinAt = &checkinAt
	shift.CheckoutAt = &checkoutAt
}

// CareLog inserts about one entry every other day over the last `days` days.
func (s *Seeder) CareLog(days int, now time.Time) int {
	today := now.In(s.loc)
	cnt := 0
	for i := 0; i < days; i++ {
		if s.rng.Intn(2) == 0 {
			continue
		}
		date := today.AddDate(0, 0, -i).Format(domain.DateLayout)
		if err := s.repo.CreateCareLogEntry(utils.GenerateRandomCareLogEntry(s.rng, date)); err != nil {
			slog.Error("falha ao inserir registro de acompanhamento", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}
