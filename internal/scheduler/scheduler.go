package scheduler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/utils"
)

var ErrInvalidParameters = errors.New("parâmetros de sugestão inválidos")

type Scheduler struct {
	parameters *Parameters
	caregivers []domain.Caregiver
	slots      []slot
	baseHours  map[int64]float64 // hours already scheduled this week per caregiver
	rng        *rand.Rand
}

// New prepares a search over the open slots in gaps. weekShifts are the shifts already
// scheduled in the same week; their hours count toward fairness.
func New(parameters *Parameters, caregivers []domain.Caregiver, gaps map[string][]domain.Gap, weekShifts []domain.Shift, seed int64) (*Scheduler, error) {
	if err := validateParameters(parameters); err != nil {
		return nil, err
	}

	s := &Scheduler{
		parameters: parameters,
		caregivers: caregivers,
		slots:      make([]slot, 0),
		baseHours:  make(map[int64]float64),
		rng:        rand.New(rand.NewSource(seed)),
	}

	for _, c := range caregivers {
		s.baseHours[c.ID] = 0
	}
	for _, shift := range weekShifts {
		if _, exists := s.baseHours[shift.CaregiverID]; !exists {
			continue
		}
		hours, err := coverage.Duration(shift.StartTime, shift.EndTime)
		if err != nil {
			return nil, fmt.Errorf("turno %d: %w", shift.ID, err)
		}
		s.baseHours[shift.CaregiverID] += hours
	}

	dates := make([]string, 0, len(gaps))
	for date := range gaps {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("data %q: %w", date, err)
		}

		for _, gap := range gaps[date] {
			candidates := []int64{}
			for _, c := range caregivers {
				// no recorded availability means no restriction
				if c.Availability == nil || c.Availability.Allows(day.Weekday(), gap.PeriodID) {
					candidates = append(candidates, c.ID)
				}
			}

			s.slots = append(s.slots, slot{
				date:       date,
				periodID:   gap.PeriodID,
				start:      gap.Start,
				end:        gap.End,
				duration:   gap.Duration,
				candidates: candidates,
			})
		}
	}

	return s, nil
}

func validateParameters(p *Parameters) error {
	switch {
	case p == nil:
		return ErrInvalidParameters
	case p.PopulationSize < 2:
		return fmt.Errorf("%w: tamanho da população deve ser no mínimo 2", ErrInvalidParameters)
	case p.MaxGenerations < 1:
		return fmt.Errorf("%w: número de gerações deve ser no mínimo 1", ErrInvalidParameters)
	case p.EliteCount < 0 || p.EliteCount > p.PopulationSize:
		return fmt.Errorf("%w: quantidade de elite fora do intervalo", ErrInvalidParameters)
	case p.CrossoverRate < 0 || p.CrossoverRate > 1:
		return fmt.Errorf("%w: taxa de cruzamento deve estar entre 0 e 1", ErrInvalidParameters)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return fmt.Errorf("%w: taxa de mutação deve estar entre 0 e 1", ErrInvalidParameters)
	case p.FairnessWeight < 0:
		return fmt.Errorf("%w: peso de equidade não pode ser negativo", ErrInvalidParameters)
	}
	return nil
}

// Schedule returns the best proposal found as unsaved shifts, in date and catalog order.
// Slots no caregiver can take are left out.
func (s *Scheduler) Schedule() ([]domain.Shift, error) {
	if len(s.slots) == 0 || len(s.caregivers) == 0 {
		return []domain.Shift{}, nil
	}

	pop := make([]*Chromosome, s.parameters.PopulationSize)
	for i := range pop {
		pop[i] = s.randomInitChromosome()
		s.calcFitness(pop[i])
	}

	best := &Chromosome{fitness: -math.MaxFloat64}

	for gen := 0; gen < int(s.parameters.MaxGenerations); gen++ {
		sort.SliceStable(pop, func(i, j int) bool {
			return pop[i].fitness > pop[j].fitness
		})

		if pop[0].fitness > best.fitness {
			best = pop[0].clone()
		}

		newPop := make([]*Chromosome, 0, s.parameters.PopulationSize)
		for i := 0; i < int(s.parameters.EliteCount); i++ {
			newPop = append(newPop, pop[i].clone())
		}

		for len(newPop) < int(s.parameters.PopulationSize) {
			// parents may be picked again, so breed from copies
			p1 := s.selectByRoulette(pop).clone()
			p2 := s.selectByRoulette(pop).clone()

			if s.rng.Float64() < s.parameters.CrossoverRate {
				s.singlePointCrossover(p1, p2)
			}

			s.mutate(p1)
			s.mutate(p2)

			newPop = append(newPop, p1)
			if len(newPop) < int(s.parameters.PopulationSize) {
				newPop = append(newPop, p2)
			}
		}

		for i := range newPop {
			s.calcFitness(newPop[i])
		}
		pop = newPop
	}

	for _, ch := range pop {
		if ch.fitness > best.fitness {
			best = ch.clone()
		}
	}

	suggestions := make([]domain.Shift, 0, len(best.genes))
	for _, gene := range best.genes {
		if gene.caregiverID == nil {
			continue
		}
		sl := s.slots[gene.slot]
		suggestions = append(suggestions, domain.Shift{
			CaregiverID: *gene.caregiverID,
			Date:        sl.date,
			Period:      sl.periodID,
			StartTime:   sl.start,
			EndTime:     sl.end,
		})
	}

	if err := utils.ValidateSuggestions(suggestions, s.caregivers); err != nil {
		return nil, err
	}

	return suggestions, nil
}
