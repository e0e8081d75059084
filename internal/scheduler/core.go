package scheduler

import (
	"math"
)

// randomInitChromosome picks a random candidate for every slot
func (s *Scheduler) randomInitChromosome() *Chromosome {
	genes := make([]*Gene, len(s.slots))

	for i, sl := range s.slots {
		gene := &Gene{slot: i}
		if len(sl.candidates) > 0 {
			id := sl.candidates[s.rng.Intn(len(sl.candidates))]
			gene.caregiverID = &id
		}
		genes[i] = gene
	}

	return &Chromosome{
		genes: genes,
	}
}

func (ch *Chromosome) clone() *Chromosome {
	genes := make([]*Gene, len(ch.genes))
	for i, g := range ch.genes {
		cp := &Gene{slot: g.slot}
		if g.caregiverID != nil {
			id := *g.caregiverID
			cp.caregiverID = &id
		}
		genes[i] = cp
	}
	return &Chromosome{genes: genes, fitness: ch.fitness}
}

/**
 * fitness = - uncoveredPenalty - FairnessWeight * fairnessPenalty
 * where:
 * 		1. uncoveredPenalty counts slots left without a caregiver
 * 		2. fairnessPenalty is the variance of weekly hours across caregivers,
 *		   including the hours already scheduled before the search
 */
func (s *Scheduler) calcFitness(ch *Chromosome) {
	hours := make(map[int64]float64, len(s.baseHours))
	for id, h := range s.baseHours {
		hours[id] = h
	}

	uncoveredPenalty := 0.0
	for _, gene := range ch.genes {
		if gene.caregiverID == nil {
			uncoveredPenalty += 1
			continue
		}
		hours[*gene.caregiverID] += s.slots[gene.slot].duration
	}

	// summed in caregiver order so a seed always yields the same fitness
	avg := 0.0
	for _, c := range s.caregivers {
		avg += hours[c.ID]
	}
	avg /= float64(len(s.caregivers))

	variance := 0.0
	for _, c := range s.caregivers {
		variance += math.Pow(hours[c.ID]-avg, 2)
	}
	variance /= float64(len(s.caregivers))

	ch.fitness = -uncoveredPenalty - s.parameters.FairnessWeight*variance
}

// selectByRoulette spins a roulette over fitness shifted to be positive
func (s *Scheduler) selectByRoulette(pop []*Chromosome) *Chromosome {
	minFit := math.MaxFloat64
	for _, ch := range pop {
		minFit = math.Min(minFit, ch.fitness)
	}

	// keeps the worst chromosome selectable
	const epsilon = 1e-6

	sumFit := 0.0
	for _, ch := range pop {
		sumFit += ch.fitness - minFit + epsilon
	}
	pick := s.rng.Float64() * sumFit
	partial := 0.0

	for _, ch := range pop {
		partial += ch.fitness - minFit + epsilon
		if partial >= pick {
			return ch
		}
	}

	return pop[len(pop)-1]
}

// singlePointCrossover swaps the tails of both chromosomes after a random point
func (s *Scheduler) singlePointCrossover(ch1 *Chromosome, ch2 *Chromosome) {
	if len(ch1.genes) != len(ch2.genes) || len(ch1.genes) == 0 {
		return
	}

	point := s.rng.Intn(len(ch1.genes))
	for i := point; i < len(ch1.genes); i++ {
		ch1.genes[i], ch2.genes[i] = ch2.genes[i], ch1.genes[i]
	}
}

// mutate moves a slot to another candidate with MutationRate probability
func (s *Scheduler) mutate(ch *Chromosome) {
	for _, gene := range ch.genes {
		if s.rng.Float64() > s.parameters.MutationRate {
			continue
		}

		others := make([]int64, 0, len(s.slots[gene.slot].candidates))
		for _, id := range s.slots[gene.slot].candidates {
			if gene.caregiverID != nil && *gene.caregiverID == id {
				continue
			}
			others = append(others, id)
		}

		if len(others) > 0 {
			id := others[s.rng.Intn(len(others))]
			gene.caregiverID = &id
		}
	}
}
