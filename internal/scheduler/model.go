package scheduler

// Gene: the assignment decision for one open (date, period) slot
type Gene struct {
	slot        int
	caregiverID *int64 // nil leaves the slot uncovered
}

// Chromosome: one complete proposal for the week's gaps
type Chromosome struct {
	genes   []*Gene
	fitness float64
}

// slot is an open (date, period) pair with the caregivers allowed to take it
type slot struct {
	date       string
	periodID   string
	start      string
	end        string
	duration   float64
	candidates []int64
}

// Genetic search parameters
type Parameters struct {
	PopulationSize int32   // population size
	MaxGenerations int32   // generations to run
	CrossoverRate  float64 // probability of crossing two parents
	MutationRate   float64 // per-gene mutation probability
	EliteCount     int32   // best chromosomes copied unchanged
	FairnessWeight float64 // weight of the hours variance against coverage
}
