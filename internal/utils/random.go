package utils

import (
	"fmt"
	"math/rand"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// CaregiverPalette is the set of colours handed out to new caregivers.
var CaregiverPalette = []string{
	"#0D9488", "#8B5CF6", "#F59E0B", "#EC4899",
	"#3B82F6", "#10B981", "#EF4444", "#6366F1",
}

func RandomColor(rng *rand.Rand) string {
	return CaregiverPalette[rng.Intn(len(CaregiverPalette))]
}

var firstNames = []string{
	"Ana", "Maria", "Juliana", "Fernanda", "Patrícia", "Aline", "Camila", "Luciana",
	"Beatriz", "Carla", "Sandra", "Roberta", "Vanessa", "Márcia", "Renata", "Joana",
	"José", "João", "Carlos", "Paulo", "Marcos", "Rafael", "Lucas", "Antônio",
}

var surnames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira",
	"Lima", "Gomes", "Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes",
}

func GenerateRandomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + surnames[rng.Intn(len(surnames))]
}

var areaCodes = []int{11, 21, 31, 41, 51, 61, 71, 81, 85, 91}

// GenerateRandomPhone returns a mobile number as bare digits: DDD followed by 9 and 8 digits.
func GenerateRandomPhone(rng *rand.Rand) string {
	return fmt.Sprintf("%d9%08d", areaCodes[rng.Intn(len(areaCodes))], rng.Intn(100000000))
}

// GenerateRandomAvailability marks each weekday active with a random subset of periods.
func GenerateRandomAvailability(rng *rand.Rand) domain.Availability {
	a := domain.NewAvailability()

	for _, day := range domain.Weekdays() {
		if rng.Intn(4) == 0 {
			continue
		}
		for _, p := range domain.PeriodIDs() {
			if rng.Intn(2) == 0 {
				a.TogglePeriod(day, p)
			}
		}
	}

	return a.Normalize()
}

func GenerateRandomCaregiver(rng *rand.Rand) *domain.Caregiver {
	return &domain.Caregiver{
		Name:         GenerateRandomName(rng),
		Phone:        GenerateRandomPhone(rng),
		Color:        RandomColor(rng),
		Availability: GenerateRandomAvailability(rng),
	}
}

var incidentTitles = []string{"Queda no banheiro", "Febre à noite", "Recusou a medicação", "Pressão alta", "Confusão ao acordar"}
var goodDayTitles = []string{"Passeio no jardim", "Comeu bem", "Recebeu visita da família", "Dormiu a noite toda"}
var observationTitles = []string{"Troca de fralda às 14h", "Consulta marcada", "Novo remédio iniciado"}

var severities = []domain.Severity{domain.SeverityMild, domain.SeverityModerate, domain.SeveritySevere}

// GenerateRandomCareLogEntry builds an entry dated date with a random type.
func GenerateRandomCareLogEntry(rng *rand.Rand, date string) *domain.CareLogEntry {
	e := &domain.CareLogEntry{Date: date}

	switch rng.Intn(3) {
	case 0:
		e.Type = domain.CareLogIncident
		e.Title = incidentTitles[rng.Intn(len(incidentTitles))]
		e.Severity = severities[rng.Intn(len(severities))]
	case 1:
		e.Type = domain.CareLogGoodDay
		e.Title = goodDayTitles[rng.Intn(len(goodDayTitles))]
	default:
		e.Type = domain.CareLogObservation
		e.Title = observationTitles[rng.Intn(len(observationTitles))]
	}
	e.Description = e.Title + "."

	return e
}
