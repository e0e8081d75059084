package utils

import (
	"fmt"
	"time"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
)

// ValidateShiftTimes checks that every time of day recorded on the shift is HH:MM.
func ValidateShiftTimes(s *domain.Shift) error {
	fields := []struct {
		name  string
		value string
	}{
		{"horaInicio", s.StartTime},
		{"horaFim", s.EndTime},
		{"checkinHora", s.CheckinTime},
		{"checkoutHora", s.CheckoutTime},
	}

	for _, f := range fields {
		if f.value == "" && (f.name == "checkinHora" || f.name == "checkoutHora") {
			continue
		}
		if _, err := coverage.ParseClock(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	return nil
}

// ValidateSuggestions checks a proposed batch of shifts before it is shown or saved:
// known caregivers, known periods, availability respected and one shift per slot.
func ValidateSuggestions(suggestions []domain.Shift, caregivers []domain.Caregiver) error {
	byID := make(map[int64]*domain.Caregiver, len(caregivers))
	for i := range caregivers {
		byID[caregivers[i].ID] = &caregivers[i]
	}

	taken := make(map[string]bool)
	for _, s := range suggestions {
		c, ok := byID[s.CaregiverID]
		if !ok {
			return fmt.Errorf("acompanhante %d não existe", s.CaregiverID)
		}
		if !domain.IsValidPeriod(s.Period) {
			return fmt.Errorf("período %q inválido", s.Period)
		}

		day, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			return fmt.Errorf("data %q inválida", s.Date)
		}
		if c.Availability != nil && !c.Availability.Allows(day.Weekday(), s.Period) {
			return fmt.Errorf("%s não está disponível em %s no período %s", c.Name, s.Date, s.Period)
		}

		key := s.Date + "/" + s.Period
		if taken[key] {
			return fmt.Errorf("período %s de %s sugerido mais de uma vez", s.Period, s.Date)
		}
		taken[key] = true
	}

	return nil
}

// ValidateDocument checks a whole document before it replaces the stored one, holding it
// to the same rules as the individual write paths. The error names the first offending
// record. Availabilities are normalized and severities are dropped from non-incident entries.
func ValidateDocument(doc *domain.Document) error {
	caregivers := make(map[int64]bool, len(doc.Caregivers))
	for i := range doc.Caregivers {
		c := &doc.Caregivers[i]
		if c.ID <= 0 {
			return fmt.Errorf("acompanhante %d: id inválido", c.ID)
		}
		if caregivers[c.ID] {
			return fmt.Errorf("acompanhante %d: id duplicado", c.ID)
		}
		caregivers[c.ID] = true
		if c.Name == "" {
			return fmt.Errorf("acompanhante %d: nome obrigatório", c.ID)
		}
		if c.Availability != nil {
			c.Availability = c.Availability.Normalize()
		}
	}

	shifts := make(map[int64]bool, len(doc.Shifts))
	for i := range doc.Shifts {
		s := &doc.Shifts[i]
		if s.ID <= 0 {
			return fmt.Errorf("turno %d: id inválido", s.ID)
		}
		if shifts[s.ID] {
			return fmt.Errorf("turno %d: id duplicado", s.ID)
		}
		shifts[s.ID] = true
		if !caregivers[s.CaregiverID] {
			return fmt.Errorf("turno %d: acompanhante %d não existe", s.ID, s.CaregiverID)
		}
		if _, err := time.Parse(domain.DateLayout, s.Date); err != nil {
			return fmt.Errorf("turno %d: data %q inválida", s.ID, s.Date)
		}
		if !domain.IsValidPeriod(s.Period) {
			return fmt.Errorf("turno %d: período %q inválido", s.ID, s.Period)
		}
		if err := ValidateShiftTimes(s); err != nil {
			return fmt.Errorf("turno %d: %w", s.ID, err)
		}
	}

	entries := make(map[int64]bool, len(doc.CareLogEntries))
	for i := range doc.CareLogEntries {
		e := &doc.CareLogEntries[i]
		if e.ID <= 0 {
			return fmt.Errorf("registro %d: id inválido", e.ID)
		}
		if entries[e.ID] {
			return fmt.Errorf("registro %d: id duplicado", e.ID)
		}
		entries[e.ID] = true
		if _, err := time.Parse(domain.DateLayout, e.Date); err != nil {
			return fmt.Errorf("registro %d: data %q inválida", e.ID, e.Date)
		}
		if !domain.IsValidCareLogType(e.Type) {
			return fmt.Errorf("registro %d: tipo %q inválido", e.ID, e.Type)
		}
		if e.Type != domain.CareLogIncident {
			e.Severity = ""
		} else if e.Severity != "" && !domain.IsValidSeverity(e.Severity) {
			return fmt.Errorf("registro %d: gravidade %q inválida", e.ID, e.Severity)
		}
	}

	return nil
}
