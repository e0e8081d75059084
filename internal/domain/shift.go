package domain

import "time"

// DateLayout is the calendar date format used by shifts and care-log entries.
const DateLayout = "2006-01-02"

type Shift struct {
	ID              int64      `json:"id"`
	CaregiverID     int64      `json:"acompanhanteId"`
	Date            string     `json:"data"`
	Period          string     `json:"periodo"`
	StartTime       string     `json:"horaInicio"`
	EndTime         string     `json:"horaFim"`
	Note            string     `json:"observacao"`
	AttentionPoints string     `json:"pontosAtencao"`
	CheckinTime     string     `json:"checkinHora,omitempty"`
	CheckoutTime    string     `json:"checkoutHora,omitempty"`
	CheckinAt       *time.Time `json:"checkinAt,omitempty"`
	CheckoutAt      *time.Time `json:"checkoutAt,omitempty"`
}

// Completed reports whether a check-out has been recorded.
func (s *Shift) Completed() bool {
	return s.CheckoutTime != ""
}

// ActualStart is the check-in time when present, otherwise the scheduled start.
func (s *Shift) ActualStart() string {
	if s.CheckinTime != "" {
		return s.CheckinTime
	}
	return s.StartTime
}

func (s *Shift) ActualEnd() string {
	if s.CheckoutTime != "" {
		return s.CheckoutTime
	}
	return s.EndTime
}

type Gap struct {
	Start    string  `json:"inicio"`
	End      string  `json:"fim"`
	Duration float64 `json:"duracao"`
	Period   string  `json:"periodo"`
	PeriodID string  `json:"periodoId"`
}
