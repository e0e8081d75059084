package domain

import "time"

type CareLogType string

const (
	CareLogIncident    CareLogType = "intercorrencia"
	CareLogGoodDay     CareLogType = "dia_bom"
	CareLogObservation CareLogType = "observacao"
)

type Severity string

const (
	SeverityMild     Severity = "leve"
	SeverityModerate Severity = "moderada"
	SeveritySevere   Severity = "grave"
)

func IsValidCareLogType(t CareLogType) bool {
	switch t {
	case CareLogIncident, CareLogGoodDay, CareLogObservation:
		return true
	}
	return false
}

func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

type CareLogEntry struct {
	ID          int64       `json:"id"`
	Date        string      `json:"data"`
	Type        CareLogType `json:"tipo"`
	Title       string      `json:"titulo"`
	Description string      `json:"descricao"`
	Severity    Severity    `json:"gravidade,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}
