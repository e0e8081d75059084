package domain

const (
	MailTypeIncidentRegistered = "incident_registered"
	MailTypeCoverageDigest     = "coverage_digest"
	MailTypeShiftCreated       = "shift_created"
)

type MailMessage struct {
	Type string   `json:"type"`
	To   []string `json:"to"`
	Data any      `json:"data"`
}

type IncidentMailData struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type CoverageDigestDay struct {
	Date string `json:"date"`
	Gaps []Gap  `json:"gaps"`
}

type CoverageDigestMailData struct {
	WeekStart string              `json:"weekStart"`
	WeekEnd   string              `json:"weekEnd"`
	TotalGaps int                 `json:"totalGaps"`
	Days      []CoverageDigestDay `json:"days"`
}

type ShiftCreatedMailData struct {
	ShiftID         int64  `json:"shiftId"`
	Date            string `json:"date"`
	Period          string `json:"period"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Note            string `json:"note"`
	AttentionPoints string `json:"attentionPoints"`
	CaregiverID     int64  `json:"caregiverId"`
	CaregiverName   string `json:"caregiverName"`
	CaregiverPhone  string `json:"caregiverPhone"`
}
