package domain

const (
	PeriodMorning   = "manha"
	PeriodAfternoon = "tarde"
	PeriodEvening   = "noite"
	PeriodOvernight = "madrugada"
)

type Period struct {
	ID        string `json:"id"`
	Name      string `json:"nome"`
	StartTime string `json:"horaInicio"`
	EndTime   string `json:"horaFim"`
	// EndsNextDay marks periods whose end falls on the following calendar day
	EndsNextDay bool `json:"-"`
}

var periods = []Period{
	{ID: PeriodMorning, Name: "Manhã", StartTime: "07:00", EndTime: "12:00"},
	{ID: PeriodAfternoon, Name: "Tarde", StartTime: "13:00", EndTime: "18:00"},
	{ID: PeriodEvening, Name: "Noite", StartTime: "18:00", EndTime: "00:00", EndsNextDay: true},
	{ID: PeriodOvernight, Name: "Madrugada", StartTime: "00:00", EndTime: "07:00", EndsNextDay: true},
}

// Periods returns the fixed catalog in display order.
func Periods() []Period {
	out := make([]Period, len(periods))
	copy(out, periods)
	return out
}

func PeriodByID(id string) (Period, bool) {
	for _, p := range periods {
		if p.ID == id {
			return p, true
		}
	}
	return Period{}, false
}

func IsValidPeriod(id string) bool {
	_, ok := PeriodByID(id)
	return ok
}

func PeriodIDs() []string {
	ids := make([]string, 0, len(periods))
	for _, p := range periods {
		ids = append(ids, p.ID)
	}
	return ids
}
