package domain

import (
	"slices"
	"strings"
	"time"
)

type Weekday string

const (
	Sunday    Weekday = "domingo"
	Monday    Weekday = "segunda"
	Tuesday   Weekday = "terca"
	Wednesday Weekday = "quarta"
	Thursday  Weekday = "quinta"
	Friday    Weekday = "sexta"
	Saturday  Weekday = "sabado"
)

// indexed by time.Weekday
var weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

func WeekdayOf(d time.Weekday) Weekday {
	return weekdays[d]
}

func IsValidWeekday(s string) bool {
	return slices.Contains(weekdays, Weekday(s))
}

type DayAvailability struct {
	Active  bool     `json:"ativo"`
	Periods []string `json:"periodos"`
}

// Availability holds one entry per weekday. A day is active exactly when it has at least one period.
type Availability map[Weekday]DayAvailability

func NewAvailability() Availability {
	a := make(Availability, len(weekdays))
	for _, d := range weekdays {
		a[d] = DayAvailability{Active: false, Periods: []string{}}
	}
	return a
}

// Normalize fills missing weekdays, drops unknown or repeated periods, keeps catalog order
// and recomputes the active flag.
func (a Availability) Normalize() Availability {
	out := NewAvailability()
	for day, da := range a {
		if !IsValidWeekday(string(day)) {
			continue
		}
		ps := make([]string, 0, len(da.Periods))
		for _, id := range PeriodIDs() {
			if slices.Contains(da.Periods, id) {
				ps = append(ps, id)
			}
		}
		out[day] = DayAvailability{Active: len(ps) > 0, Periods: ps}
	}
	return out
}

// ToggleDay switches a whole weekday: turning it on fills every period, turning it off empties it.
func (a Availability) ToggleDay(day Weekday) {
	if a[day].Active {
		a[day] = DayAvailability{Active: false, Periods: []string{}}
		return
	}
	a[day] = DayAvailability{Active: true, Periods: PeriodIDs()}
}

func (a Availability) TogglePeriod(day Weekday, period string) {
	current := a[day].Periods
	var ps []string
	if slices.Contains(current, period) {
		ps = slices.DeleteFunc(slices.Clone(current), func(p string) bool { return p == period })
	} else {
		ps = append(slices.Clone(current), period)
	}
	if ps == nil {
		ps = []string{}
	}
	a[day] = DayAvailability{Active: len(ps) > 0, Periods: ps}
}

func (a Availability) Allows(d time.Weekday, period string) bool {
	da, ok := a[WeekdayOf(d)]
	if !ok {
		return false
	}
	return da.Active && slices.Contains(da.Periods, period)
}

type Caregiver struct {
	ID           int64        `json:"id"`
	Name         string       `json:"nome"`
	Phone        string       `json:"telefone"`
	Avatar       *string      `json:"avatar"`
	Color        string       `json:"cor"`
	Availability Availability `json:"disponibilidade,omitempty"`
}

// FormattedPhone renders a Brazilian number as (DD) NNNNN-NNNN; partial numbers are
// formatted as far as their digits go.
func (c *Caregiver) FormattedPhone() string {
	digits := strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}
		return -1
	}, c.Phone)

	switch {
	case len(digits) <= 2:
		return digits
	case len(digits) <= 7:
		return "(" + digits[:2] + ") " + digits[2:]
	case len(digits) <= 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:11]
	}
}
