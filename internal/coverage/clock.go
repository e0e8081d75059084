package coverage

import (
	"errors"
	"fmt"
	"time"
)

const clockLayout = "15:04"

var ErrMalformedTime = errors.New("horário inválido")

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	if len(s) != len(clockLayout) {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Duration returns the hours from start to end. An end at or before the start
// crosses midnight, so the result is always in (0, 24].
func Duration(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	minutes := e.Minutes() - s.Minutes()
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60, nil
}
