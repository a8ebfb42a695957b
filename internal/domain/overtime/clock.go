package overtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the rollover offset applied to end times past midnight.
const MinutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day in minutes since midnight.
// Values above 1439 mean "past midnight" after rollover.
type ClockTime int

// ParseClockTime parses "HH:MM" (or "HH:MM:SS", seconds ignored) into minutes since midnight.
func ParseClockTime(text string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}

	hours, err := parseClockField(parts[0], 23)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	minutes, err := parseClockField(parts[1], 59)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	if len(parts) == 3 {
		if _, err := parseClockField(parts[2], 59); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
		}
	}

	return ClockTime(hours*60 + minutes), nil
}

func parseClockField(field string, limit int) (int, error) {
	if len(field) == 0 || len(field) > 2 {
		return 0, ErrInvalidTimeFormat
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	v, err := strconv.Atoi(field)
	if err != nil || v < 0 || v > limit {
		return 0, ErrInvalidTimeFormat
	}
	return v, nil
}

// MustClockTime is ParseClockTime for compile-time constants.
func MustClockTime(text string) ClockTime {
	c, err := ParseClockTime(text)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the time as "HH:MM", wrapping values past midnight.
func (c ClockTime) String() string {
	m := int(c) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NormalizeEnd resolves overnight shifts so that the returned end is always after start.
func NormalizeEnd(start, end ClockTime) ClockTime {
	if end == 0 && start > 0 {
		return MinutesPerDay
	}
	if end <= start {
		return end + MinutesPerDay
	}
	return end
}

// WorkInterval is one continuous worked period, already normalized.
type WorkInterval struct {
	Start ClockTime
	End   ClockTime
}

// NewWorkInterval parses both ends and applies rollover.
func NewWorkInterval(start, end string) (WorkInterval, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return WorkInterval{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return WorkInterval{}, err
	}
	return WorkInterval{Start: s, End: NormalizeEnd(s, e)}, nil
}

// Duration returns the worked minutes.
func (i WorkInterval) Duration() int {
	return int(i.End - i.Start)
}

// Overlap returns the minutes of i that fall inside w.
func (i WorkInterval) Overlap(w Window) int {
	start := max(i.Start, w.Start)
	end := min(i.End, w.End)
	if end <= start {
		return 0
	}
	return int(end - start)
}

// Intersects reports whether i and o share any worked minute.
func (i WorkInterval) Intersects(o WorkInterval) bool {
	return i.Start < o.End && o.Start < i.End
}

// FormatMinutesAsDuration renders minutes as "{h}h {m}m".
func FormatMinutesAsDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayOfWeekName returns the English name of the weekday.
func DayOfWeekName(d time.Weekday) string {
	return dayNames[int(d)%7]
}

// ParseWorkDate parses a naive "YYYY-MM-DD" date. No timezone conversion is applied.
func ParseWorkDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, date)
	}
	return t, nil
}
