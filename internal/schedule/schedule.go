package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the recurrence pattern of a net
type Kind string

const (
	Weekly           Kind = "weekly"          // one fixed weekday
	Daily            Kind = "daily"           // a subset of weekdays
	MonthlyByDate    Kind = "monthly_date"    // fixed day of the month
	MonthlyByWeekday Kind = "monthly_weekday" // Nth weekday of the month
)

// Recurrence describes when a net meets
type Recurrence struct {
	Kind     Kind           `json:"kind"`
	Weekday  time.Weekday   `json:"weekday,omitempty"`  // weekly, monthly_weekday
	Weekdays []time.Weekday `json:"weekdays,omitempty"` // daily
	MonthDay int            `json:"monthDay,omitempty"` // monthly_date, 1..31
	Week     int            `json:"week,omitempty"`     // monthly_weekday, 1..5
}

// Parse decodes and validates a recurrence from its JSON form
func Parse(data []byte) (Recurrence, error) {
	var r Recurrence
	if err := json.Unmarshal(data, &r); err != nil {
		return Recurrence{}, fmt.Errorf("invalid schedule: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Recurrence{}, err
	}
	return r, nil
}

// Validate checks the recurrence fields against its kind
func (r Recurrence) Validate() error {
	switch r.Kind {
	case Weekly:
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return fmt.Errorf("weekly schedule: invalid weekday %d", r.Weekday)
		}
	case Daily:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("daily schedule: at least one weekday required")
		}
		for _, d := range r.Weekdays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("daily schedule: invalid weekday %d", d)
			}
		}
	case MonthlyByDate:
		if r.MonthDay < 1 || r.MonthDay > 31 {
			return fmt.Errorf("monthly schedule: day %d out of range", r.MonthDay)
		}
	case MonthlyByWeekday:
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return fmt.Errorf("monthly schedule: invalid weekday %d", r.Weekday)
		}
		if r.Week < 1 || r.Week > 5 {
			return fmt.Errorf("monthly schedule: week %d out of range", r.Week)
		}
	default:
		return fmt.Errorf("unknown schedule kind %q", r.Kind)
	}
	return nil
}

// Matches reports whether the net meets on the given calendar day
func (r Recurrence) Matches(day time.Time) bool {
	switch r.Kind {
	case Weekly:
		return day.Weekday() == r.Weekday
	case Daily:
		for _, d := range r.Weekdays {
			if day.Weekday() == d {
				return true
			}
		}
		return false
	case MonthlyByDate:
		return day.Day() == r.MonthDay
	case MonthlyByWeekday:
		return day.Weekday() == r.Weekday && (day.Day()-1)/7+1 == r.Week
	}
	return false
}

// Next returns the next matching day strictly after from.
// A recurrence like "monthly on the 31st" skips months without that date.
func (r Recurrence) Next(from time.Time) (time.Time, error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, err
	}
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i < 366; i++ {
		day = day.AddDate(0, 0, 1)
		if r.Matches(day) {
			return day, nil
		}
	}
	return time.Time{}, fmt.Errorf("no occurrence within a year")
}

// Describe renders the recurrence as a human-readable phrase,
// e.g. "Mondays", "Mon, Wed, Fri", "Monthly on the 15th",
// "2nd Tuesday of each month".
func (r Recurrence) Describe() string {
	switch r.Kind {
	case Weekly:
		return r.Weekday.String() + "s"
	case Daily:
		if len(r.Weekdays) == 7 {
			return "Daily"
		}
		names := make([]string, 0, len(r.Weekdays))
		for _, d := range sortedWeekdays(r.Weekdays) {
			names = append(names, d.String()[:3])
		}
		return strings.Join(names, ", ")
	case MonthlyByDate:
		return fmt.Sprintf("Monthly on the %s", ordinal(r.MonthDay))
	case MonthlyByWeekday:
		return fmt.Sprintf("%s %s of each month", ordinal(r.Week), r.Weekday)
	}
	return "Unscheduled"
}

// JSON returns the canonical encoded form for storage
func (r Recurrence) JSON() []byte {
	data, _ := json.Marshal(r)
	return data
}

func sortedWeekdays(days []time.Weekday) []time.Weekday {
	out := make([]time.Weekday, len(days))
	copy(out, days)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
