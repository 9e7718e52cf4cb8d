package schedule

import (
	"testing"
	"time"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		rec  Recurrence
		want string
	}{
		{Recurrence{Kind: Weekly, Weekday: time.Monday}, "Mondays"},
		{Recurrence{Kind: Daily, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday}}, "Mon, Wed, Fri"},
		{Recurrence{Kind: Daily, Weekdays: []time.Weekday{0, 1, 2, 3, 4, 5, 6}}, "Daily"},
		{Recurrence{Kind: MonthlyByDate, MonthDay: 15}, "Monthly on the 15th"},
		{Recurrence{Kind: MonthlyByDate, MonthDay: 1}, "Monthly on the 1st"},
		{Recurrence{Kind: MonthlyByDate, MonthDay: 22}, "Monthly on the 22nd"},
		{Recurrence{Kind: MonthlyByWeekday, Weekday: time.Tuesday, Week: 2}, "2nd Tuesday of each month"},
	}

	for _, c := range cases {
		if got := c.rec.Describe(); got != c.want {
			t.Errorf("Describe() = %q, want %q", got, c.want)
		}
	}
}

func TestDescribeSortsWeekdays(t *testing.T) {
	rec := Recurrence{Kind: Daily, Weekdays: []time.Weekday{time.Friday, time.Monday}}
	if got := rec.Describe(); got != "Mon, Fri" {
		t.Errorf("Describe() = %q, want %q", got, "Mon, Fri")
	}
}

func TestNextWeekly(t *testing.T) {
	rec := Recurrence{Kind: Weekly, Weekday: time.Monday}

	// 2025-06-02 is a Monday. Next occurrence must be strictly after.
	from := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	next, err := rec.Next(from)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestNextMonthlyByWeekday(t *testing.T) {
	// 2nd Tuesday of each month
	rec := Recurrence{Kind: MonthlyByWeekday, Weekday: time.Tuesday, Week: 2}

	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	next, err := rec.Next(from)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestNextSkipsShortMonths(t *testing.T) {
	rec := Recurrence{Kind: MonthlyByDate, MonthDay: 31}

	from := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	next, err := rec.Next(from)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	// February and April have no 31st; March does.
	want := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestValidate(t *testing.T) {
	bad := []Recurrence{
		{Kind: "biweekly"},
		{Kind: Daily},
		{Kind: MonthlyByDate, MonthDay: 0},
		{Kind: MonthlyByDate, MonthDay: 32},
		{Kind: MonthlyByWeekday, Weekday: time.Friday, Week: 6},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", r)
		}
	}

	good := Recurrence{Kind: Weekly, Weekday: time.Sunday}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	rec := Recurrence{Kind: MonthlyByWeekday, Weekday: time.Saturday, Week: 1}
	parsed, err := Parse(rec.JSON())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Kind != rec.Kind || parsed.Weekday != rec.Weekday || parsed.Week != rec.Week {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, rec)
	}
}
