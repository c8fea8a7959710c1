package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"weeklyreport/internal/timeutil"
)

// Range is a closed calendar interval for one reporting period. End never
// precedes Start; construction enforces it so downstream formatting can rely
// on it.
type Range struct {
	Start time.Time
	End   time.Time
}

var ErrInvalidRange = errors.New("end date precedes start date")

// ErrNoRunDay is returned by Auto when no run day can be derived from the
// current date.
var ErrNoRunDay = errors.New("not a report run day")

func New(start, end time.Time) (Range, error) {
	start = timeutil.StartOfDay(start)
	end = timeutil.StartOfDay(end)
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: start %s, end %s", ErrInvalidRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Range{Start: start, End: end}, nil
}

// Format renders the canonical display string: "5-9 May 2025" when both dates
// share a month and year, "30 May - 2 Jun 2025" otherwise. fullMonth keeps
// the unabbreviated month names.
func (r Range) Format(fullMonth bool) string {
	startMonth := monthName(r.Start.Month(), fullMonth)
	if timeutil.SameMonth(r.Start, r.End) {
		return fmt.Sprintf("%d-%d %s %d", r.Start.Day(), r.End.Day(), startMonth, r.Start.Year())
	}
	endMonth := monthName(r.End.Month(), fullMonth)
	return fmt.Sprintf("%d %s - %d %s %d", r.Start.Day(), startMonth, r.End.Day(), endMonth, r.End.Year())
}

// Year is the reporting year, taken from the end date for ranges spanning a
// year boundary.
func (r Range) Year() string {
	return fmt.Sprintf("%d", r.End.Year())
}

func monthName(m time.Month, full bool) string {
	name := m.String()
	if full {
		return name
	}
	return name[:3]
}

// Abbreviate rewrites full month names inside an already formatted string to
// their 3-letter forms. Strings that only carry abbreviated names pass
// through unchanged.
func Abbreviate(formatted string) string {
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		formatted = strings.ReplaceAll(formatted, full, full[:3])
	}
	return formatted
}

var (
	sameMonthPattern  = regexp.MustCompile(`^(\d+)-(\d+)\s+([A-Za-z]+)\s+(\d{4})`)
	crossMonthPattern = regexp.MustCompile(`^(\d+)\s+([A-Za-z]+)\s+-\s+(\d+)\s+([A-Za-z]+)\s+(\d{4})`)
	genericPattern    = regexp.MustCompile(`\d+-\d+\s+[A-Za-z]+\s+\d{4}`)
	yearPattern       = regexp.MustCompile(`(\d{4})`)
)

// LooksLikeRange reports whether text contains a "D-D Month YYYY" shaped
// substring. The block extractor uses this as a stop sentinel for the next
// period's header.
func LooksLikeRange(text string) bool {
	return genericPattern.MatchString(text)
}

// Components are the month and year extracted from a formatted range string,
// used to pick per-month worksheets. For cross-month strings the end month
// wins, matching the worksheet naming convention.
type Components struct {
	MonthName string
	Month     time.Month
	Year      string
}

// ParseComponents extracts month/year from a formatted date range. When the
// string matches no known shape the current clock month and year are used;
// that substitution is the caller's cue to log a warning, not an error.
func ParseComponents(formatted string, clock Clock) (Components, bool) {
	if m := sameMonthPattern.FindStringSubmatch(formatted); m != nil {
		if month, ok := parseMonth(m[3]); ok {
			return Components{MonthName: month.String(), Month: month, Year: m[4]}, true
		}
	}
	if m := crossMonthPattern.FindStringSubmatch(formatted); m != nil {
		if month, ok := parseMonth(m[4]); ok {
			return Components{MonthName: month.String(), Month: month, Year: m[5]}, true
		}
	}
	now := clock.Now()
	return Components{MonthName: now.Month().String(), Month: now.Month(), Year: fmt.Sprintf("%d", now.Year())}, false
}

// ParseYear pulls the 4-digit year out of a formatted range, falling back to
// the clock's current year.
func ParseYear(formatted string, clock Clock) string {
	if m := yearPattern.FindStringSubmatch(formatted); m != nil {
		return m[1]
	}
	return fmt.Sprintf("%d", clock.Now().Year())
}

func parseMonth(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, true
		}
	}
	return 0, false
}

// Clock supplies the current time so run-day checks and automatic range
// calculation stay testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock pins Now to a single instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

// IsRunDay reports whether date is a designated run day: a Friday or the
// last day of the month, and never a weekend day other than a month-end
// Friday pairing.
func IsRunDay(date time.Time) bool {
	if timeutil.IsWeekend(date) {
		return false
	}
	return timeutil.IsFriday(date) || timeutil.IsLastDayOfMonth(date)
}

// Auto derives the reporting range without user input. From the clock's
// current date it finds the effective run day (today if today qualifies,
// otherwise the next Friday), takes the Monday of that week as the start and
// clips it to the first of the month when the week straddles a month
// boundary.
func Auto(clock Clock) (Range, error) {
	current := timeutil.StartOfDay(clock.Now())

	end := current
	if !IsRunDay(end) {
		for end.Weekday() != time.Friday {
			end = end.AddDate(0, 0, 1)
		}
	}

	start := timeutil.MondayOfWeek(end)
	if !timeutil.SameMonth(start, end) {
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	}

	return New(start, end)
}
