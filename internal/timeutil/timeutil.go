package timeutil

import "time"

func IsWeekend(value time.Time) bool {
	weekday := value.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

func IsFriday(value time.Time) bool {
	return value.Weekday() == time.Friday
}

func IsLastDayOfMonth(value time.Time) bool {
	return value.Day() == LastDayOfMonth(value).Day()
}

// LastDayOfMonth returns the final calendar day of value's month.
func LastDayOfMonth(value time.Time) time.Time {
	firstOfNext := time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// MondayOfWeek returns the Monday of value's week (Sunday belongs to the
// preceding week).
func MondayOfWeek(value time.Time) time.Time {
	offset := int(value.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return StartOfDay(value).AddDate(0, 0, -offset)
}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
