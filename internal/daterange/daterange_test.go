package daterange

import (
	"strings"
	"testing"
	"time"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := ParseDatePair(start + " " + end)
	if err != nil {
		t.Fatalf("parse range %s %s: %v", start, end, err)
	}
	return r
}

func TestFormat_SameMonth(t *testing.T) {
	t.Parallel()

	r := mustRange(t, "2025-06-02", "2025-06-05")
	if got := r.Format(false); got != "2-5 Jun 2025" {
		t.Fatalf("expected %q, got %q", "2-5 Jun 2025", got)
	}
	if got := r.Format(true); got != "2-5 June 2025" {
		t.Fatalf("expected %q, got %q", "2-5 June 2025", got)
	}
}

func TestFormat_SingleDay(t *testing.T) {
	t.Parallel()

	r := mustRange(t, "2025-06-02", "2025-06-02")
	if got := r.Format(false); got != "2-2 Jun 2025" {
		t.Fatalf("expected %q, got %q", "2-2 Jun 2025", got)
	}
}

func TestFormat_CrossMonth(t *testing.T) {
	t.Parallel()

	r := mustRange(t, "2025-05-30", "2025-06-02")
	if got := r.Format(false); got != "30 May - 2 Jun 2025" {
		t.Fatalf("expected %q, got %q", "30 May - 2 Jun 2025", got)
	}
	if got := r.Format(true); got != "30 May - 2 June 2025" {
		t.Fatalf("expected %q, got %q", "30 May - 2 June 2025", got)
	}
}

func TestFormat_FebruaryScenario(t *testing.T) {
	t.Parallel()

	r := mustRange(t, "2025-02-13", "2025-02-17")
	if got := r.Format(false); got != "13-17 Feb 2025" {
		t.Fatalf("expected %q, got %q", "13-17 Feb 2025", got)
	}
}

func TestNew_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 5, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)

	if _, err := New(start, end); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestAbbreviate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2-3 June 2025", "2-3 Jun 2025"},
		{"30 May - 2 June 2025", "30 May - 2 Jun 2025"},
		{"13-17 Feb 2025", "13-17 Feb 2025"},
	}

	for _, tc := range cases {
		if got := Abbreviate(tc.in); got != tc.want {
			t.Errorf("Abbreviate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeRange(t *testing.T) {
	t.Parallel()

	if !LooksLikeRange("5-9 May 2025") {
		t.Fatalf("expected match for plain range")
	}
	if !LooksLikeRange("  12-13 Jun 2025 GSN VS AD") {
		t.Fatalf("expected match inside longer text")
	}
	if LooksLikeRange("SGASC001") {
		t.Fatalf("unexpected match for hostname")
	}
	if LooksLikeRange("") {
		t.Fatalf("unexpected match for empty string")
	}
}

func TestParseComponents(t *testing.T) {
	t.Parallel()

	clock := FixedClock{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)}

	got, ok := ParseComponents("5-9 May 2025", clock)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if got.MonthName != "May" || got.Year != "2025" {
		t.Fatalf("unexpected components: %+v", got)
	}

	// Cross-month strings resolve to the end month.
	got, ok = ParseComponents("30 May - 2 June 2025", clock)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if got.MonthName != "June" {
		t.Fatalf("expected end month June, got %q", got.MonthName)
	}

	// Unparseable input falls back to the clock.
	got, ok = ParseComponents("nonsense", clock)
	if ok {
		t.Fatalf("expected fallback for unparseable input")
	}
	if got.MonthName != "January" || got.Year != "2025" {
		t.Fatalf("unexpected fallback components: %+v", got)
	}
}

func TestParseYear(t *testing.T) {
	t.Parallel()

	clock := FixedClock{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)}

	if got := ParseYear("2-3 June 2025", clock); got != "2025" {
		t.Fatalf("expected 2025, got %q", got)
	}
	if got := ParseYear("no year here", clock); got != "2024" {
		t.Fatalf("expected clock fallback 2024, got %q", got)
	}
}

func TestAuto_Friday(t *testing.T) {
	t.Parallel()

	// 2025-04-18 is a Friday.
	clock := FixedClock{Time: time.Date(2025, 4, 18, 10, 0, 0, 0, time.Local)}
	r, err := Auto(clock)
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}

	if got := r.Format(true); got != "14-18 April 2025" {
		t.Fatalf("expected 14-18 April 2025, got %q", got)
	}
}

func TestAuto_MidWeekAdvancesToFriday(t *testing.T) {
	t.Parallel()

	// 2025-04-15 is a Tuesday; the next Friday is the 18th.
	clock := FixedClock{Time: time.Date(2025, 4, 15, 10, 0, 0, 0, time.Local)}
	r, err := Auto(clock)
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}

	if r.End.Day() != 18 || r.Start.Day() != 14 {
		t.Fatalf("expected 14-18, got %s", r.Format(false))
	}
}

func TestAuto_MonthEndClipsStart(t *testing.T) {
	t.Parallel()

	// 2025-06-30 is a Monday and the last day of June; Monday of that week
	// is the 30th itself, so no clipping applies and the range is one day.
	clock := FixedClock{Time: time.Date(2025, 6, 30, 8, 0, 0, 0, time.Local)}
	r, err := Auto(clock)
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}
	if got := r.Format(true); got != "30-30 June 2025" {
		t.Fatalf("expected 30-30 June 2025, got %q", got)
	}

	// 2025-10-31 is a Friday; Monday of that week is 27 October, same month,
	// so the full week survives.
	clock = FixedClock{Time: time.Date(2025, 10, 31, 8, 0, 0, 0, time.Local)}
	r, err = Auto(clock)
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}
	if got := r.Format(false); got != "27-31 Oct 2025" {
		t.Fatalf("expected 27-31 Oct 2025, got %q", got)
	}

	// 2025-05-02 is a Friday whose Monday (28 April) is in the previous
	// month; the start clips to 1 May.
	clock = FixedClock{Time: time.Date(2025, 5, 2, 8, 0, 0, 0, time.Local)}
	r, err = Auto(clock)
	if err != nil {
		t.Fatalf("auto range: %v", err)
	}
	if got := r.Format(false); got != "1-2 May 2025" {
		t.Fatalf("expected 1-2 May 2025, got %q", got)
	}
}

func TestIsRunDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local), true},  // Friday
		{time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local), true},  // Monday, month end
		{time.Date(2025, 4, 15, 0, 0, 0, 0, time.Local), false}, // Tuesday
		{time.Date(2025, 8, 31, 0, 0, 0, 0, time.Local), false}, // Sunday month end
	}

	for _, tc := range cases {
		if got := IsRunDay(tc.date); got != tc.want {
			t.Errorf("IsRunDay(%v) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestPrompt_UsesTypedDates(t *testing.T) {
	t.Parallel()

	clock := FixedClock{Time: time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local)}
	input := strings.NewReader("2025-02-13 2025-02-17\n")

	result, err := Prompt(input, time.Second, clock)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if result.Auto {
		t.Fatalf("expected typed dates, not auto fallback")
	}
	if got := result.Range.Format(false); got != "13-17 Feb 2025" {
		t.Fatalf("unexpected range %q", got)
	}
}

func TestPrompt_EmptyLineFallsBackToAuto(t *testing.T) {
	t.Parallel()

	clock := FixedClock{Time: time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local)}
	input := strings.NewReader("\n")

	result, err := Prompt(input, time.Second, clock)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !result.Auto {
		t.Fatalf("expected auto fallback")
	}
	if got := result.Range.Format(true); got != "14-18 April 2025" {
		t.Fatalf("unexpected auto range %q", got)
	}
}

func TestPrompt_MalformedLineIsAnError(t *testing.T) {
	t.Parallel()

	clock := FixedClock{Time: time.Date(2025, 4, 18, 0, 0, 0, 0, time.Local)}
	input := strings.NewReader("next week please\n")

	if _, err := Prompt(input, time.Second, clock); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}
