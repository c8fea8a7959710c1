package daterange

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// PromptResult carries the outcome of an interactive date selection.
type PromptResult struct {
	Range Range
	// Auto is true when the range came from automatic calculation (timeout
	// or empty input) rather than the user's typed dates.
	Auto bool
}

// Prompt reads one line of the form "2025-02-13 2025-02-17" from r. When the
// timeout elapses first, or the user submits an empty line, the automatic
// calculation takes over; this mirrors the countdown behaviour of the
// desktop dialog the tool replaces. A malformed line is an error, not a
// silent fallback.
func Prompt(r io.Reader, timeout time.Duration, clock Clock) (PromptResult, error) {
	type lineResult struct {
		text string
		err  error
	}

	lines := make(chan lineResult, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		if scanner.Scan() {
			lines <- lineResult{text: scanner.Text()}
			return
		}
		lines <- lineResult{err: scanner.Err()}
	}()

	var text string
	select {
	case result := <-lines:
		if result.err != nil {
			return PromptResult{}, fmt.Errorf("read date range input: %w", result.err)
		}
		text = strings.TrimSpace(result.text)
	case <-time.After(timeout):
	}

	if text == "" {
		auto, err := Auto(clock)
		if err != nil {
			return PromptResult{}, err
		}
		return PromptResult{Range: auto, Auto: true}, nil
	}

	parsed, err := ParseDatePair(text)
	if err != nil {
		return PromptResult{}, err
	}
	return PromptResult{Range: parsed}, nil
}

// ParseDatePair parses "YYYY-MM-DD YYYY-MM-DD" into a Range.
func ParseDatePair(text string) (Range, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Range{}, fmt.Errorf("expected two dates (start end), got %q", text)
	}

	start, err := time.ParseInLocation("2006-01-02", fields[0], time.Local)
	if err != nil {
		return Range{}, fmt.Errorf("parse start date %q: %w", fields[0], err)
	}
	end, err := time.ParseInLocation("2006-01-02", fields[1], time.Local)
	if err != nil {
		return Range{}, fmt.Errorf("parse end date %q: %w", fields[1], err)
	}

	return New(start, end)
}
