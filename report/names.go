// Package report resolves worksheet names and writes comparison results into
// the Weekly Report workbook.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrWorksheetNotFound means no worksheet matched the expected name under any
// matching tier. Callers must surface this rather than creating a blank
// report.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// MFASheetPrefix heads the per-month MFA / AD EDS worksheets.
const MFASheetPrefix = "MFA, AD EDS"

// ERSheetName is the per-year no-logon worksheet, e.g. "ER 2025".
func ERSheetName(year string) string {
	return "ER " + year
}

// GSNvsADSheetName is the per-year AD comparison worksheet.
func GSNvsADSheetName(year string) string {
	return "GSN VS AD " + year
}

// GSNvsERSheetName is the per-period comparison worksheet, named with the
// abbreviated date range, e.g. "GSN VS ER 13-17 Feb 2025".
func GSNvsERSheetName(abbreviatedRange string) string {
	return "GSN VS ER " + abbreviatedRange
}

// MFASheetName is the expected per-month worksheet name with the full month.
func MFASheetName(monthName, year string) string {
	return fmt.Sprintf("%s %s %s", MFASheetPrefix, monthName, year)
}

// ResolveMonthSheet finds the MFA / AD EDS worksheet for a month across three
// tiers: full month name plus year, prefix plus abbreviated month plus year,
// then any sheet carrying the month (full or abbreviated) and the year as
// independent substrings. Sheets are hand-named, so drift is expected.
func ResolveMonthSheet(sheets []string, monthName, year string) (string, error) {
	exact := fmt.Sprintf("%s %s", MFASheetPrefix, monthName)
	for _, sheet := range sheets {
		if strings.Contains(sheet, exact) && strings.Contains(sheet, year) {
			return sheet, nil
		}
	}

	abbr := monthName[:3]
	for _, sheet := range sheets {
		if strings.Contains(sheet, MFASheetPrefix) &&
			strings.Contains(sheet, abbr) && strings.Contains(sheet, year) {
			return sheet, nil
		}
	}

	for _, sheet := range sheets {
		if !strings.Contains(sheet, year) {
			continue
		}
		if strings.Contains(sheet, monthName) || strings.Contains(sheet, abbr) {
			return sheet, nil
		}
	}

	return "", fmt.Errorf("%w: no sheet for %s %s", ErrWorksheetNotFound, monthName, year)
}

// AvailableName returns desired if unused, otherwise the first free name in
// the sequence "desired (copy)", "desired (copy 2)" up to 100, finally a
// parenthesized timestamp suffix so the write can always proceed.
func AvailableName(exists func(string) bool, desired string, now time.Time) string {
	if !exists(desired) {
		return desired
	}

	candidate := desired + " (copy)"
	if !exists(candidate) {
		return candidate
	}

	for n := 2; n <= 100; n++ {
		candidate = fmt.Sprintf("%s (copy %d)", desired, n)
		if !exists(candidate) {
			return candidate
		}
	}

	return fmt.Sprintf("%s (%s)", desired, now.Format("20060102_150405"))
}
