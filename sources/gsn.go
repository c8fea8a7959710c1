// Package sources loads the three hostname collections the weekly comparison
// consumes: the GSN hardware export, the ER endpoint report, and the AD
// directory query.
package sources

import (
	"fmt"

	"weeklyreport/spreadsheet"
)

// ReadGSN extracts hostnames from the hardware export: column A of the first
// sheet, from row 2 until the first empty cell.
func ReadGSN(path string) ([]string, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("gsn export has no sheets: %s", path)
	}
	sheet := sheets[0]

	var hostnames []string
	for row := 2; ; row++ {
		value, err := wb.CellValue(sheet, 1, row)
		if err != nil {
			return nil, err
		}
		if value == "" {
			break
		}
		hostnames = append(hostnames, value)
	}
	return hostnames, nil
}
