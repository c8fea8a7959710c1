package sources

import (
	"fmt"
	"strings"

	"weeklyreport/spreadsheet"
)

// ERLayout pins the fixed column positions of the endpoint report export.
type ERLayout struct {
	HostnameColumn int
	StatusColumn   int
	SerialColumn   int
	StartRow       int
	// Prefixes whitelist the managed hostname families.
	Prefixes []string
	// StatusBucket selects the no-logon rows, e.g. "Between 31 and 60 days".
	StatusBucket string
}

// DefaultERLayout matches the export as currently produced: hostname in K,
// status in AK, serial in O, data from row 4.
func DefaultERLayout() ERLayout {
	return ERLayout{
		HostnameColumn: 11,
		StatusColumn:   37,
		SerialColumn:   15,
		StartRow:       4,
		Prefixes:       []string{"SGASC", "SGESC", "SGSC", "SGWSC", "SGXSC"},
		StatusBucket:   "Between 31 and 60 days",
	}
}

// ERData is the filtered endpoint report. NoLogon and Serials run in
// parallel: Serials[i] belongs to NoLogon[i].
type ERData struct {
	Hostnames []string
	NoLogon   []string
	Serials   []string
}

// ReadER walks the export's first sheet and keeps hostnames matching the
// layout's prefixes. Rows whose status falls in the no-logon bucket are
// additionally collected with their serial numbers.
func ReadER(path string, layout ERLayout) (ERData, error) {
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return ERData{}, err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return ERData{}, fmt.Errorf("er export has no sheets: %s", path)
	}
	sheet := sheets[0]

	var data ERData
	for row := layout.StartRow; ; row++ {
		hostname, err := wb.CellValue(sheet, layout.HostnameColumn, row)
		if err != nil {
			return ERData{}, err
		}
		if hostname == "" {
			break
		}
		if !hasAnyPrefix(hostname, layout.Prefixes) {
			continue
		}

		data.Hostnames = append(data.Hostnames, hostname)

		status, err := wb.CellValue(sheet, layout.StatusColumn, row)
		if err != nil {
			return ERData{}, err
		}
		if status != layout.StatusBucket {
			continue
		}
		serial, err := wb.CellValue(sheet, layout.SerialColumn, row)
		if err != nil {
			return ERData{}, err
		}
		data.NoLogon = append(data.NoLogon, hostname)
		data.Serials = append(data.Serials, serial)
	}
	return data, nil
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
