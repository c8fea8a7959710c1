package report

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"weeklyreport/compare"
	"weeklyreport/internal/daterange"
	"weeklyreport/spreadsheet"
)

const (
	headerGray   = "AEAAAA"
	matchPink    = "FFB6C1"
	tabGold      = "F3E5AB"
	headerYellow = "FFFF00"
	monthBlue    = "007BFF"
)

// Writer appends comparison results to the Weekly Report workbook. Cell and
// worksheet failures are fatal; cosmetic failures (table object, tab color)
// are logged and tolerated so a styling hiccup never loses the data.
type Writer struct {
	wb    *spreadsheet.Workbook
	log   zerolog.Logger
	clock daterange.Clock
}

func NewWriter(wb *spreadsheet.Workbook, log zerolog.Logger, clock daterange.Clock) *Writer {
	return &Writer{wb: wb, log: log, clock: clock}
}

// WriteGSNvsER creates the per-period comparison sheet: both collections
// sorted side by side with match highlighting and a table object, then the
// two difference sections and the count summary at column D.
func (w *Writer) WriteGSNvsER(r daterange.Range, gsn, er []string, diff compare.Result) (string, error) {
	desired := GSNvsERSheetName(r.Format(false))
	name := AvailableName(w.wb.HasSheet, desired, w.clock.Now())

	file := w.wb.File()
	if _, err := file.NewSheet(name); err != nil {
		return "", fmt.Errorf("create worksheet %s: %w", name, err)
	}

	sortedGSN := compare.Normalize(gsn)
	sortedER := compare.Normalize(er)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("header style: %w", err)
	}
	if err := w.setCell(name, 1, 1, "GSN", headerStyle); err != nil {
		return "", err
	}
	if err := w.setCell(name, 2, 1, "ER", headerStyle); err != nil {
		return "", err
	}

	for i, value := range sortedGSN {
		if err := w.setCell(name, 1, i+2, value, 0); err != nil {
			return "", err
		}
	}
	for i, value := range sortedER {
		if err := w.setCell(name, 2, i+2, value, 0); err != nil {
			return "", err
		}
	}

	maxRow := len(sortedGSN)
	if len(sortedER) > maxRow {
		maxRow = len(sortedER)
	}
	maxRow++ // header row

	w.addTable(name, maxRow)

	if err := w.highlightMatches(name, sortedGSN, sortedER); err != nil {
		return "", err
	}

	if err := file.SetSheetProps(name, &excelize.SheetPropsOptions{TabColorRGB: strPtr(tabGold)}); err != nil {
		w.log.Warn().Err(err).Str("sheet", name).Msg("could not set tab color")
	}

	nextRow, err := w.writeSection(name, "In GSN but not in ER", diff.MissingInSecond, 4, 1)
	if err != nil {
		return "", err
	}
	nextRow, err = w.writeSection(name, "In ER but not in GSN", diff.MissingInFirst, 4, nextRow+1)
	if err != nil {
		return "", err
	}
	if err := w.writeCounts(name, 4, nextRow+1, len(sortedER), len(sortedGSN)); err != nil {
		return "", err
	}

	w.log.Info().
		Str("sheet", name).
		Int("gsn", len(sortedGSN)).
		Int("er", len(sortedER)).
		Msg("GSN VS ER worksheet written")
	return name, nil
}

// AppendERNoLogon appends the no-logon block for one period to the per-year
// ER sheet: a merged gray range header over columns A-C, then one bordered
// row per hostname/serial pair, or a merged NIL row when the list is empty.
// A period already present in the sheet is skipped so weekly re-runs stay
// idempotent.
func (w *Writer) AppendERNoLogon(r daterange.Range, hostnames, serials []string) error {
	name := ERSheetName(r.Year())
	if err := w.ensureSheet(name); err != nil {
		return err
	}

	formatted := r.Format(false)
	if found, err := w.valueInFirstColumn(name, formatted); err != nil {
		return err
	} else if found {
		w.log.Warn().Str("sheet", name).Str("range", formatted).Msg("period already present, skipping append")
		return nil
	}

	startRow, err := w.nextFreeRow(name)
	if err != nil {
		return err
	}

	if err := w.mergedHeader(name, formatted, startRow, 1, 3, headerGray, 0, ""); err != nil {
		return err
	}

	if len(hostnames) == 0 {
		if err := w.writeNIL(name, 1, 3, startRow+1); err != nil {
			return err
		}
		w.log.Info().Str("sheet", name).Msg("no devices in the 31-60 day bucket, wrote NIL")
		return nil
	}

	bordered, err := w.borderedStyle()
	if err != nil {
		return err
	}
	for i, hostname := range hostnames {
		row := startRow + 1 + i
		if err := w.setCell(name, 1, row, hostname, bordered); err != nil {
			return err
		}
		serial := ""
		if i < len(serials) {
			serial = serials[i]
		}
		if err := w.setCell(name, 2, row, serial, bordered); err != nil {
			return err
		}
		if err := w.setCell(name, 3, row, "", bordered); err != nil {
			return err
		}
	}

	w.log.Info().Str("sheet", name).Int("rows", len(hostnames)).Msg("ER no-logon block appended")
	return nil
}

// AppendGSNvsAD appends one period's GSN/AD comparison to the per-year
// sheet: an optional month header when the period opens the month, the
// merged gray range header, the six yellow column headers, and the two
// difference columns at A and D.
func (w *Writer) AppendGSNvsAD(r daterange.Range, gsn, ad []string) (string, error) {
	name := GSNvsADSheetName(r.Year())
	formatted := r.Format(true)

	if w.wb.HasSheet(name) {
		found, err := w.valueInFirstColumn(name, formatted)
		if err != nil {
			return "", err
		}
		if found {
			name = AvailableName(w.wb.HasSheet, name, w.clock.Now())
			w.log.Warn().Str("sheet", name).Str("range", formatted).Msg("period already present, writing to copy sheet")
		}
	}
	if err := w.ensureSheet(name); err != nil {
		return "", err
	}

	lastRow, err := w.nextFreeRow(name)
	if err != nil {
		return "", err
	}
	monthRow := lastRow + 1 // one blank row between periods

	startRow := monthRow
	if r.Start.Day() < 5 {
		month := strings.ToUpper(r.Start.Month().String())
		if err := w.mergedHeader(name, month, monthRow, 1, 6, "", 12, monthBlue); err != nil {
			return "", err
		}
		startRow = monthRow + 1
	}

	if err := w.mergedHeader(name, formatted+" GSN VS AD", startRow, 1, 6, headerGray, 0, ""); err != nil {
		return "", err
	}

	columnStyle, err := w.columnHeaderStyle()
	if err != nil {
		return "", err
	}
	headers := []string{"In GSN not in AD", "Remarks", "Action", "In AD not in GSN", "Remarks", "Action"}
	headerRow := startRow + 1
	for i, header := range headers {
		if err := w.setCell(name, i+1, headerRow, header, columnStyle); err != nil {
			return "", err
		}
	}

	diff := compare.Compare(gsn, ad)
	missingInAD := diff.MissingInSecond
	missingInGSN := diff.MissingInFirst

	maxLen := len(missingInAD)
	if len(missingInGSN) > maxLen {
		maxLen = len(missingInGSN)
	}

	bordered, err := w.borderedStyle()
	if err != nil {
		return "", err
	}
	for i := 0; i < maxLen; i++ {
		row := headerRow + 1 + i
		for col := 1; col <= 6; col++ {
			value := ""
			switch {
			case col == 1 && i < len(missingInAD):
				value = missingInAD[i]
			case col == 4 && i < len(missingInGSN):
				value = missingInGSN[i]
			}
			if err := w.setCell(name, col, row, value, bordered); err != nil {
				return "", err
			}
		}
	}

	w.log.Info().
		Str("sheet", name).
		Int("in_gsn_not_ad", len(missingInAD)).
		Int("in_ad_not_gsn", len(missingInGSN)).
		Msg("GSN VS AD block appended")
	return name, nil
}

// writeSection writes one titled 2-column difference block and returns the
// row after it. An empty list still produces a visible merged NIL row.
func (w *Writer) writeSection(sheet, title string, values []string, startCol, startRow int) (int, error) {
	titleStyle, err := w.boldBorderedStyle()
	if err != nil {
		return 0, err
	}
	if err := w.setCell(sheet, startCol, startRow, title, titleStyle); err != nil {
		return 0, err
	}
	if err := w.setCell(sheet, startCol+1, startRow, "Remarks", titleStyle); err != nil {
		return 0, err
	}

	if len(values) == 0 {
		if err := w.writeNIL(sheet, startCol, startCol+1, startRow+1); err != nil {
			return 0, err
		}
		return startRow + 2, nil
	}

	bordered, err := w.borderedStyle()
	if err != nil {
		return 0, err
	}
	row := startRow + 1
	for _, value := range values {
		if err := w.setCell(sheet, startCol, row, value, bordered); err != nil {
			return 0, err
		}
		if err := w.setCell(sheet, startCol+1, row, "", bordered); err != nil {
			return 0, err
		}
		row++
	}
	return row, nil
}

func (w *Writer) writeCounts(sheet string, startCol, startRow, erCount, gsnCount int) error {
	labelStyle, err := w.wb.File().NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("count label style: %w", err)
	}
	bordered, err := w.borderedStyle()
	if err != nil {
		return err
	}

	labels := []string{"ER", "GSN"}
	counts := []int{erCount, gsnCount}
	for i := range labels {
		if err := w.setCell(sheet, startCol, startRow+i, labels[i], labelStyle); err != nil {
			return err
		}
		if err := w.setCell(sheet, startCol+1, startRow+i, counts[i], bordered); err != nil {
			return err
		}
	}
	return nil
}

// writeNIL writes the mandatory placeholder for an empty section: one merged,
// centered, bordered cell holding the literal "NIL".
func (w *Writer) writeNIL(sheet string, startCol, endCol, row int) error {
	start, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return fmt.Errorf("nil cell name: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(endCol, row)
	if err != nil {
		return fmt.Errorf("nil cell name: %w", err)
	}

	file := w.wb.File()
	if err := file.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("merge NIL range %s:%s: %w", start, end, err)
	}

	style, err := file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("nil style: %w", err)
	}
	if err := file.SetCellValue(sheet, start, "NIL"); err != nil {
		return fmt.Errorf("write NIL at %s: %w", start, err)
	}
	if err := file.SetCellStyle(sheet, start, end, style); err != nil {
		return fmt.Errorf("style NIL range %s:%s: %w", start, end, err)
	}
	return nil
}

func (w *Writer) mergedHeader(sheet, text string, row, startCol, endCol int, bg string, fontSize float64, fontColor string) error {
	start, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return fmt.Errorf("header cell name: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(endCol, row)
	if err != nil {
		return fmt.Errorf("header cell name: %w", err)
	}

	file := w.wb.File()
	if err := file.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("merge header %s:%s: %w", start, end, err)
	}

	font := &excelize.Font{Bold: true}
	if fontSize > 0 {
		font.Size = fontSize
	}
	if fontColor != "" {
		font.Color = fontColor
	}
	style := &excelize.Style{
		Font:      font,
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	}
	if bg != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}}
	}
	styleID, err := file.NewStyle(style)
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := file.SetCellValue(sheet, start, text); err != nil {
		return fmt.Errorf("write header at %s: %w", start, err)
	}
	if err := file.SetCellStyle(sheet, start, end, styleID); err != nil {
		return fmt.Errorf("style header %s:%s: %w", start, end, err)
	}
	return nil
}

// addTable attaches the copy-safe table object over both data columns. Table
// names collide across repeated runs on the same workbook, so the name takes
// a generation timestamp.
func (w *Writer) addTable(sheet string, maxRow int) {
	suffix := w.clock.Now().Format("20060102_150405")
	noStripes := false
	err := w.wb.File().AddTable(sheet, &excelize.Table{
		Range:          fmt.Sprintf("A1:B%d", maxRow),
		Name:           "GSN_ER_Table_" + suffix,
		StyleName:      "TableStyleLight15",
		ShowRowStripes: &noStripes,
	})
	if err != nil {
		w.log.Warn().Err(err).Str("sheet", sheet).Msg("could not create table, continuing without it")
	}
}

// highlightMatches fills cells pink when the value also appears in the other
// collection, and forces white otherwise.
func (w *Writer) highlightMatches(sheet string, sortedGSN, sortedER []string) error {
	pink, err := w.fillStyle(matchPink)
	if err != nil {
		return err
	}
	white, err := w.fillStyle("FFFFFF")
	if err != nil {
		return err
	}

	erSet := toSet(sortedER)
	for i, value := range sortedGSN {
		style := white
		if _, ok := erSet[value]; ok {
			style = pink
		}
		if err := w.styleCell(sheet, 1, i+2, style); err != nil {
			return err
		}
	}

	gsnSet := toSet(sortedGSN)
	for i, value := range sortedER {
		style := white
		if _, ok := gsnSet[value]; ok {
			style = pink
		}
		if err := w.styleCell(sheet, 2, i+2, style); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) ensureSheet(name string) error {
	if w.wb.HasSheet(name) {
		return nil
	}
	if _, err := w.wb.File().NewSheet(name); err != nil {
		return fmt.Errorf("create worksheet %s: %w", name, err)
	}
	w.log.Info().Str("sheet", name).Msg("worksheet created")
	return nil
}

// nextFreeRow is the row after the last used row of the sheet.
func (w *Writer) nextFreeRow(sheet string) (int, error) {
	rows, err := w.wb.File().GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read rows of %s: %w", sheet, err)
	}
	return len(rows) + 1, nil
}

// valueInFirstColumn reports whether a period header for value is already in
// the sheet. Substring match, since some headers carry a report-kind suffix
// after the range.
func (w *Writer) valueInFirstColumn(sheet, value string) (bool, error) {
	rows, err := w.wb.File().GetRows(sheet)
	if err != nil {
		return false, fmt.Errorf("read rows of %s: %w", sheet, err)
	}
	for _, row := range rows {
		if len(row) > 0 && strings.Contains(strings.TrimSpace(row[0]), value) {
			return true, nil
		}
	}
	return false, nil
}

func (w *Writer) setCell(sheet string, col, row int, value any, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}
	if err := w.wb.File().SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("write cell %s!%s: %w", sheet, cell, err)
	}
	if styleID != 0 {
		if err := w.wb.File().SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("style cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func (w *Writer) styleCell(sheet string, col, row, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}
	if err := w.wb.File().SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("style cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func (w *Writer) borderedStyle() (int, error) {
	id, err := w.wb.File().NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return 0, fmt.Errorf("bordered style: %w", err)
	}
	return id, nil
}

func (w *Writer) boldBorderedStyle() (int, error) {
	id, err := w.wb.File().NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: thinBorders(),
	})
	if err != nil {
		return 0, fmt.Errorf("bold bordered style: %w", err)
	}
	return id, nil
}

func (w *Writer) columnHeaderStyle() (int, error) {
	id, err := w.wb.File().NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerYellow}},
		Border:    thinBorders(),
	})
	if err != nil {
		return 0, fmt.Errorf("column header style: %w", err)
	}
	return id, nil
}

func (w *Writer) fillStyle(color string) (int, error) {
	id, err := w.wb.File().NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, fmt.Errorf("fill style %s: %w", color, err)
	}
	return id, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

func strPtr(s string) *string { return &s }
