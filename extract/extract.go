// Package extract walks report worksheets and pulls out contiguous blocks of
// styled rows. The workbooks carry no machine-readable block delimiters, only
// visual cues left by editors, so boundaries are detected from sentinel fill
// colors, reappearing date-range headers, empty rows and literal markers.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"weeklyreport/internal/daterange"
	"weeklyreport/spreadsheet"
)

// ErrStartNotFound means no row matched the block's start marker. No partial
// data is returned in that case.
var ErrStartNotFound = errors.New("block start marker not found")

// Cell is one extracted cell, already normalized for rendering: empty cells
// carry "<br>", bold cells are wrapped in <b></b>.
type Cell struct {
	Content    string
	Background string
	FontColor  string
	Bold       bool
}

// Row is one extracted worksheet row. Colspan is greater than 1 when the row
// is a merged header spanning the block width; only the first cell carries
// content then.
type Row struct {
	Cells   []Cell
	Colspan int
}

// Block is the extraction result for one report section.
type Block struct {
	Sheet    string
	StartRow int
	Rows     []Row
	// Capped is set when the safety row cap ended the block instead of a
	// stop condition. Partial results are still complete for the caller.
	Capped bool
}

// Spec parameterizes one extraction: where the block starts, how wide it is,
// and which conditions end it. The per-kind constructors in variants.go fill
// these in.
type Spec struct {
	Sheet     string
	StartText string
	// SearchColumn is scanned for StartText; zero means FirstColumn.
	SearchColumn int
	// SearchLimit bounds the start scan; zero means 500 rows.
	SearchLimit int
	// FallbackToFirstRow starts the block at row 1 instead of failing when
	// no row matches StartText.
	FallbackToFirstRow bool

	FirstColumn int
	ColumnCount int

	// StopMarker ends the block when MarkerColumn holds exactly this value.
	// Empty disables the check.
	StopMarker   string
	MarkerColumn int
	// IncludeMarkerRow keeps the StopMarker row as the block's last row.
	IncludeMarkerRow bool

	// KeepEmptyRows carries blank rows into the block instead of treating
	// them as a boundary, for layouts with blank separator rows that end
	// only at StopMarker.
	KeepEmptyRows bool

	// SentinelFills are "#RRGGBB" fill colors that end the block when seen
	// in any of the first 3 block columns.
	SentinelFills []string

	// MaxRows is the hard safety cap; zero means 100.
	MaxRows int
}

func (s Spec) withDefaults() Spec {
	if s.SearchColumn == 0 {
		s.SearchColumn = s.FirstColumn
	}
	if s.SearchLimit == 0 {
		s.SearchLimit = 500
	}
	if s.MaxRows == 0 {
		s.MaxRows = 100
	}
	return s
}

// Extractor runs block extraction against one workbook.
type Extractor struct {
	wb  spreadsheet.Accessor
	log zerolog.Logger
}

func New(wb spreadsheet.Accessor, log zerolog.Logger) *Extractor {
	return &Extractor{wb: wb, log: log}
}

// Extract locates the block described by spec and returns its rows, start row
// included. Stop conditions are evaluated per row in fixed priority: sentinel
// fill, new date-range header, all columns empty, literal marker. The row
// that fires a stop condition is not part of the result, except the marker
// row when IncludeMarkerRow is set.
func (e *Extractor) Extract(spec Spec) (Block, error) {
	spec = spec.withDefaults()

	start, err := e.findStart(spec)
	if err != nil {
		return Block{}, err
	}

	sentinels := make(map[string]struct{}, len(spec.SentinelFills))
	for _, fill := range spec.SentinelFills {
		sentinels[strings.ToUpper(fill)] = struct{}{}
	}

	block := Block{Sheet: spec.Sheet, StartRow: start}
	for row := start; ; row++ {
		if len(block.Rows) >= spec.MaxRows {
			block.Capped = true
			e.log.Warn().
				Str("sheet", spec.Sheet).
				Int("rows", len(block.Rows)).
				Msg("row cap reached, treating block as complete")
			break
		}

		values, styles, err := e.readRow(spec, row)
		if err != nil {
			return Block{}, err
		}

		if row > start {
			stop, reason := stopReason(spec, values, styles, sentinels)
			if stop {
				e.log.Debug().
					Str("sheet", spec.Sheet).
					Int("row", row).
					Str("reason", reason).
					Msg("block boundary")
				break
			}
			if marked, err := e.markerHit(spec, row); err != nil {
				return Block{}, err
			} else if marked {
				if spec.IncludeMarkerRow {
					block.Rows = append(block.Rows, buildRow(values, styles))
				}
				e.log.Debug().
					Str("sheet", spec.Sheet).
					Int("row", row).
					Msg("block boundary: marker value")
				break
			}
		}

		extracted := buildRow(values, styles)
		if row == start {
			span, err := e.wb.MergeSpan(spec.Sheet, spec.FirstColumn, row)
			if err != nil {
				return Block{}, err
			}
			if span > 1 {
				extracted.Colspan = span
			}
		}
		block.Rows = append(block.Rows, extracted)
	}

	// When blank rows are carried and the marker was never reached, the cap
	// leaves a tail of empties; drop them.
	if spec.KeepEmptyRows {
		for len(block.Rows) > 0 && rowEmpty(block.Rows[len(block.Rows)-1]) {
			block.Rows = block.Rows[:len(block.Rows)-1]
		}
	}

	return block, nil
}

func rowEmpty(row Row) bool {
	for _, cell := range row.Cells {
		if cell.Content != "<br>" {
			return false
		}
	}
	return true
}

// findStart scans SearchColumn for StartText, preferring an exact match over
// a substring hit, matching how editors sometimes append suffixes to the
// period header.
func (e *Extractor) findStart(spec Spec) (int, error) {
	substringHit := 0
	for row := 1; row <= spec.SearchLimit; row++ {
		value, err := e.wb.CellValue(spec.Sheet, spec.SearchColumn, row)
		if err != nil {
			return 0, err
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == spec.StartText {
			return row, nil
		}
		if substringHit == 0 && trimmed != "" && strings.Contains(trimmed, spec.StartText) {
			substringHit = row
		}
	}
	if substringHit > 0 {
		return substringHit, nil
	}
	if spec.FallbackToFirstRow {
		e.log.Warn().
			Str("sheet", spec.Sheet).
			Str("marker", spec.StartText).
			Msg("start marker not found, starting from row 1")
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %q in sheet %s", ErrStartNotFound, spec.StartText, spec.Sheet)
}

func (e *Extractor) readRow(spec Spec, row int) ([]string, []spreadsheet.CellStyle, error) {
	values := make([]string, spec.ColumnCount)
	styles := make([]spreadsheet.CellStyle, spec.ColumnCount)
	for i := 0; i < spec.ColumnCount; i++ {
		col := spec.FirstColumn + i
		value, err := e.wb.CellValue(spec.Sheet, col, row)
		if err != nil {
			return nil, nil, err
		}
		style, err := e.wb.CellStyle(spec.Sheet, col, row)
		if err != nil {
			return nil, nil, err
		}
		values[i] = value
		styles[i] = style
	}
	return values, styles, nil
}

func (e *Extractor) markerHit(spec Spec, row int) (bool, error) {
	if spec.StopMarker == "" {
		return false, nil
	}
	value, err := e.wb.CellValue(spec.Sheet, spec.MarkerColumn, row)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(value) == spec.StopMarker, nil
}

func stopReason(spec Spec, values []string, styles []spreadsheet.CellStyle, sentinels map[string]struct{}) (bool, string) {
	boundary := len(styles)
	if boundary > 3 {
		boundary = 3
	}
	for i := 0; i < boundary; i++ {
		if _, ok := sentinels[strings.ToUpper(styles[i].Background)]; ok {
			return true, "sentinel fill"
		}
	}

	first := strings.TrimSpace(values[0])
	if daterange.LooksLikeRange(first) && !strings.Contains(first, spec.StartText) {
		return true, "next date range"
	}

	if spec.KeepEmptyRows {
		return false, ""
	}
	empty := true
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			empty = false
			break
		}
	}
	if empty {
		return true, "empty row"
	}

	return false, ""
}

func buildRow(values []string, styles []spreadsheet.CellStyle) Row {
	row := Row{Cells: make([]Cell, len(values))}
	for i, value := range values {
		content := strings.TrimSpace(value)
		switch {
		case content == "":
			content = "<br>"
		case styles[i].Bold:
			content = "<b>" + content + "</b>"
		}
		row.Cells[i] = Cell{
			Content:    content,
			Background: styles[i].Background,
			FontColor:  styles[i].FontColor,
			Bold:       styles[i].Bold,
		}
	}
	return row
}
