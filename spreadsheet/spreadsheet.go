// Package spreadsheet wraps excelize access behind a small surface the
// extractors and writers share: cell values by coordinate, resolved cell
// styling, and merge geometry.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Accessor is the read surface block extraction works against.
type Accessor interface {
	CellValue(sheet string, col, row int) (string, error)
	CellStyle(sheet string, col, row int) (CellStyle, error)
	MergeSpan(sheet string, col, row int) (int, error)
}

// Workbook wraps an open excelize file.
type Workbook struct {
	file *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: file, path: path}, nil
}

// FromFile wraps an already open excelize file. The caller keeps ownership
// of the underlying file's lifetime.
func FromFile(file *excelize.File) *Workbook {
	return &Workbook{file: file}
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) Path() string {
	return w.path
}

// File exposes the underlying excelize handle for write paths that need the
// full API.
func (w *Workbook) File() *excelize.File {
	return w.file
}

func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (w *Workbook) CellValue(sheet string, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}
	value, err := w.file.GetCellValue(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("read cell %s!%s: %w", sheet, cell, err)
	}
	return value, nil
}

// CellStyle resolves the effective fill, font color and weight of a cell,
// substituting the white-background black-font defaults when the style
// carries no explicit setting.
func (w *Workbook) CellStyle(sheet string, col, row int) (CellStyle, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return CellStyle{}, fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}

	styleID, err := w.file.GetCellStyle(sheet, cell)
	if err != nil {
		return CellStyle{}, fmt.Errorf("read style of %s!%s: %w", sheet, cell, err)
	}

	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return CellStyle{}, fmt.Errorf("resolve style %d of %s!%s: %w", styleID, sheet, cell, err)
	}

	resolved := CellStyle{Background: DefaultBackground, FontColor: DefaultFontColor}
	if style.Fill.Pattern != 0 && len(style.Fill.Color) > 0 {
		resolved.Background = ParseColor(style.Fill.Color[0], DefaultBackground)
	}
	if style.Font != nil {
		resolved.Bold = style.Font.Bold
		resolved.FontColor = ParseColor(style.Font.Color, DefaultFontColor)
	}
	return resolved, nil
}

// MergeSpan returns the column width of the merged range anchored at the
// given cell, or 1 when the cell is unmerged or not the anchor.
func (w *Workbook) MergeSpan(sheet string, col, row int) (int, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}

	merges, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return 0, fmt.Errorf("read merges of %s: %w", sheet, err)
	}

	for _, merge := range merges {
		if merge.GetStartAxis() != cell {
			continue
		}
		startCol, _, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			return 0, fmt.Errorf("parse merge start %s: %w", merge.GetStartAxis(), err)
		}
		endCol, _, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			return 0, fmt.Errorf("parse merge end %s: %w", merge.GetEndAxis(), err)
		}
		return endCol - startCol + 1, nil
	}
	return 1, nil
}
