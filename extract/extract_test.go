package extract

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"weeklyreport/spreadsheet"
)

func testExtractor(t *testing.T, build func(f *excelize.File)) *Extractor {
	t.Helper()

	file := excelize.NewFile()
	t.Cleanup(func() { file.Close() })
	build(file)

	return New(spreadsheet.FromFile(file), zerolog.Nop())
}

func setCell(t *testing.T, f *excelize.File, cell string, value any) {
	t.Helper()
	if err := f.SetCellValue("Sheet1", cell, value); err != nil {
		t.Fatalf("set %s: %v", cell, err)
	}
}

func fillStyle(t *testing.T, f *excelize.File, color string) int {
	t.Helper()
	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	return styleID
}

func TestExtract_StopsBeforeSentinelRow(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A3", "5-9 May 2025")
		for row := 4; row <= 7; row++ {
			setCell(t, f, fmt.Sprintf("A%d", row), fmt.Sprintf("SGASC%03d", row))
		}
		setCell(t, f, "A8", "boundary")
		gray := fillStyle(t, f, "AEAAAA")
		if err := f.SetCellStyle("Sheet1", "A8", "C8", gray); err != nil {
			t.Fatalf("set style: %v", err)
		}
	})

	block, err := e.Extract(ERSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if block.StartRow != 3 {
		t.Fatalf("start row = %d, want 3", block.StartRow)
	}
	if len(block.Rows) != 5 {
		t.Fatalf("extracted %d rows, want 5", len(block.Rows))
	}
	if block.Capped {
		t.Fatalf("cap should not have fired")
	}
	for _, row := range block.Rows {
		if row.Cells[0].Content == "boundary" {
			t.Fatalf("sentinel row leaked into the block")
		}
	}
}

func TestExtract_StopsAtNextDateRange(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A1", "5-9 May 2025")
		setCell(t, f, "A2", "SGASC001")
		setCell(t, f, "A3", "12-16 May 2025")
		setCell(t, f, "A4", "SGASC002")
	})

	block, err := e.Extract(MFASpec("Sheet1", "5-9 May 2025"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(block.Rows) != 2 {
		t.Fatalf("extracted %d rows, want 2", len(block.Rows))
	}
}

func TestExtract_StopsAtEmptyRow(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A1", "5-9 May 2025")
		setCell(t, f, "B2", "SGASC001")
		setCell(t, f, "C3", "still data")
		// Row 4 left untouched.
		setCell(t, f, "A5", "after the gap")
	})

	block, err := e.Extract(ERSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(block.Rows) != 3 {
		t.Fatalf("extracted %d rows, want 3", len(block.Rows))
	}
}

func TestExtract_MarkerRowEndsAndJoinsBlock(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "D2", "In GSN but not in ER")
		setCell(t, f, "D3", "SGASC001")
		setCell(t, f, "E3", "remark")
		setCell(t, f, "D4", "SGESC002")
		setCell(t, f, "E4", "remark")
		setCell(t, f, "D5", "GSN")
		setCell(t, f, "E5", "3")
		setCell(t, f, "D6", "after the summary")
	})

	block, err := e.Extract(GSNvsERSpec("Sheet1"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if block.StartRow != 2 {
		t.Fatalf("start row = %d, want 2", block.StartRow)
	}
	if len(block.Rows) != 4 {
		t.Fatalf("extracted %d rows, want 4", len(block.Rows))
	}

	last := block.Rows[3]
	if last.Cells[0].Content != "GSN" || last.Cells[1].Content != "3" {
		t.Fatalf("last row = %+v, want the count summary row", last)
	}
}

func TestExtract_GSNvsERWalksBlankSeparatorRows(t *testing.T) {
	t.Parallel()

	// The comparison writer leaves a blank row after each section, so only
	// the "GSN" count row ends the block.
	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "D1", "In GSN but not in ER")
		setCell(t, f, "E1", "Remarks")
		setCell(t, f, "D2", "SGASC333")
		setCell(t, f, "D3", "SGWSC044")
		// Row 4 blank.
		setCell(t, f, "D5", "In ER but not in GSN")
		setCell(t, f, "E5", "Remarks")
		setCell(t, f, "D6", "NIL")
		// Row 7 blank.
		setCell(t, f, "D8", "ER")
		setCell(t, f, "E8", "5")
		setCell(t, f, "D9", "GSN")
		setCell(t, f, "E9", "7")
	})

	block, err := e.Extract(GSNvsERSpec("Sheet1"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(block.Rows) != 9 {
		t.Fatalf("extracted %d rows, want 9", len(block.Rows))
	}
	if got := block.Rows[3].Cells[0].Content; got != "<br>" {
		t.Errorf("separator row = %q, want <br>", got)
	}
	if got := block.Rows[4].Cells[0].Content; got != "In ER but not in GSN" {
		t.Errorf("second section title = %q", got)
	}
	if got := block.Rows[5].Cells[0].Content; got != "NIL" {
		t.Errorf("placeholder = %q, want NIL", got)
	}
	if got := block.Rows[8].Cells[0].Content; got != "GSN" {
		t.Errorf("last row = %q, want the GSN count row", got)
	}
}

func TestExtract_MarkerMissingFallsBackToFirstRow(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "D1", "SGASC001")
		setCell(t, f, "D2", "SGESC002")
	})

	block, err := e.Extract(GSNvsERSpec("Sheet1"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if block.StartRow != 1 {
		t.Fatalf("start row = %d, want fallback to 1", block.StartRow)
	}
	// No marker anywhere: the cap fires, then the empty tail is dropped.
	if !block.Capped {
		t.Fatalf("expected the safety cap to fire without a marker")
	}
	if len(block.Rows) != 2 {
		t.Fatalf("extracted %d rows after trimming, want 2", len(block.Rows))
	}
}

func TestExtract_RowCapReturnsPartialResult(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A1", "5-9 May 2025")
		for row := 2; row <= 80; row++ {
			for col := 'A'; col <= 'F'; col++ {
				setCell(t, f, fmt.Sprintf("%c%d", col, row), fmt.Sprintf("v%d", row))
			}
		}
	})

	block, err := e.Extract(GSNvsADSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if !block.Capped {
		t.Fatalf("expected the safety cap to fire")
	}
	if len(block.Rows) != 50 {
		t.Fatalf("extracted %d rows, want 50", len(block.Rows))
	}
}

func TestExtract_StartNotFound(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A1", "something else entirely")
	})

	_, err := e.Extract(ERSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err == nil {
		t.Fatalf("expected error for missing start marker")
	}
}

func TestExtract_SubstringMatchFindsSuffixedHeader(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A2", "5-9 May 2025 GSN VS AD")
		setCell(t, f, "A3", "SGASC001")
	})

	block, err := e.Extract(GSNvsADSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if block.StartRow != 2 {
		t.Fatalf("start row = %d, want 2", block.StartRow)
	}
}

func TestExtract_CellNormalization(t *testing.T) {
	t.Parallel()

	e := testExtractor(t, func(f *excelize.File) {
		setCell(t, f, "A1", "5-9 May 2025")
		if err := f.MergeCell("Sheet1", "A1", "C1"); err != nil {
			t.Fatalf("merge: %v", err)
		}

		setCell(t, f, "A2", "SGASC001")
		setCell(t, f, "B2", "important")
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			t.Fatalf("new style: %v", err)
		}
		if err := f.SetCellStyle("Sheet1", "B2", "B2", bold); err != nil {
			t.Fatalf("set style: %v", err)
		}
	})

	block, err := e.Extract(ERSpec("Sheet1", "5-9 May 2025", DefaultSentinelFills()))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	header := block.Rows[0]
	if header.Colspan != 3 {
		t.Errorf("header colspan = %d, want 3", header.Colspan)
	}

	data := block.Rows[1]
	if data.Cells[0].Content != "SGASC001" {
		t.Errorf("plain cell = %q", data.Cells[0].Content)
	}
	if data.Cells[1].Content != "<b>important</b>" || !data.Cells[1].Bold {
		t.Errorf("bold cell = %+v", data.Cells[1])
	}
	if data.Cells[2].Content != "<br>" {
		t.Errorf("empty cell = %q, want <br>", data.Cells[2].Content)
	}
	if data.Cells[2].Background != spreadsheet.DefaultBackground {
		t.Errorf("empty cell background = %q", data.Cells[2].Background)
	}
}
