package extract

// SentinelGray is the fill color editors use to close a data block.
const SentinelGray = "#AEAAAA"

// DefaultSentinelFills is the canonical sentinel gray plus the near-miss
// grays observed in real workbooks, kept as a tolerance for color drift.
func DefaultSentinelFills() []string {
	return []string{
		SentinelGray,
		"#AEAAAE",
		"#EFEFEF",
		"#F2F2F2",
		"#E0E0E0",
		"#D3D3D3",
	}
}

// ERSpec describes the ER no-logon block: three columns from A, headed by
// the formatted date range, closed by the sentinel gray.
func ERSpec(sheet, dateRange string, fills []string) Spec {
	return Spec{
		Sheet:         sheet,
		StartText:     dateRange,
		FirstColumn:   1,
		ColumnCount:   3,
		SentinelFills: fills,
		MaxRows:       200,
	}
}

// GSNvsADSpec describes the GSN VS AD block: six columns from A, headed by
// "<range> GSN VS AD" or the bare range.
func GSNvsADSpec(sheet, dateRange string, fills []string) Spec {
	return Spec{
		Sheet:         sheet,
		StartText:     dateRange,
		FirstColumn:   1,
		ColumnCount:   6,
		SentinelFills: fills,
		MaxRows:       50,
	}
}

// GSNvsERSpec describes the difference sections of a GSN VS ER sheet: two
// columns from D, headed by the first section title, ended by the literal
// "GSN" of the count summary, which is itself part of the block. The layout
// has blank separator rows between the sections and the counts, so blank
// rows are carried rather than treated as a boundary. Sheets written before
// the section layout stabilized lack the title, so extraction falls back to
// row 1.
func GSNvsERSpec(sheet string) Spec {
	return Spec{
		Sheet:              sheet,
		StartText:          "In GSN but not in ER",
		FallbackToFirstRow: true,
		FirstColumn:        4,
		ColumnCount:        2,
		StopMarker:         "GSN",
		MarkerColumn:       4,
		IncludeMarkerRow:   true,
		KeepEmptyRows:      true,
		MaxRows:            100,
	}
}

// MFASpec describes the MFA / AD EDS block: four columns from A, headed by
// the formatted date range, ended by the next period's header.
func MFASpec(sheet, dateRange string) Spec {
	return Spec{
		Sheet:       sheet,
		StartText:   dateRange,
		FirstColumn: 1,
		ColumnCount: 4,
		MaxRows:     100,
	}
}
