package pipeline

import (
	"github.com/rs/zerolog"

	"weeklyreport/extract"
	"weeklyreport/internal/daterange"
	"weeklyreport/render"
	"weeklyreport/report"
	"weeklyreport/spreadsheet"
)

// ExportResult holds the written export paths.
type ExportResult struct {
	FormattedRange string
	HTMLPath       string
	TextPath       string
}

// Export extracts the four report sections for a formatted period, e.g.
// "13-17 February 2025", and writes the HTML and text exports into the
// configured output directory.
func Export(deps Deps, formatted string) (ExportResult, error) {
	cfg := deps.Config

	wb, err := spreadsheet.Open(cfg.Workbook.Path)
	if err != nil {
		return ExportResult{}, err
	}
	defer wb.Close()

	sections := ExtractSections(wb, formatted, cfg.Report.SentinelFills(), deps.Clock, deps.Log)

	renderer := &render.Renderer{SectionKeywords: cfg.Report.SectionKeywords}
	document := renderer.Document(sections, formatted)

	htmlPath, err := render.SaveDocument(cfg.Output.Directory, formatted, document)
	if err != nil {
		return ExportResult{}, err
	}
	textPath, err := render.SaveText(cfg.Output.Directory, formatted, renderer.Tables(sections))
	if err != nil {
		return ExportResult{}, err
	}

	deps.Log.Info().Str("html", htmlPath).Str("text", textPath).Msg("report exported")
	return ExportResult{FormattedRange: formatted, HTMLPath: htmlPath, TextPath: textPath}, nil
}

// ExtractSections pulls the four blocks for a formatted period out of the
// workbook. The MFA and GSN VS AD headers carry full month names while the
// ER blocks use the abbreviated form, so both shapes of the range are
// searched. Each section degrades independently: a missing worksheet or
// start header leaves that block nil and the renderer reports it inline, so
// one hand-edited sheet never blanks the whole export.
func ExtractSections(wb *spreadsheet.Workbook, formatted string, fills []string, clock daterange.Clock, log zerolog.Logger) render.Sections {
	comps, ok := daterange.ParseComponents(formatted, clock)
	if !ok {
		log.Warn().Str("range", formatted).Msg("could not parse period, using current month")
	}
	abbreviated := daterange.Abbreviate(formatted)

	extractor := extract.New(wb, log)
	sheets := wb.Sheets()
	var sections render.Sections

	if sheet, err := report.ResolveMonthSheet(sheets, comps.MonthName, comps.Year); err != nil {
		log.Warn().Err(err).Msg("MFA worksheet not found")
	} else {
		sections.MFA = tryExtract(extractor, extract.MFASpec(sheet, formatted), "MFA", log)
	}

	adSheet := report.GSNvsADSheetName(comps.Year)
	if !wb.HasSheet(adSheet) {
		log.Warn().Str("sheet", adSheet).Msg("GSN VS AD worksheet not found")
	} else {
		sections.GSNvsAD = tryExtract(extractor, extract.GSNvsADSpec(adSheet, formatted, fills), "GSN VS AD", log)
	}

	erCompareSheet := report.GSNvsERSheetName(abbreviated)
	if !wb.HasSheet(erCompareSheet) {
		log.Warn().Str("sheet", erCompareSheet).Msg("GSN VS ER worksheet not found")
	} else {
		sections.GSNvsER = tryExtract(extractor, extract.GSNvsERSpec(erCompareSheet), "GSN VS ER", log)
	}

	erSheet := report.ERSheetName(comps.Year)
	if !wb.HasSheet(erSheet) {
		log.Warn().Str("sheet", erSheet).Msg("ER worksheet not found")
	} else {
		sections.ER = tryExtract(extractor, extract.ERSpec(erSheet, abbreviated, fills), "ER", log)
	}

	return sections
}

func tryExtract(extractor *extract.Extractor, spec extract.Spec, section string, log zerolog.Logger) *extract.Block {
	block, err := extractor.Extract(spec)
	if err != nil {
		log.Warn().Err(err).Str("section", section).Msg("section extraction failed")
		return nil
	}
	log.Debug().Str("section", section).Int("rows", len(block.Rows)).Msg("section extracted")
	return &block
}
