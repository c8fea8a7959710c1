// Package pipeline drives a full report run: locate the newest exports,
// gather the three hostname collections, compare them, and append the results
// to the Weekly Report workbook.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"weeklyreport/compare"
	"weeklyreport/config"
	"weeklyreport/internal/daterange"
	"weeklyreport/report"
	"weeklyreport/sources"
	"weeklyreport/spreadsheet"
	"weeklyreport/storage"
)

// Deps are the collaborators a run needs. Store may be nil when history
// recording is disabled.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger
	Clock  daterange.Clock
	Store  *storage.SQLiteStore
}

// RunResult summarizes one completed run for display and history.
type RunResult struct {
	Range          daterange.Range
	FormattedRange string
	GSNFile        string
	ERFile         string
	GSNCount       int
	ERCount        int
	ADCount        int
	MissingInER    int
	MissingInGSN   int
	Worksheet      string
	Duration       time.Duration
}

// Run executes the comparison pipeline for one reporting period. The workbook
// is saved in place; when that save fails everything written this run is
// lost, so the error wraps the workbook path.
func Run(ctx context.Context, deps Deps, r daterange.Range) (RunResult, error) {
	cfg := deps.Config
	log := deps.Log
	started := time.Now()

	gsnFile, erFile, err := discover(cfg, log)
	if err != nil {
		return RunResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	data, err := gather(ctx, cfg, log, gsnFile, erFile)
	if err != nil {
		return RunResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	diff := compare.Compare(data.gsn, data.er.Hostnames)
	log.Info().
		Int("gsn", len(data.gsn)).
		Int("er", len(data.er.Hostnames)).
		Int("ad", len(data.ad)).
		Int("missing_in_er", len(diff.MissingInSecond)).
		Int("missing_in_gsn", len(diff.MissingInFirst)).
		Msg("comparison complete")

	wb, err := spreadsheet.Open(cfg.Workbook.Path)
	if err != nil {
		return RunResult{}, err
	}
	defer wb.Close()
	log.Info().
		Str("workbook", wb.Path()).
		Int("sheets", len(wb.Sheets())).
		Str("target", report.GSNvsERSheetName(r.Format(false))).
		Msg("workbook opened")

	writer := report.NewWriter(wb, log, deps.Clock)

	worksheet, err := writer.WriteGSNvsER(r, data.gsn, data.er.Hostnames, diff)
	if err != nil {
		return RunResult{}, fmt.Errorf("write GSN VS ER sheet: %w", err)
	}
	if err := writer.AppendERNoLogon(r, data.er.NoLogon, data.er.Serials); err != nil {
		return RunResult{}, fmt.Errorf("append ER no-logon block: %w", err)
	}
	if _, err := writer.AppendGSNvsAD(r, data.gsn, data.ad); err != nil {
		return RunResult{}, fmt.Errorf("append GSN VS AD block: %w", err)
	}

	if err := wb.File().Save(); err != nil {
		return RunResult{}, fmt.Errorf("save workbook %s: %w", wb.Path(), err)
	}
	log.Info().Str("workbook", wb.Path()).Str("worksheet", worksheet).Msg("workbook updated")

	result := RunResult{
		Range:          r,
		FormattedRange: r.Format(false),
		GSNFile:        gsnFile,
		ERFile:         erFile,
		GSNCount:       len(data.gsn),
		ERCount:        len(data.er.Hostnames),
		ADCount:        len(data.ad),
		MissingInER:    len(diff.MissingInSecond),
		MissingInGSN:   len(diff.MissingInFirst),
		Worksheet:      worksheet,
		Duration:       time.Since(started),
	}

	if deps.Store != nil {
		if err := record(deps, result); err != nil {
			// The workbook is already written; history is best effort.
			log.Warn().Err(err).Msg("failed to record run history")
		}
	}

	return result, nil
}

// discover locates the newest GSN and ER exports concurrently.
func discover(cfg *config.Config, log zerolog.Logger) (gsnFile, erFile string, err error) {
	var (
		wg     sync.WaitGroup
		gsnErr error
		erErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		gsnFile, gsnErr = sources.FindLatest(cfg.GSN.SearchDirectories, cfg.GSN.FilePattern, log)
	}()
	go func() {
		defer wg.Done()
		erFile, erErr = sources.FindLatest(cfg.ER.SearchDirectories, cfg.ER.FilePattern, log)
	}()
	wg.Wait()

	if gsnErr != nil {
		return "", "", fmt.Errorf("locate GSN export: %w", gsnErr)
	}
	if erErr != nil {
		return "", "", fmt.Errorf("locate ER export: %w", erErr)
	}
	return gsnFile, erFile, nil
}

type gathered struct {
	gsn []string
	er  sources.ERData
	ad  []string
}

// gather reads the three sources concurrently. GSN and ER failures are fatal;
// the AD query degrades to an empty list on its own.
func gather(ctx context.Context, cfg *config.Config, log zerolog.Logger, gsnFile, erFile string) (gathered, error) {
	layout := sources.ERLayout{
		HostnameColumn: cfg.ER.HostnameColumn,
		StatusColumn:   cfg.ER.StatusColumn,
		SerialColumn:   cfg.ER.SerialColumn,
		StartRow:       cfg.ER.StartRow,
		Prefixes:       cfg.ER.HostnamePrefixes,
		StatusBucket:   cfg.ER.NoLogonBucket,
	}
	runner := &sources.ADRunner{
		Script:      cfg.AD.Script,
		ResultsFile: cfg.AD.ResultsFile,
		Log:         log,
	}

	var (
		wg     sync.WaitGroup
		data   gathered
		gsnErr error
		erErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.gsn, gsnErr = sources.ReadGSN(gsnFile)
	}()
	go func() {
		defer wg.Done()
		data.er, erErr = sources.ReadER(erFile, layout)
	}()
	go func() {
		defer wg.Done()
		data.ad = runner.Hostnames(ctx)
	}()
	wg.Wait()

	if gsnErr != nil {
		return gathered{}, fmt.Errorf("read GSN export: %w", gsnErr)
	}
	if erErr != nil {
		return gathered{}, fmt.Errorf("read ER export: %w", erErr)
	}
	return data, nil
}

func record(deps Deps, result RunResult) error {
	_, err := deps.Store.InsertRun(storage.Run{
		RanAt:          deps.Clock.Now(),
		RangeStart:     result.Range.Start,
		RangeEnd:       result.Range.End,
		FormattedRange: result.FormattedRange,
		GSNFile:        result.GSNFile,
		ERFile:         result.ERFile,
		GSNCount:       result.GSNCount,
		ERCount:        result.ERCount,
		ADCount:        result.ADCount,
		MissingInER:    result.MissingInER,
		MissingInGSN:   result.MissingInGSN,
		Worksheet:      result.Worksheet,
		DurationMS:     result.Duration.Milliseconds(),
	})
	return err
}
