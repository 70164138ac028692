// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report turns a benchmark results directory into the summary chart image.
package report

import (
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"

	"benchplot/internal/chart"
	"benchplot/internal/config"
	"benchplot/internal/summary"
	"benchplot/internal/sysinfo"
	"benchplot/internal/util"
)

// file names inside a results directory
const (
	SummaryFileName     = "summary.csv"
	SummaryWorkbookName = "summary.xlsx"
	SystemInfoFileName  = "system_info.txt"
	OutputFileName      = "benchmark_results.png"
)

// MissingInputError is returned when the results directory has no summary table.
type MissingInputError struct {
	Path string // the expected summary.csv path
}

func (e *MissingInputError) Error() string {
	return "Summary file not found at " + e.Path
}

// Options controls a single report rendering.
type Options struct {
	ResultsDir string
	OutputPath string // defaults to OutputFileName inside ResultsDir
	Config     config.Config
}

// Best is the winning run of one panel.
type Best struct {
	Panel string
	Index int // -1 when every value of the panel is missing
	Label string
	Value summary.Value
}

// Result describes a rendered report.
type Result struct {
	OutputPath string
	Records    int
	Best       []Best
}

// Render loads the inputs found in opts.ResultsDir, draws the figure, and saves it.
// Nothing is written when any step fails.
func Render(opts Options) (Result, error) {
	summaryPath, err := LocateSummary(opts.ResultsDir)
	if err != nil {
		return Result{}, err
	}
	table, err := summary.Load(summaryPath)
	if err != nil {
		return Result{}, err
	}
	info, err := sysinfo.Load(filepath.Join(opts.ResultsDir, SystemInfoFileName))
	if err != nil {
		return Result{}, err
	}
	figure, best, err := BuildFigure(table, info, opts.Config)
	if err != nil {
		return Result{}, err
	}
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(opts.ResultsDir, OutputFileName)
	}
	if err := figure.Save(outputPath); err != nil {
		return Result{}, errors.Wrapf(err, "failed to save %s", outputPath)
	}
	for _, b := range best {
		slog.Info("best run", slog.String("panel", b.Panel), slog.String("label", b.Label), slog.String("value", b.Value.Format()))
	}
	return Result{OutputPath: outputPath, Records: len(table.Records), Best: best}, nil
}

// LocateSummary returns the summary table path in dir: summary.csv, or
// summary.xlsx when no csv is present. A *MissingInputError naming the csv path
// is returned when neither exists.
func LocateSummary(dir string) (string, error) {
	csvPath := filepath.Join(dir, SummaryFileName)
	for _, path := range []string{csvPath, filepath.Join(dir, SummaryWorkbookName)} {
		exists, err := util.FileExists(path)
		if err != nil {
			return "", errors.Wrap(err, "failed to check for summary table")
		}
		if exists {
			return path, nil
		}
	}
	return "", &MissingInputError{Path: csvPath}
}

// BuildFigure lays out one panel per configured metric with the best run of each
// panel highlighted.
func BuildFigure(table summary.Table, info sysinfo.Info, cfg config.Config) (*chart.Figure, []Best, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, nil, err
	}
	labels := table.Labels()
	figure := &chart.Figure{
		Title:    cfg.Title,
		Captions: []string{info.Platform(), info.DriveType},
		Columns:  cfg.Columns,
		Width:    vg.Length(cfg.Width) * vg.Inch,
		Height:   vg.Length(cfg.Height) * vg.Inch,
		DPI:      cfg.DPI,
		Style:    chart.Style{Bar: palette.Bar, Highlight: palette.Highlight, Caption: palette.Caption},
	}
	var best []Best
	for _, p := range cfg.Panels {
		values, err := panelValues(table, p)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "panel %q", p.Title)
		}
		idx, ok := summary.BestIndex(values, p.Goal())
		b := Best{Panel: p.Title, Index: idx}
		if ok {
			b.Label = labels[idx]
			b.Value = values[idx]
		} else {
			slog.Warn("no values to highlight", slog.String("panel", p.Title))
		}
		best = append(best, b)
		figure.Panels = append(figure.Panels, chart.Panel{
			Title:  p.Title,
			XLabel: p.XLabel,
			YLabel: p.YLabel,
			Labels: labels,
			Values: values,
			Best:   idx,
		})
	}
	return figure, best, nil
}
