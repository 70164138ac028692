package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"benchplot/internal/config"
	"benchplot/internal/summary"
	"benchplot/internal/sysinfo"
)

const summaryCSV = `Worker Count,Actual Workers,Max Memory (MB),Avg CPU (%),Max Disk Read (kB/s),Total Time (s)
0,8,100,350.5,900000,12.5
1,1,50,99.9,300000,60
2,2,200,bad,,30.25
`

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Width = 6
	cfg.Height = 4
	cfg.DPI = 40
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFileName, summaryCSV)
	writeFile(t, dir, SystemInfoFileName, "OS: Linux 6.8\nCPU: Xeon 8480+\nDrive Type: NVMe\n")

	result, err := Render(Options{ResultsDir: dir, Config: smallConfig()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OutputFileName), result.OutputPath)
	assert.Equal(t, 3, result.Records)

	require.Len(t, result.Best, 4)
	assert.Equal(t, Best{Panel: "Maximum Memory Usage", Index: 1, Label: "1", Value: summary.Some(50)}, result.Best[0])
	assert.Equal(t, Best{Panel: "Average CPU Usage", Index: 1, Label: "1", Value: summary.Some(99.9)}, result.Best[1])
	assert.Equal(t, Best{Panel: "Maximum Disk Read I/O", Index: 0, Label: "Auto (8)", Value: summary.Some(900000)}, result.Best[2])
	assert.Equal(t, Best{Panel: "Total Processing Time", Index: 0, Label: "Auto (8)", Value: summary.Some(12.5)}, result.Best[3])

	file, err := os.Open(result.OutputPath)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestRenderOutputOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFileName, summaryCSV)
	out := filepath.Join(t.TempDir(), "chart.png")

	result, err := Render(Options{ResultsDir: dir, OutputPath: out, Config: smallConfig()})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)
	assert.FileExists(t, out)
	assert.NoFileExists(t, filepath.Join(dir, OutputFileName))
}

func TestRenderMissingSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SystemInfoFileName, "OS: Linux\n")

	_, err := Render(Options{ResultsDir: dir, Config: smallConfig()})
	require.Error(t, err)
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	expected := filepath.Join(dir, SummaryFileName)
	assert.Equal(t, expected, missing.Path)
	assert.Equal(t, "Summary file not found at "+expected, err.Error())
	assert.NoFileExists(t, filepath.Join(dir, OutputFileName))
}

func TestRenderMissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFileName, "Worker Count,Total Time (s)\n1,2\n")
	_, err := Render(Options{ResultsDir: dir, Config: smallConfig()})
	var missing *summary.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.NoFileExists(t, filepath.Join(dir, OutputFileName))
}

func TestRenderFromWorkbook(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	for i, line := range strings.Split(strings.TrimSpace(summaryCSV), "\n") {
		cells := strings.Split(line, ",")
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, SummaryWorkbookName)))
	require.NoError(t, f.Close())

	result, err := Render(Options{ResultsDir: dir, Config: smallConfig()})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, "Auto (8)", result.Best[2].Label)
}

func TestLocateSummary(t *testing.T) {
	dir := t.TempDir()
	_, err := LocateSummary(dir)
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)

	writeFile(t, dir, SummaryWorkbookName, "")
	path, err := LocateSummary(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryWorkbookName), path)

	writeFile(t, dir, SummaryFileName, "")
	path, err = LocateSummary(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFileName), path)
}

func TestBuildFigureDefaultCaptions(t *testing.T) {
	table, err := summary.ReadCSV(strings.NewReader(summaryCSV))
	require.NoError(t, err)
	figure, _, err := BuildFigure(table, sysinfo.Default(), smallConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"OS: N/A | CPU: N/A", "Drive Type: N/A"}, figure.Captions)
	assert.Equal(t, "mkbrr Performance Benchmark: Varying Worker Counts", figure.Title)
	require.Len(t, figure.Panels, 4)
	for _, p := range figure.Panels {
		assert.Equal(t, []string{"Auto (8)", "1", "2"}, p.Labels)
	}
	assert.False(t, figure.Panels[1].Values[2].Valid)
	assert.False(t, figure.Panels[2].Values[2].Valid)
}

func TestBuildFigureAllMissingHasNoHighlight(t *testing.T) {
	input := "Worker Count,Actual Workers,Max Memory (MB),Avg CPU (%),Max Disk Read (kB/s),Total Time (s)\n" +
		"1,1,,10,5,5\n2,2,x,20,6,4\n"
	table, err := summary.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	figure, best, err := BuildFigure(table, sysinfo.Default(), smallConfig())
	require.NoError(t, err)
	assert.Equal(t, -1, figure.Panels[0].Best)
	assert.Equal(t, -1, best[0].Index)
	assert.Empty(t, best[0].Label)
	assert.Equal(t, 1, figure.Panels[2].Best)
	assert.Equal(t, 1, figure.Panels[3].Best)
}

func TestBuildFigureExpressionPanel(t *testing.T) {
	table, err := summary.ReadCSV(strings.NewReader(summaryCSV))
	require.NoError(t, err)
	cfg, err := config.Parse([]byte(`
panels:
  - title: Disk Read (MB/s)
    expression: "[Max Disk Read (kB/s)] / 1000"
    best: max
  - title: Memory per Worker
    expression: "[Max Memory (MB)] / [Actual Workers]"
`))
	require.NoError(t, err)
	figure, best, err := BuildFigure(table, sysinfo.Default(), cfg)
	require.NoError(t, err)
	require.Len(t, figure.Panels, 2)

	read := figure.Panels[0].Values
	assert.Equal(t, summary.Some(900), read[0])
	assert.Equal(t, summary.Some(300), read[1])
	assert.False(t, read[2].Valid)
	assert.Equal(t, 0, best[0].Index)

	perWorker := figure.Panels[1].Values
	assert.Equal(t, summary.Some(12.5), perWorker[0])
	assert.Equal(t, summary.Some(50), perWorker[1])
	assert.Equal(t, summary.Some(100), perWorker[2])
	assert.Equal(t, 0, best[1].Index)
}

func TestBuildFigureInvalidPanels(t *testing.T) {
	table, err := summary.ReadCSV(strings.NewReader(summaryCSV))
	require.NoError(t, err)
	tests := []struct {
		name  string
		panel config.Panel
	}{
		{"unknown column", config.Panel{Title: "x", Column: "Max Disk Write (kB/s)", Best: "min"}},
		{"unknown expression column", config.Panel{Title: "x", Expression: "[Nope] * 2", Best: "min"}},
		{"malformed expression", config.Panel{Title: "x", Expression: "([Total Time (s)]", Best: "min"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			cfg.Panels = []config.Panel{tt.panel}
			_, _, err := BuildFigure(table, sysinfo.Default(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestEvaluateDivisionByZeroIsMissing(t *testing.T) {
	input := "Worker Count,Actual Workers,Max Memory (MB),Avg CPU (%),Max Disk Read (kB/s),Total Time (s)\n0,0,10,1,1,1\n"
	table, err := summary.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	values, err := panelValues(table, config.Panel{Expression: "[Max Memory (MB)] / [Actual Workers]"})
	require.NoError(t, err)
	assert.False(t, values[0].Valid)
}
