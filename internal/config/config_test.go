package config

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchplot/internal/summary"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Panels, 4)

	columns := []string{summary.ColumnMaxMemory, summary.ColumnAvgCPU, summary.ColumnMaxDiskRead, summary.ColumnTotalTime}
	goals := []summary.Goal{summary.Minimize, summary.Minimize, summary.Maximize, summary.Minimize}
	for i, p := range cfg.Panels {
		assert.Equal(t, columns[i], p.Column)
		assert.Equal(t, goals[i], p.Goal())
		assert.Equal(t, "Number of Workers", p.YLabel)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("title: Nightly run\ndpi: 100\nhighlight_color: '#ff8800'\n"))
	require.NoError(t, err)
	assert.Equal(t, "Nightly run", cfg.Title)
	assert.Equal(t, 100, cfg.DPI)
	assert.Equal(t, 18.0, cfg.Width)
	assert.Len(t, cfg.Panels, 4)

	palette, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, palette.Highlight)
}

func TestParsePanelsReplaceDefaults(t *testing.T) {
	data := []byte(`
panels:
  - title: Disk Read (MB/s)
    expression: "[Max Disk Read (kB/s)] / 1024"
    best: max
  - column: Total Time (s)
`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cfg.Panels, 2)
	assert.Equal(t, summary.Maximize, cfg.Panels[0].Goal())
	assert.Equal(t, "Number of Workers", cfg.Panels[0].YLabel)
	assert.Equal(t, "Total Time (s)", cfg.Panels[1].XLabel)
	assert.Equal(t, "Total Time (s)", cfg.Panels[1].Title)
	assert.Equal(t, summary.Minimize, cfg.Panels[1].Goal())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: red\n"},
		{"bad dpi", "dpi: 5\n"},
		{"negative width", "width: -1\n"},
		{"zero columns", "columns: 0\n"},
		{"bad color", "bar_color: notacolor\n"},
		{"bad hex", "bar_color: '#12345'\n"},
		{"empty panels", "panels: []\n"},
		{"column and expression", "panels:\n  - column: a\n    expression: b\n"},
		{"neither column nor expression", "panels:\n  - title: x\n"},
		{"bad goal", "panels:\n  - column: a\n    best: highest\n"},
		{"duplicate titles", "panels:\n  - column: a\n    title: t\n  - column: b\n    title: t\n"},
		{"malformed", "title: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 1\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Columns)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"green", color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}},
		{"Gray", color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		{"#1f77b4", color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#00000080", color.NRGBA{A: 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
	for _, bad := range []string{"", "#", "#zzzzzz", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
