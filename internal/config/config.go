// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package config defines the chart configuration, its defaults, and loading from YAML.
package config

import (
	"log/slog"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"benchplot/internal/summary"
)

// limits enforced by Validate
const (
	MaxPanels = 8
	MinDPI    = 36
	MaxDPI    = 1200
)

// Config describes the figure to render.
type Config struct {
	Title          string  `yaml:"title"`
	Width          float64 `yaml:"width"`  // inches
	Height         float64 `yaml:"height"` // inches
	DPI            int     `yaml:"dpi"`
	Columns        int     `yaml:"columns"` // panels per grid row
	BarColor       string  `yaml:"bar_color"`
	HighlightColor string  `yaml:"highlight_color"`
	CaptionColor   string  `yaml:"caption_color"`
	Panels         []Panel `yaml:"panels"`
}

// Panel describes one bar chart of the grid. The plotted metric is either a
// summary column or an expression over columns, e.g. "[Max Disk Read (kB/s)] / 1024".
type Panel struct {
	Title      string `yaml:"title"`
	Column     string `yaml:"column"`
	Expression string `yaml:"expression"`
	XLabel     string `yaml:"xlabel"`
	YLabel     string `yaml:"ylabel"`
	Best       string `yaml:"best"` // "min" or "max"
}

const defaultYLabel = "Number of Workers"

// Default returns the configuration of the standard four-panel benchmark figure.
func Default() Config {
	return Config{
		Title:          "mkbrr Performance Benchmark: Varying Worker Counts",
		Width:          18,
		Height:         10,
		DPI:            300,
		Columns:        2,
		BarColor:       "#1f77b4",
		HighlightColor: "green",
		CaptionColor:   "gray",
		Panels: []Panel{
			{Title: "Maximum Memory Usage", Column: summary.ColumnMaxMemory, XLabel: "Memory (MB)", YLabel: defaultYLabel, Best: string(summary.Minimize)},
			{Title: "Average CPU Usage", Column: summary.ColumnAvgCPU, XLabel: "CPU Usage (%)", YLabel: defaultYLabel, Best: string(summary.Minimize)},
			{Title: "Maximum Disk Read I/O", Column: summary.ColumnMaxDiskRead, XLabel: "Read Rate (kB/s)", YLabel: defaultYLabel, Best: string(summary.Maximize)},
			{Title: "Total Processing Time", Column: summary.ColumnTotalTime, XLabel: "Time (seconds)", YLabel: defaultYLabel, Best: string(summary.Minimize)},
		},
	}
}

// Load reads a YAML file and applies it over the defaults. Keys not present in
// the file keep their default values; a "panels" list replaces the default panels.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read chart config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid chart config %s", path)
	}
	slog.Debug("loaded chart config", slog.String("path", path), slog.Int("panels", len(cfg.Panels)))
	return cfg, nil
}

// Parse applies YAML data over the defaults, fills per-panel defaults, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse yaml")
	}
	cfg.fillPanelDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillPanelDefaults() {
	for i := range c.Panels {
		p := &c.Panels[i]
		if p.YLabel == "" {
			p.YLabel = defaultYLabel
		}
		if p.Best == "" {
			p.Best = string(summary.Minimize)
		}
		if p.XLabel == "" {
			p.XLabel = p.Column
		}
		if p.Title == "" {
			p.Title = p.XLabel
		}
	}
}

// Validate checks the configuration for values that cannot be rendered.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("figure size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.DPI < MinDPI || c.DPI > MaxDPI {
		return errors.Errorf("dpi must be between %d and %d, got %d", MinDPI, MaxDPI, c.DPI)
	}
	if c.Columns < 1 {
		return errors.Errorf("columns must be at least 1, got %d", c.Columns)
	}
	if len(c.Panels) == 0 || len(c.Panels) > MaxPanels {
		return errors.Errorf("between 1 and %d panels are required, got %d", MaxPanels, len(c.Panels))
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	titles := mapset.NewSet[string]()
	for i, p := range c.Panels {
		if (p.Column == "") == (p.Expression == "") {
			return errors.Errorf("panel %d (%s): exactly one of column or expression is required", i+1, p.Title)
		}
		if _, err := summary.ParseGoal(p.Best); err != nil {
			return errors.Wrapf(err, "panel %d (%s)", i+1, p.Title)
		}
		if !titles.Add(p.Title) {
			return errors.Errorf("panel %d: duplicate title %q", i+1, p.Title)
		}
	}
	return nil
}

// Goal returns the panel's parsed best-of goal. The panel must be validated.
func (p Panel) Goal() summary.Goal {
	return summary.Goal(p.Best)
}
