// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package chart renders benchmark panels, horizontal bar charts highlighting the
// best run, into a single captioned image.
package chart

import (
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"benchplot/internal/summary"
)

// font sizes, in points
const (
	titleSize      = 16
	captionSize    = 10
	panelTitleSize = 12
	axisLabelSize  = 10
	tickLabelSize  = 9
	valueLabelSize = 9
)

var (
	margin    = 0.25 * vg.Inch
	panelGapX = 0.35 * vg.Inch
	panelGapY = 0.3 * vg.Inch
	lineGap   = 0.06 * vg.Inch
)

// Style holds the colors of a figure.
type Style struct {
	Bar       color.Color
	Highlight color.Color
	Caption   color.Color
}

// Panel is one horizontal bar chart of the figure.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string        // category label per bar
	Values []summary.Value // one per label
	Best   int             // index of the highlighted bar, -1 for none
}

// Figure is a grid of panels below a title and caption lines.
type Figure struct {
	Title    string
	Captions []string
	Columns  int
	Width    vg.Length
	Height   vg.Length
	DPI      int
	Style    Style
	Panels   []Panel
}

// Rows returns the number of grid rows needed for the panels.
func (f *Figure) Rows() int {
	if f.Columns < 1 {
		return len(f.Panels)
	}
	return (len(f.Panels) + f.Columns - 1) / f.Columns
}

func (f *Figure) validate() error {
	if len(f.Panels) == 0 {
		return errors.New("figure has no panels")
	}
	if f.Columns < 1 {
		return errors.Errorf("figure needs at least one column, got %d", f.Columns)
	}
	if f.Width <= 0 || f.Height <= 0 || f.DPI <= 0 {
		return errors.Errorf("invalid figure size %vx%v at %d dpi", f.Width, f.Height, f.DPI)
	}
	for _, p := range f.Panels {
		if len(p.Labels) != len(p.Values) {
			return errors.Errorf("panel %q has %d labels for %d values", p.Title, len(p.Labels), len(p.Values))
		}
		if p.Best < -1 || p.Best >= len(p.Values) {
			return errors.Errorf("panel %q highlight index %d out of range", p.Title, p.Best)
		}
	}
	return nil
}

// Draw draws the figure onto dc.
func (f *Figure) Draw(dc draw.Canvas) error {
	if err := f.validate(); err != nil {
		return err
	}
	header := f.drawHeader(dc)
	rows := f.Rows()
	grid := make([][]*plot.Plot, rows)
	for j := range grid {
		grid[j] = make([]*plot.Plot, f.Columns)
	}
	for i, panel := range f.Panels {
		grid[i/f.Columns][i%f.Columns] = panel.plot(f.Style)
	}
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      f.Columns,
		PadTop:    header,
		PadBottom: margin,
		PadLeft:   margin,
		PadRight:  margin,
		PadX:      panelGapX,
		PadY:      panelGapY,
	}
	canvases := plot.Align(grid, tiles, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
	return nil
}

// drawHeader writes the title and caption lines centered at the top of dc and
// returns the height they occupy.
func (f *Figure) drawHeader(dc draw.Canvas) vg.Length {
	centerX := (dc.Min.X + dc.Max.X) / 2
	y := dc.Max.Y - margin
	title := newTextStyle(titleSize, color.Black)
	title.YAlign = draw.YTop
	if f.Title != "" {
		dc.FillText(title, vg.Point{X: centerX, Y: y}, f.Title)
		y -= title.Height(f.Title) + lineGap
	}
	caption := newTextStyle(captionSize, f.Style.Caption)
	caption.YAlign = draw.YTop
	for _, line := range f.Captions {
		dc.FillText(caption, vg.Point{X: centerX, Y: y}, line)
		y -= caption.Height(line) + lineGap
	}
	return dc.Max.Y - y + margin
}

// Render draws the figure and encodes it as PNG to w.
func (f *Figure) Render(w io.Writer) error {
	if err := f.validate(); err != nil {
		return err
	}
	img := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(f.DPI))
	if err := f.Draw(draw.New(img)); err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to encode png")
	}
	return nil
}

// Save renders the figure to path. The image is written to a temporary file in
// the same directory and renamed into place, so path is either complete or untouched.
func (f *Figure) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create image file")
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()
	if err := f.Render(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write image file")
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil { // #nosec G302
		return errors.Wrap(err, "failed to set image file permissions")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to move image into place")
	}
	slog.Debug("saved figure", slog.String("path", path), slog.Int("panels", len(f.Panels)), slog.Int("dpi", f.DPI))
	return nil
}

// plot builds the gonum plot for the panel.
func (p Panel) plot(style Style) *plot.Plot {
	plt := plot.New()
	plt.Title.Text = p.Title
	plt.X.Label.Text = p.XLabel
	plt.Y.Label.Text = p.YLabel
	setFont(&plt.Title.TextStyle, panelTitleSize)
	setFont(&plt.X.Label.TextStyle, axisLabelSize)
	setFont(&plt.Y.Label.TextStyle, axisLabelSize)
	setFont(&plt.X.Tick.Label, tickLabelSize)
	setFont(&plt.Y.Tick.Label, tickLabelSize)
	plt.X.Tick.Marker = newGroupedTicks()

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Color = color.Gray{Y: 220}
	plt.Add(grid)

	bars := &horizontalBars{
		values:    p.Values,
		best:      p.Best,
		color:     style.Bar,
		highlight: style.Highlight,
		label:     newTextStyle(valueLabelSize, color.Black),
	}
	bars.label.XAlign = draw.XLeft
	bars.label.YAlign = draw.YCenter
	plt.Add(bars)

	if len(p.Labels) > 0 {
		// first label at the top, matching horizontalBars.position
		names := make([]string, len(p.Labels))
		for i, label := range p.Labels {
			names[len(p.Labels)-1-i] = label
		}
		plt.NominalY(names...)
	}
	return plt
}

func newTextStyle(size vg.Length, c color.Color) text.Style {
	sty := text.Style{
		Color:   c,
		Font:    font.Font{Typeface: plot.DefaultFont.Typeface},
		XAlign:  draw.XCenter,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	setFont(&sty, size)
	return sty
}

func setFont(sty *text.Style, size vg.Length) {
	sty.Font.Variant = "Sans"
	sty.Font.Size = size
}
