// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"benchplot/internal/summary"
)

const (
	barThickness = 0.8  // fraction of the distance between category positions
	labelGap     = 0.01 // fraction of the value axis width between a bar and its label
	labelRoom    = 0.15 // fraction of the largest value added to the axis for labels
)

// horizontalBars draws one bar per value, the first value at the top. Every bar is
// annotated with its value, or "N/A" at the origin when the value is missing.
type horizontalBars struct {
	values    []summary.Value
	best      int // index drawn with the highlight color, -1 for none
	color     color.Color
	highlight color.Color
	label     text.Style
}

var (
	_ plot.Plotter    = (*horizontalBars)(nil)
	_ plot.DataRanger = (*horizontalBars)(nil)
)

// position maps a value index to its category coordinate so that the first
// value ends up at the top of the axis.
func (b *horizontalBars) position(i int) float64 {
	return float64(len(b.values) - 1 - i)
}

func (b *horizontalBars) colorAt(i int) color.Color {
	if i == b.best {
		return b.highlight
	}
	return b.color
}

// Plot implements plot.Plotter.
func (b *horizontalBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := vg.Length(math.Abs(float64(trY(1)-trY(0)))) * barThickness / 2
	gap := (trX(plt.X.Max) - trX(plt.X.Min)) * labelGap
	origin := trX(0)
	for i, v := range b.values {
		y := trY(b.position(i))
		if !c.ContainsY(y) {
			continue
		}
		end := origin
		if v.Valid {
			end = trX(v.Float)
			bar := []vg.Point{
				{X: origin, Y: y - half},
				{X: origin, Y: y + half},
				{X: end, Y: y + half},
				{X: end, Y: y - half},
			}
			c.FillPolygon(b.colorAt(i), c.ClipPolygonXY(bar))
		}
		c.FillText(b.label, vg.Point{X: end + gap, Y: y}, v.Format())
	}
}

// DataRange implements plot.DataRanger. The value axis always includes zero and
// leaves room past the longest bar for its label.
func (b *horizontalBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	for _, v := range b.values {
		if !v.Valid {
			continue
		}
		xmin = math.Min(xmin, v.Float)
		xmax = math.Max(xmax, v.Float)
	}
	if xmin == 0 && xmax == 0 {
		xmax = 1
	}
	xmax += (xmax - xmin) * labelRoom
	ymin = -0.5
	ymax = float64(len(b.values)) - 0.5
	return xmin, xmax, ymin, ymax
}
