// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
)

// groupedTicks is the default tick marker with thousands separators in the
// labels, e.g., 1,500,000 instead of 1.5e+06.
type groupedTicks struct {
	printer *message.Printer
}

func newGroupedTicks() groupedTicks {
	return groupedTicks{printer: message.NewPrinter(language.English)}
}

// Ticks implements plot.Ticker.
func (t groupedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = t.format(ticks[i].Value, ticks[i].Label)
	}
	return ticks
}

// format keeps the precision the default marker chose for the label.
func (t groupedTicks) format(value float64, label string) string {
	decimals := 0
	if dot := strings.IndexByte(label, '.'); dot >= 0 && !strings.ContainsAny(label, "eE") {
		decimals = len(label) - dot - 1
	}
	return t.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), value)
}
