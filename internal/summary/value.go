// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package summary

import (
	"math"
	"strconv"
	"strings"
)

// Value is a numeric cell that may be missing.
type Value struct {
	Float float64
	Valid bool
}

// Missing is the absent value.
var Missing = Value{}

// Some wraps a float as a present value. NaN and infinities are treated as missing.
func Some(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Value{Float: f, Valid: true}
}

// ParseValue coerces a raw cell to a number. Cells that do not parse, e.g. "", "n/a",
// "12 MB", become Missing instead of failing.
func ParseValue(cell string) Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Missing
	}
	return Some(f)
}

// Int returns the integer part of the value, mirroring a truncating conversion.
func (v Value) Int() int64 {
	return int64(v.Float)
}

// Format renders the value with two decimals, or "N/A" when missing.
func (v Value) Format() string {
	if !v.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(v.Float, 'f', 2, 64)
}

// NotAvailable is the display text used for missing values.
const NotAvailable = "N/A"
