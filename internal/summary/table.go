// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package summary loads benchmark summary tables and derives the values plotted from them.
package summary

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Table is a loaded summary table, records in file order
type Table struct {
	Header  []string
	Records []Record
}

// MissingColumnsError reports required headers that are absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "summary table is missing required column(s): " + strings.Join(e.Columns, ", ")
}

// NewTable builds a table from a header row and data rows. Blank rows are skipped.
func NewTable(header []string, rows [][]string) (Table, error) {
	header = normalizeHeader(header)
	if missing := missingColumns(header); len(missing) > 0 {
		return Table{}, &MissingColumnsError{Columns: missing}
	}
	table := Table{Header: header}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		table.Records = append(table.Records, newRecord(header, row))
	}
	return table, nil
}

// Labels returns the worker label of every record.
func (t Table) Labels() []string {
	labels := make([]string, len(t.Records))
	for i, r := range t.Records {
		labels[i] = r.Label
	}
	return labels
}

// Column returns the named column across all records.
func (t Table) Column(name string) []Value {
	values := make([]Value, len(t.Records))
	for i, r := range t.Records {
		values[i] = r.Column(name)
	}
	return values
}

// HasColumn reports whether the table header includes name.
func (t Table) HasColumn(name string) bool {
	return slices.Contains(t.Header, name)
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		// spreadsheets exported on windows often carry a BOM on the first cell
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func missingColumns(header []string) []string {
	present := mapset.NewSet(header...)
	required := mapset.NewSet(RequiredColumns...)
	missing := required.Difference(present).ToSlice()
	// keep the documented column order in the message
	slices.SortFunc(missing, func(a, b string) int {
		return slices.Index(RequiredColumns, a) - slices.Index(RequiredColumns, b)
	})
	return missing
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// errEmptyTable is returned when a file has no header row
var errEmptyTable = errors.New("summary table is empty")
