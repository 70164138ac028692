// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package summary

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Load reads a summary table from a .csv or .xlsx file, chosen by extension.
func Load(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads a comma separated summary table.
func LoadCSV(path string) (Table, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return Table{}, errors.Wrap(err, "failed to open summary table")
	}
	defer file.Close()
	table, err := ReadCSV(file)
	if err != nil {
		return Table{}, errors.Wrapf(err, "failed to read %s", path)
	}
	slog.Debug("loaded summary table", slog.String("path", path), slog.Int("records", len(table.Records)))
	return table, nil
}

// ReadCSV parses a comma separated summary table from r. Rows may have a
// different number of fields than the header.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var header []string
	var rows [][]string
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrap(err, "malformed csv")
		}
		if header == nil {
			header = fields
			continue
		}
		rows = append(rows, fields)
	}
	if header == nil {
		return Table{}, errEmptyTable
	}
	return NewTable(header, rows)
}

// LoadXLSX reads the summary table from the first sheet of a workbook.
func LoadXLSX(path string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, errors.Wrap(err, "failed to open summary workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", slog.String("path", path), slog.String("error", err.Error()))
		}
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Table{}, errors.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, errors.Wrapf(err, "failed to read sheet %q of %s", sheet, path)
	}
	if len(rows) == 0 {
		return Table{}, errors.Wrapf(errEmptyTable, "sheet %q of %s", sheet, path)
	}
	table, err := NewTable(rows[0], rows[1:])
	if err != nil {
		return Table{}, errors.Wrapf(err, "failed to read %s", path)
	}
	slog.Debug("loaded summary workbook", slog.String("path", path), slog.String("sheet", sheet), slog.Int("records", len(table.Records)))
	return table, nil
}
