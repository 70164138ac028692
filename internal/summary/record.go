// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package summary

import (
	"fmt"
	"strconv"
)

// column headers of the summary table
const (
	ColumnWorkerCount   = "Worker Count"
	ColumnActualWorkers = "Actual Workers"
	ColumnMaxMemory     = "Max Memory (MB)"
	ColumnAvgCPU        = "Avg CPU (%)"
	ColumnMaxDiskRead   = "Max Disk Read (kB/s)"
	ColumnTotalTime     = "Total Time (s)"
)

// RequiredColumns lists the headers every summary table must carry.
var RequiredColumns = []string{
	ColumnWorkerCount,
	ColumnActualWorkers,
	ColumnMaxMemory,
	ColumnAvgCPU,
	ColumnMaxDiskRead,
	ColumnTotalTime,
}

// Record is one benchmark run, i.e., one row of the summary table
type Record struct {
	WorkerCount     Value // 0 means the tool picked the worker count
	ActualWorkers   Value // resolved worker count, only meaningful when WorkerCount is 0
	MaxMemoryMB     Value
	AvgCPUPercent   Value
	MaxDiskReadKBps Value
	TotalTimeSec    Value
	Label           string
	columns         map[string]Value
}

// newRecord coerces every cell of a row, keyed by header. Rows shorter than the
// header are padded with missing values.
func newRecord(header []string, cells []string) Record {
	r := Record{columns: make(map[string]Value, len(header))}
	for i, name := range header {
		if name == "" {
			continue
		}
		v := Missing
		if i < len(cells) {
			v = ParseValue(cells[i])
		}
		// first occurrence of a duplicated header wins
		if _, ok := r.columns[name]; !ok {
			r.columns[name] = v
		}
	}
	r.WorkerCount = r.columns[ColumnWorkerCount]
	r.ActualWorkers = r.columns[ColumnActualWorkers]
	r.MaxMemoryMB = r.columns[ColumnMaxMemory]
	r.AvgCPUPercent = r.columns[ColumnAvgCPU]
	r.MaxDiskReadKBps = r.columns[ColumnMaxDiskRead]
	r.TotalTimeSec = r.columns[ColumnTotalTime]
	r.Label = WorkerLabel(r.WorkerCount, r.ActualWorkers)
	return r
}

// Column returns the coerced value of the named column, Missing if the table has no such column.
func (r Record) Column(name string) Value {
	return r.columns[name]
}

// WorkerLabel derives the display label for a run:
//   - "Auto (N)" when the worker count is 0 and the actual worker count is known
//   - "Auto (N/A)" when the worker count is 0 and the actual worker count is missing
//   - the decimal worker count otherwise
//
// A missing worker count yields "N/A".
func WorkerLabel(workerCount, actualWorkers Value) string {
	if !workerCount.Valid {
		return NotAvailable
	}
	if workerCount.Float == 0 {
		actual := NotAvailable
		if actualWorkers.Valid {
			actual = strconv.FormatInt(actualWorkers.Int(), 10)
		}
		return fmt.Sprintf("Auto (%s)", actual)
	}
	return strconv.FormatInt(workerCount.Int(), 10)
}
