// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"log/slog"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"

	"benchplot/internal/config"
	"benchplot/internal/summary"
)

// panelValues returns the value plotted by the panel for every record.
func panelValues(table summary.Table, p config.Panel) ([]summary.Value, error) {
	if p.Expression == "" {
		if !table.HasColumn(p.Column) {
			return nil, errors.Errorf("column %q not found in summary table", p.Column)
		}
		return table.Column(p.Column), nil
	}
	expression, err := govaluate.NewEvaluableExpression(p.Expression)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid expression %q", p.Expression)
	}
	variables := expression.Vars()
	for _, name := range variables {
		if !table.HasColumn(name) {
			return nil, errors.Errorf("expression %q references unknown column %q", p.Expression, name)
		}
	}
	values := make([]summary.Value, len(table.Records))
	for i, record := range table.Records {
		values[i] = evaluate(p.Expression, expression, variables, record)
	}
	return values, nil
}

// evaluate computes the expression for one record. A missing input, an
// evaluation error, or a non-numeric result makes the value missing.
func evaluate(source string, expression *govaluate.EvaluableExpression, variables []string, record summary.Record) summary.Value {
	parameters := make(map[string]any, len(variables))
	for _, name := range variables {
		v := record.Column(name)
		if !v.Valid {
			return summary.Missing
		}
		parameters[name] = v.Float
	}
	result, err := expression.Evaluate(parameters)
	if err != nil {
		slog.Debug("failed to evaluate expression", slog.String("expression", source), slog.String("label", record.Label), slog.String("error", err.Error()))
		return summary.Missing
	}
	f, ok := result.(float64)
	if !ok {
		slog.Debug("expression result is not a number", slog.String("expression", source), slog.String("label", record.Label), slog.Any("result", result))
		return summary.Missing
	}
	return summary.Some(f)
}
