// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package summary

import "github.com/pkg/errors"

// Goal says which extreme of a metric is best.
type Goal string

const (
	Minimize Goal = "min"
	Maximize Goal = "max"
)

// ParseGoal accepts "min" or "max".
func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case Minimize, Maximize:
		return Goal(s), nil
	}
	return "", errors.Errorf("invalid goal %q, expected %q or %q", s, Minimize, Maximize)
}

// BestIndex returns the index of the best value for the goal, skipping missing
// values. Ties resolve to the earliest index. ok is false when every value is missing.
func BestIndex(values []Value, goal Goal) (idx int, ok bool) {
	idx = -1
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if idx == -1 || goal.better(v.Float, values[idx].Float) {
			idx = i
		}
	}
	return idx, idx != -1
}

func (g Goal) better(candidate, current float64) bool {
	if g == Maximize {
		return candidate > current
	}
	return candidate < current
}
