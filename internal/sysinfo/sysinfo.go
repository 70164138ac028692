// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package sysinfo parses the system information captured alongside benchmark results.
package sysinfo

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// recognized line prefixes
const (
	KeyOS        = "OS"
	KeyCPU       = "CPU"
	KeyDriveType = "Drive Type"
)

// Info holds the display lines for the host a benchmark ran on. Each field is the
// full trimmed line, e.g., "OS: Ubuntu 24.04", or "<Key>: N/A" when unknown.
type Info struct {
	OS        string
	CPU       string
	DriveType string
}

// Default returns an Info with every field marked not available.
func Default() Info {
	return Info{
		OS:        placeholder(KeyOS),
		CPU:       placeholder(KeyCPU),
		DriveType: placeholder(KeyDriveType),
	}
}

func placeholder(key string) string {
	return key + ": N/A"
}

// Platform combines the OS and CPU lines for display on one line.
func (i Info) Platform() string {
	return i.OS + " | " + i.CPU
}

// Parse reads key-prefixed lines from r. Lines are matched from their first
// character; a repeated key keeps its last line.
func Parse(r io.Reader) (Info, error) {
	info := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, KeyOS+":"):
			info.OS = strings.TrimSpace(line)
		case strings.HasPrefix(line, KeyCPU+":"):
			info.CPU = strings.TrimSpace(line)
		case strings.HasPrefix(line, KeyDriveType+":"):
			info.DriveType = strings.TrimSpace(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Default(), errors.Wrap(err, "failed to read system info")
	}
	return info, nil
}

// Load parses the system info file at path. A file that does not exist is not an
// error, the defaults are returned.
func Load(path string) (Info, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("system info file not found, using defaults", slog.String("path", path))
			return Default(), nil
		}
		return Default(), errors.Wrap(err, "failed to open system info")
	}
	defer file.Close()
	info, err := Parse(file)
	if err != nil {
		return info, errors.Wrapf(err, "failed to parse %s", path)
	}
	slog.Debug("loaded system info", slog.String("os", info.OS), slog.String("cpu", info.CPU), slog.String("drive", info.DriveType))
	return info, nil
}
