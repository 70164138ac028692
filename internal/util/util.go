/*
Package util includes path helpers shared by the commands and loaders.
*/
package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ExpandUser expands a leading '~' to the user's home directory. The path is
// returned unchanged when it has no '~' prefix or the home directory is unknown.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}
	usr, err := user.Current()
	if err != nil || usr.HomeDir == "" {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	return filepath.Join(usr.HomeDir, path[2:])
}

// AbsPath returns the absolute path after expanding '~' to the user's home dir.
// Use everywhere in place of filepath.Abs()
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}

// FileExists checks if a regular file exists at the given path.
// It returns an error if the path refers to something else, e.g., a directory.
func FileExists(path string) (bool, error) {
	return statIs(path, fs.FileMode.IsRegular, "file")
}

// DirectoryExists checks if the specified directory exists.
// It returns an error if the path refers to anything other than a directory.
func DirectoryExists(path string) (bool, error) {
	return statIs(path, fs.FileMode.IsDir, "directory")
}

func statIs(path string, is func(fs.FileMode) bool, kind string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !is(fileInfo.Mode()) {
		return false, errors.Errorf("%s not a %s", path, kind)
	}
	return true, nil
}
