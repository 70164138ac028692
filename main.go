// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"benchplot/cmd"
)

const profileEnvVar = "PLOT_BENCHMARK_PROFILE"

func main() {
	// profile only if the environment variable is set
	if os.Getenv(profileEnvVar) != "" {
		stop, err := startProfiling("cpu.prof", "mem.prof")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start profiling: %v\n", err)
			os.Exit(1)
		}
		defer stop()
	}
	cmd.Execute()
}

// startProfiling starts CPU profiling and returns a function that stops it and
// writes a heap profile.
func startProfiling(cpuPath, memPath string) (func(), error) {
	cpuFile, err := os.Create(cpuPath)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		cpuFile.Close()
		memFile, err := os.Create(memPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create heap profile: %v\n", err)
			return
		}
		defer memFile.Close()
		if err := pprof.WriteHeapProfile(memFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write heap profile: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Profiling data written to %s and %s\n", cpuPath, memPath)
	}, nil
}
