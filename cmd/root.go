// Package cmd provides the command line interface for the application.
package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"benchplot/internal/config"
	"benchplot/internal/report"
	"benchplot/internal/util"
)

var gLogFile *os.File
var gInitialized bool
var gVersion = "9.9.9" // overwritten by ldflags

const (
	// AppName is the name of the application
	AppName     = "plot_benchmark"
	LongAppName = "mkbrr benchmark plotter"
)

var examples = []string{
	fmt.Sprintf("  Plot a results directory:             $ %s ./benchmark_results", AppName),
	fmt.Sprintf("  Write the image somewhere else:       $ %s ./benchmark_results --output ~/charts/run.png", AppName),
	fmt.Sprintf("  Use a custom chart configuration:     $ %s ./benchmark_results --config chart.yaml", AppName),
	fmt.Sprintf("  Lower resolution for quick previews:  $ %s ./benchmark_results --dpi 100", AppName),
}

var (
	// logging
	flagDebug     bool
	flagLogStdOut bool
	flagLogFile   string
	// chart
	flagConfig string
	flagOutput string
	flagDPI    int
)

const (
	flagDebugName     = "debug"
	flagLogStdOutName = "log-stdout"
	flagLogFileName   = "log-file"
	flagConfigName    = "config"
	flagOutputName    = "output"
	flagDPIName       = "dpi"
)

// flagGroup is a titled set of flags shown together in the usage text
type flagGroup struct {
	GroupName string
	Flags     []string
}

var flagGroups = []flagGroup{
	{GroupName: "Chart Options", Flags: []string{flagConfigName, flagOutputName, flagDPIName}},
	{GroupName: "Logging Options", Flags: []string{flagDebugName, flagLogStdOutName, flagLogFileName}},
}

// rootCmd represents the only command of the application
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                AppName + " <results_directory>",
		Short:              "Render benchmark results as a comparison chart",
		Long:               fmt.Sprintf(`%s (%s) reads summary.csv and system_info.txt from a benchmark results directory and renders memory, CPU, disk read and total time panels, highlighting the best run of each, to %s.`, LongAppName, AppName, report.OutputFileName),
		Example:            strings.Join(examples, "\n"),
		Args:               validateArgs,
		PersistentPreRunE:  initializeApplication,
		PersistentPostRunE: terminateApplication,
		RunE:               runCmd,
		Version:            gVersion,
	}
	cmd.Flags().StringVar(&flagConfig, flagConfigName, "", "YAML chart configuration overriding the default panels, colors and size")
	cmd.Flags().StringVar(&flagOutput, flagOutputName, "", fmt.Sprintf("output image path (default: <results_directory>/%s)", report.OutputFileName))
	cmd.Flags().IntVar(&flagDPI, flagDPIName, config.Default().DPI, "image resolution in dots per inch")
	cmd.Flags().BoolVar(&flagDebug, flagDebugName, false, "enable debug logging")
	cmd.Flags().BoolVar(&flagLogStdOut, flagLogStdOutName, false, "write logs to stdout as JSON")
	cmd.Flags().StringVar(&flagLogFile, flagLogFileName, "", "append logs to this file")
	cmd.SetUsageFunc(usageFunc)
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s\n\n", cmd.UseLine())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range flagGroups {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, name := range group.Flags {
			flag := cmd.Flags().Lookup(name)
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Usage, flagDefault(flag))
		}
	}
	cmd.Println("  Other:")
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "help" || flag.Name == "version" {
			cmd.Printf("    --%-20s %s\n", flag.Name, flag.Usage)
		}
	})
	return nil
}

func flagDefault(flag *pflag.Flag) string {
	if flag.DefValue == "" || flag.DefValue == "false" {
		return ""
	}
	return fmt.Sprintf(" (default: %s)", flag.DefValue)
}

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main().
func Execute() {
	cobra.EnableCaseInsensitive = true
	err := rootCmd.Execute()
	if err != nil {
		terminateErr := terminateApplication(rootCmd, os.Args)
		if terminateErr != nil {
			slog.Error("Error terminating application", slog.String("error", terminateErr.Error()))
		}
		os.Exit(1)
	}
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one results directory, got %d argument(s)", len(args))
	}
	return nil
}

func initializeApplication(cmd *cobra.Command, args []string) error {
	// arguments are valid at this point, errors from here on are not usage errors
	cmd.SilenceUsage = true
	// configure logging
	var logOpts slog.HandlerOptions
	if flagDebug {
		logOpts.Level = slog.LevelDebug
		logOpts.AddSource = true
	} else {
		logOpts.Level = slog.LevelInfo
		logOpts.AddSource = false
	}
	if flagLogStdOut && flagLogFile != "" {
		return fmt.Errorf("both --%s and --%s specified, please pick one only", flagLogStdOutName, flagLogFileName)
	}
	var handler slog.Handler
	switch {
	case flagLogStdOut:
		handler = slog.NewJSONHandler(cmd.OutOrStdout(), &logOpts)
	case flagLogFile != "":
		var err error
		gLogFile, err = os.OpenFile(util.ExpandUser(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644) // #nosec G302 G304
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		handler = slog.NewTextHandler(gLogFile, &logOpts)
	default:
		// keep stdout for the status line, only warnings and errors reach the terminal
		if !flagDebug {
			logOpts.Level = slog.LevelWarn
		}
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), &logOpts)
	}
	slog.SetDefault(slog.New(handler))
	gInitialized = true
	slog.Info("Starting up", slog.String("app", AppName), slog.String("version", gVersion), slog.Int("PID", os.Getpid()), slog.String("arguments", strings.Join(os.Args, " ")))
	return nil
}

// terminateApplication logs shutdown and closes the log file, if one was opened
func terminateApplication(cmd *cobra.Command, args []string) error {
	if !gInitialized {
		return nil
	}
	gInitialized = false
	slog.Info("Shutting down", slog.String("app", AppName), slog.String("version", gVersion), slog.Int("PID", os.Getpid()))
	if gLogFile != nil {
		// route later log calls away from the closed file
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		err := gLogFile.Close()
		gLogFile = nil
		if err != nil {
			return err
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	resultsDir := util.ExpandUser(args[0])
	if _, err := util.DirectoryExists(resultsDir); err != nil {
		return err
	}
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(util.ExpandUser(flagConfig)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed(flagDPIName) {
		cfg.DPI = flagDPI
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	outputPath := flagOutput
	if outputPath != "" {
		outputPath = util.ExpandUser(outputPath)
	}
	result, err := report.Render(report.Options{
		ResultsDir: resultsDir,
		OutputPath: outputPath,
		Config:     cfg,
	})
	if err != nil {
		slog.Debug("failed to render benchmark report", slog.String("dir", resultsDir), slog.String("error", err.Error()))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plot saved to: %s\n", result.OutputPath)
	return nil
}
