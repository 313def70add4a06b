package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pngresize/internal/config"
	"pngresize/internal/console"
	"pngresize/internal/failure"
	"pngresize/internal/imagecodec"
	"pngresize/internal/logging"
	"pngresize/internal/pipeline"
	"pngresize/internal/report"
)

var version = "dev"

// application holds everything a single invocation needs.
type application struct {
	settings config.Settings
	stdout   io.Writer
	stderr   io.Writer
	// lockDir overrides the lock file location; tests point it at a temp dir.
	lockDir  string
	exitCode int

	outputMode string
	decodeMode string
	colorMode  string
}

func run(args []string, stdout, stderr io.Writer) int {
	return newApplication(stdout, stderr).execute(args)
}

func newApplication(stdout, stderr io.Writer) *application {
	return &application{settings: config.Default(), stdout: stdout, stderr: stderr}
}

func (a *application) execute(args []string) int {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	if err := cmd.Execute(); err != nil {
		console.New(nil, a.stderr, a.settings.Console).FlagFailure(err)
		return failure.ExitFailure
	}
	return a.exitCode
}

func newRootCommand(a *application) *cobra.Command {
	s := &a.settings
	a.outputMode = string(s.Output.Mode)
	a.decodeMode = string(s.Decode.OnError)
	a.colorMode = string(s.Console.Color)

	rootCmd := &cobra.Command{
		Use:   "pngresize [flags] <inputDir> <outputDir> <width> <height>",
		Short: "Resize every PNG in a directory to a fixed size",
		Long: "pngresize reads the .png files directly inside inputDir, stretches each one to\n" +
			"width x height and writes them under the same name into outputDir.\n\n" +
			"With --output-mode fixed the outputDir argument is dropped and results go to\n" +
			"--fixed-output instead.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyFlags(); err != nil {
				return err
			}
			a.exitCode = a.resize(cmd.Context(), args)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&a.outputMode, "output-mode", a.outputMode, "Where the output directory comes from: argument or fixed")
	flags.StringVar(&s.Output.FixedDir, "fixed-output", s.Output.FixedDir, "Output directory used with --output-mode fixed")
	flags.StringVar(&s.Resize.Filter, "filter", s.Resize.Filter, "Resampling filter: "+joinNames(imagecodec.Filters()))
	flags.StringVar(&s.Resize.Compression, "compression", s.Resize.Compression, "PNG compression: "+joinNames(imagecodec.Compressions()))
	flags.StringVar(&a.decodeMode, "on-decode-error", a.decodeMode, "What an unreadable PNG does to the run: skip or abort")
	flags.StringVar(&s.Console.Language, "lang", s.Console.Language, "Console language: ja or en")
	flags.StringVar(&a.colorMode, "color", a.colorMode, "Console colour: auto, always or never")
	flags.BoolVar(&s.Console.Summary, "summary", s.Console.Summary, "Print a table of written files after the run")
	flags.StringVar(&s.ReportPath, "report", s.ReportPath, "Write a TOML run report to this path")
	flags.BoolVar(&s.Lock, "lock", s.Lock, "Hold an advisory lock on the output directory while running")
	flags.StringVar(&s.Logging.Level, "log-level", s.Logging.Level, "Log level: debug, info, warn or error")
	flags.StringVar(&s.Logging.Format, "log-format", s.Logging.Format, "Log format: console or json")
	flags.StringVar(&s.Logging.File, "log-file", s.Logging.File, "Also append logs to this file")

	return rootCmd
}

func (a *application) applyFlags() error {
	a.settings.Output.Mode = config.OutputMode(a.outputMode)
	a.settings.Decode.OnError = config.DecodePolicy(a.decodeMode)
	a.settings.Console.Color = config.ColorMode(a.colorMode)
	return a.settings.Validate()
}

// resize runs the batch and renders its outcome. It returns the exit code.
func (a *application) resize(ctx context.Context, args []string) int {
	if ctx == nil {
		ctx = context.Background()
	}
	out := console.New(a.stdout, a.stderr, a.settings.Console)

	logger, err := logging.NewFromSettings(a.settings.Logging, a.stderr)
	if err != nil {
		out.FlagFailure(fmt.Errorf("--log-file: %w", err))
		return failure.ExitFailure
	}

	stats, runErr := pipeline.Run(ctx, pipeline.Options{
		Settings: a.settings,
		Args:     args,
		Console:  out,
		Logger:   logger,
		LockDir:  a.lockDir,
	})
	if runErr != nil {
		out.Failure(runErr)
	}

	if stats.Validated {
		if a.settings.Console.Summary && len(stats.Written)+len(stats.Skipped) > 0 {
			fmt.Fprintln(a.stdout, renderSummary(out.Printer(), stats))
		}
		if path := strings.TrimSpace(a.settings.ReportPath); path != "" {
			if err := report.Write(path, stats, a.settings); err != nil {
				logger.Info("run report not written", logging.String(logging.FieldPath, path), logging.Error(err))
				if runErr == nil {
					out.Failure(err)
					return failure.ExitFailure
				}
			}
		}
	}
	return failure.ExitCode(runErr)
}

func joinNames[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
