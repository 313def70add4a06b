package config

import (
	"fmt"
	"strings"
)

// OutputMode selects where the output directory comes from.
type OutputMode string

const (
	// OutputFromArgument takes the output directory from the second positional.
	OutputFromArgument OutputMode = "argument"
	// OutputFixed writes to Output.FixedDir and drops the positional.
	OutputFixed OutputMode = "fixed"
)

// DecodePolicy decides what an undecodable source file does to the run.
type DecodePolicy string

const (
	DecodeSkip  DecodePolicy = "skip"
	DecodeAbort DecodePolicy = "abort"
)

// ColorMode controls ANSI colour on the console.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Output contains output directory settings.
type Output struct {
	Mode     OutputMode `toml:"mode"`
	FixedDir string     `toml:"fixed_dir"`
}

// Resize contains raster settings.
type Resize struct {
	Filter      string `toml:"filter"`
	Compression string `toml:"compression"`
}

// Decode contains source decoding settings.
type Decode struct {
	OnError DecodePolicy `toml:"on_error"`
}

// Console contains user-facing output settings.
type Console struct {
	Language string    `toml:"language"`
	Color    ColorMode `toml:"color"`
	Summary  bool      `toml:"summary"`
}

// Logging contains diagnostic log settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Settings encapsulates every knob of a run.
//
// Sections:
//   - Output: OutputDirectoryMode and the fixed fallback directory
//   - Resize: resampling filter and PNG compression level
//   - Decode: per-file decode failure policy
//   - Console: language, colour and summary table
//   - Logging: slog level, format and optional file
//   - ReportPath: optional TOML run report destination
//   - Lock: advisory lock on the output directory
type Settings struct {
	Output     Output  `toml:"output"`
	Resize     Resize  `toml:"resize"`
	Decode     Decode  `toml:"decode"`
	Console    Console `toml:"console"`
	Logging    Logging `toml:"logging"`
	ReportPath string  `toml:"report_path,omitempty"`
	Lock       bool    `toml:"lock"`
}

// Job is a validated invocation.
type Job struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
}

// Arity returns the number of positionals the output mode requires.
func (s *Settings) Arity() int {
	if s.Output.Mode == OutputFixed {
		return 3
	}
	return 4
}

// Usage returns the positional synopsis for the output mode.
func (s *Settings) Usage() string {
	if s.Output.Mode == OutputFixed {
		return "<inputDir> <width> <height>"
	}
	return "<inputDir> <outputDir> <width> <height>"
}

func (j Job) String() string {
	return fmt.Sprintf("%s -> %s (%dx%d)", j.InputDir, j.OutputDir, j.Width, j.Height)
}

func normalizeEnum(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
