// Package config holds pngresize run settings and validates positional
// arguments.
//
// Settings come from repository defaults overridden by command-line flags;
// there is no configuration file. ParseArgs turns the positional arguments
// into a Job (input directory, output directory, width, height) and reports
// argument errors with the markers from internal/failure so the command can
// localize them.
//
// Always obtain a Job through ParseArgs so downstream stages can rely on an
// existing input directory and non-negative dimensions.
package config
