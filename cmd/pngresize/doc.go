// Package main hosts the pngresize command.
//
// The command resizes every PNG directly inside an input directory to a fixed
// width and height and writes the results into an output directory. Progress
// is printed in Japanese by default; --lang en switches the console to
// English. Diagnostic logs go to stderr and are quiet unless --log-level is
// raised.
//
// Keep this package thin: parsing and wiring live here, the batch itself lives
// in internal/pipeline.
package main
