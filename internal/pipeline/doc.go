// Package pipeline runs one batch: Validating → Collecting → Resizing →
// Writing → Done, short-circuiting to Aborted on the first fatal error.
//
// Collector lists the input directory one level deep and decodes every
// ".png" child into an ImageRecord. Resize replaces each record's raster with
// a direct stretch to the target size. Writer creates the output directory
// (a single level) and encodes every record under its source file name. Run
// wires the stages together and prints a localized line at each stage
// boundary.
//
// Decode failures follow config.DecodePolicy: "skip" records the file as
// skipped, prints a warning and continues; "abort" fails the run with
// failure.ErrDecode. Everything runs on the caller's goroutine, one image at
// a time.
package pipeline
