// Package report writes a TOML record of a finished run.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pngresize/internal/config"
	"pngresize/internal/pipeline"
)

// Report is the document written to disk.
type Report struct {
	RunID      string             `toml:"run_id"`
	State      pipeline.State     `toml:"state"`
	StartedAt  time.Time          `toml:"started_at"`
	FinishedAt time.Time          `toml:"finished_at"`
	Duration   string             `toml:"duration"`
	Collected  int                `toml:"collected"`
	TotalBytes int64              `toml:"total_bytes"`
	Job        config.Job         `toml:"job"`
	Settings   config.Settings    `toml:"settings"`
	Files      []pipeline.Written `toml:"files"`
	Skipped    []pipeline.Skipped `toml:"skipped,omitempty"`
}

// Build converts run stats into a Report.
func Build(stats pipeline.Stats, settings config.Settings) Report {
	return Report{
		RunID:      stats.RunID,
		State:      stats.State,
		StartedAt:  stats.StartedAt.UTC(),
		FinishedAt: stats.FinishedAt.UTC(),
		Duration:   stats.Duration().String(),
		Collected:  stats.Collected,
		TotalBytes: stats.TotalBytes(),
		Job:        stats.Job,
		Settings:   settings,
		Files:      stats.Written,
		Skipped:    stats.Skipped,
	}
}

// Marshal encodes r as TOML.
func Marshal(r Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores the report for stats at path, replacing any previous file.
// The parent directory must exist.
func Write(path string, stats pipeline.Stats, settings config.Settings) error {
	data, err := Marshal(Build(stats, settings))
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.toml")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := toml.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}
