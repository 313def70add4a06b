package pipeline

import (
	"time"

	"pngresize/internal/config"
)

// Written describes one output file.
type Written struct {
	Name         string `toml:"name"`
	Source       string `toml:"source"`
	Path         string `toml:"path"`
	Bytes        int64  `toml:"bytes"`
	SourceWidth  int    `toml:"source_width"`
	SourceHeight int    `toml:"source_height"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
}

// Skipped describes a source file left out of the batch.
type Skipped struct {
	Path   string `toml:"path"`
	Reason string `toml:"reason"`
}

// Stats summarizes a run.
type Stats struct {
	RunID      string
	State      State
	Job        config.Job
	Validated  bool
	Collected  int
	Skipped    []Skipped
	Written    []Written
	StartedAt  time.Time
	FinishedAt time.Time
}

// TotalBytes sums the size of every written file.
func (s Stats) TotalBytes() int64 {
	var total int64
	for _, w := range s.Written {
		total += w.Bytes
	}
	return total
}

// Duration is the wall time of the run.
func (s Stats) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
