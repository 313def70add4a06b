package config

import (
	"fmt"
	"strconv"

	"pngresize/internal/failure"
	"pngresize/internal/imagefs"
)

const stageValidating = "validating"

// ParseArgs validates positional arguments against the output mode and
// returns the resulting Job. Checks run in order: argument count, input
// directory existence, width, height. Nothing is created and the input
// directory is never listed here.
func (s *Settings) ParseArgs(args []string, fsys imagefs.FS) (Job, error) {
	if len(args) != s.Arity() {
		return Job{}, failure.Wrap(failure.ErrArgumentCount, stageValidating, s.Usage(),
			fmt.Errorf("got %d arguments, want %d", len(args), s.Arity()))
	}

	var job Job
	job.InputDir = args[0]
	sizeArgs := args[1:]
	if s.Output.Mode == OutputFixed {
		job.OutputDir = s.Output.FixedDir
	} else {
		job.OutputDir = args[1]
		sizeArgs = args[2:]
	}

	ok, err := imagefs.IsDir(fsys, job.InputDir)
	if err != nil {
		return Job{}, failure.Wrap(failure.ErrInvalidInput, stageValidating, job.InputDir, err)
	}
	if !ok {
		return Job{}, failure.Wrap(failure.ErrInvalidInput, stageValidating, job.InputDir, nil)
	}

	if job.Width, err = parseDimension(sizeArgs[0]); err != nil {
		return Job{}, err
	}
	if job.Height, err = parseDimension(sizeArgs[1]); err != nil {
		return Job{}, err
	}
	return job, nil
}

// parseDimension accepts base-10 integers within the 32-bit signed range that
// are not negative. Zero is allowed.
func parseDimension(raw string) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, failure.Wrap(failure.ErrInvalidSize, stageValidating, raw, err)
	}
	if n < 0 {
		return 0, failure.Wrap(failure.ErrInvalidSize, stageValidating, raw, fmt.Errorf("negative value %d", n))
	}
	return int(n), nil
}
