package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"pngresize/internal/config"
	"pngresize/internal/console"
	"pngresize/internal/i18n"
	"pngresize/internal/imagecodec"
	"pngresize/internal/imagefs"
	"pngresize/internal/logging"
	"pngresize/internal/runlock"
)

// Options carries the collaborators of a run. Zero values fall back to the
// host filesystem, a codec built from Settings.Resize, a discarding console
// and a no-op logger.
type Options struct {
	Settings config.Settings
	Args     []string
	FS       imagefs.FS
	Codec    imagecodec.Codec
	Console  *console.Console
	Logger   *slog.Logger
	// LockDir holds output-directory lock files when Settings.Lock is set.
	// Empty means the system temp directory.
	LockDir string
	Now     func() time.Time
}

// Run validates Args and executes the batch. The returned Stats always
// carries the terminal state, including on error.
func Run(ctx context.Context, opts Options) (Stats, error) {
	opts = withDefaults(opts)

	stats := Stats{RunID: uuid.NewString(), State: StateValidating, StartedAt: opts.Now()}
	ctx = logging.WithRunID(ctx, stats.RunID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "pipeline"))

	abort := func(err error) (Stats, error) {
		logger.Info("run aborted", logging.String("state", stats.State.String()), logging.Error(err))
		stats.State = StateAborted
		stats.FinishedAt = opts.Now()
		return stats, err
	}

	settings := opts.Settings
	job, err := settings.ParseArgs(opts.Args, opts.FS)
	if err != nil {
		return abort(err)
	}
	stats.Job = job
	stats.Validated = true
	logger.Info("arguments validated",
		logging.String("input", job.InputDir),
		logging.String("output", job.OutputDir),
		logging.Int("width", job.Width),
		logging.Int("height", job.Height),
	)

	codec := opts.Codec
	if codec == nil {
		built, err := imagecodec.New(settings.Resize.Filter, settings.Resize.Compression)
		if err != nil {
			return abort(err)
		}
		codec = built
	}

	opts.Console.Info("", i18n.Start)

	if settings.Lock {
		lock, err := runlock.Acquire(opts.LockDir, job.OutputDir)
		if err != nil {
			return abort(err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("lock release failed", logging.Error(err))
			}
		}()
	}

	stats.State = StateCollecting
	collector := &Collector{
		FS:      opts.FS,
		Codec:   codec,
		Policy:  settings.Decode.OnError,
		Console: opts.Console,
		Logger:  opts.Logger,
	}
	records, skipped, err := collector.Collect(logging.WithStage(ctx, StateCollecting.String()), job.InputDir)
	stats.Skipped = skipped
	if err != nil {
		return abort(err)
	}
	stats.Collected = len(records)

	stats.State = StateResizing
	opts.Console.Info(i18n.StageResize, i18n.ResizeTarget, strconv.Itoa(job.Width), strconv.Itoa(job.Height))
	if err := Resize(logging.WithStage(ctx, StateResizing.String()), records, job.Width, job.Height, codec, opts.Logger); err != nil {
		return abort(err)
	}
	opts.Console.Done(i18n.StageResize, i18n.ResizeDone)

	stats.State = StateWriting
	opts.Console.Info(i18n.StageWrite, i18n.SaveTarget, job.OutputDir)
	writer := &Writer{FS: opts.FS, Codec: codec, Logger: opts.Logger}
	written, err := writer.Write(logging.WithStage(ctx, StateWriting.String()), records, job.OutputDir)
	stats.Written = written
	if err != nil {
		return abort(err)
	}
	opts.Console.Done(i18n.StageWrite, i18n.SaveDone)

	stats.State = StateDone
	stats.FinishedAt = opts.Now()
	opts.Console.Info("", i18n.Finish)
	logger.Info("run finished",
		logging.Int("written", len(stats.Written)),
		logging.Int("skipped", len(stats.Skipped)),
		logging.Int64("bytes", stats.TotalBytes()),
	)
	return stats, nil
}

func withDefaults(opts Options) Options {
	if opts.FS == nil {
		opts.FS = imagefs.OS{}
	}
	if opts.Console == nil {
		opts.Console = console.New(nil, nil, opts.Settings.Console)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}
