package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"pngresize/internal/failure"
	"pngresize/internal/imagecodec"
	"pngresize/internal/logging"
)

// Resize replaces every record's raster with a direct stretch to
// width×height. Path and Name are left untouched.
func Resize(ctx context.Context, records []*ImageRecord, width, height int, codec imagecodec.Codec, logger *slog.Logger) error {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "resizer"))
	for _, r := range records {
		out, err := codec.Resize(r.Image, width, height)
		if err != nil {
			return failure.Wrap(failure.ErrResize, StateResizing.String(), r.Path, err)
		}
		if out == nil {
			return failure.Wrap(failure.ErrResize, StateResizing.String(), r.Path, fmt.Errorf("codec returned no raster"))
		}
		if b := out.Bounds(); b.Dx() != width || b.Dy() != height {
			return failure.Wrap(failure.ErrResize, StateResizing.String(), r.Path,
				fmt.Errorf("codec produced %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height))
		}
		r.Image = out
		logger.Debug("image resized", logging.String(logging.FieldPath, r.Path))
	}
	return nil
}
