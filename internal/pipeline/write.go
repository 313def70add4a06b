package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"pngresize/internal/failure"
	"pngresize/internal/imagecodec"
	"pngresize/internal/imagefs"
	"pngresize/internal/logging"
)

// Writer encodes records into the output directory.
type Writer struct {
	FS     imagefs.FS
	Codec  imagecodec.Codec
	Logger *slog.Logger
}

// Write creates outputDir when absent (one level only) and writes each record
// to outputDir/Name, overwriting silently. The first failure stops the batch;
// files already written stay in place.
func (w *Writer) Write(ctx context.Context, records []*ImageRecord, outputDir string) ([]Written, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(w.Logger, "writer"))

	if err := w.ensureDir(outputDir); err != nil {
		return nil, err
	}

	written := make([]Written, 0, len(records))
	for _, r := range records {
		dest := filepath.Join(outputDir, r.Name)
		n, err := w.writeOne(dest, r)
		if err != nil {
			return written, failure.Wrap(failure.ErrEncodeWrite, StateWriting.String(), dest, err)
		}
		width, height := r.Size()
		written = append(written, Written{
			Name:         r.Name,
			Source:       r.Path,
			Path:         dest,
			Bytes:        n,
			SourceWidth:  r.SourceWidth,
			SourceHeight: r.SourceHeight,
			Width:        width,
			Height:       height,
		})
		logger.Info("image written", logging.String(logging.FieldPath, dest), logging.Int64("bytes", n))
	}
	return written, nil
}

func (w *Writer) ensureDir(dir string) error {
	info, err := w.FS.Stat(dir)
	switch {
	case err == nil && info.IsDir:
		return nil
	case err == nil:
		return failure.Wrap(failure.ErrDirectoryCreation, StateWriting.String(), dir, fmt.Errorf("not a directory"))
	}
	if err := w.FS.Mkdir(dir); err != nil {
		return failure.Wrap(failure.ErrDirectoryCreation, StateWriting.String(), dir, err)
	}
	return nil
}

func (w *Writer) writeOne(dest string, r *ImageRecord) (int64, error) {
	f, err := w.FS.Create(dest)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: f}
	if err := w.Codec.Encode(cw, r.Image); err != nil {
		_ = f.Close()
		return cw.n, err
	}
	if err := f.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
