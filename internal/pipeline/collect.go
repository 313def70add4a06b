package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"pngresize/internal/config"
	"pngresize/internal/console"
	"pngresize/internal/failure"
	"pngresize/internal/i18n"
	"pngresize/internal/imagecodec"
	"pngresize/internal/imagefs"
	"pngresize/internal/logging"
)

// pngExtension is matched case-sensitively: "A.PNG" is not collected.
const pngExtension = ".png"

// Collector loads the PNG children of a directory.
type Collector struct {
	FS      imagefs.FS
	Codec   imagecodec.Codec
	Policy  config.DecodePolicy
	Console *console.Console
	Logger  *slog.Logger
}

// Collect lists inputDir without recursing, decodes every ".png" file, and
// prints the discovered count followed by one path per record.
func (c *Collector) Collect(ctx context.Context, inputDir string) ([]*ImageRecord, []Skipped, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(c.Logger, "collector"))

	entries, err := c.FS.List(inputDir)
	if err != nil {
		return nil, nil, failure.Wrap(failure.ErrInvalidInput, StateCollecting.String(), inputDir, err)
	}

	var records []*ImageRecord
	var skipped []Skipped
	for _, entry := range entries {
		if !isPNG(entry) {
			logger.Debug("entry ignored", logging.String(logging.FieldPath, entry.Path))
			continue
		}
		record, err := c.load(entry)
		if err != nil {
			if c.Policy == config.DecodeAbort {
				return nil, nil, err
			}
			skipped = append(skipped, Skipped{Path: entry.Path, Reason: err.Error()})
			logger.Info("image skipped", logging.String(logging.FieldPath, entry.Path), logging.Error(err))
			if c.Console != nil {
				c.Console.Warn(i18n.StageCollect, i18n.DecodeSkipped, entry.Path)
			}
			continue
		}
		logger.Info("image collected",
			logging.String(logging.FieldPath, record.Path),
			logging.Int("width", record.SourceWidth),
			logging.Int("height", record.SourceHeight),
		)
		records = append(records, record)
	}

	if c.Console != nil {
		c.Console.Info(i18n.StageCollect, i18n.Found, strconv.Itoa(len(records)))
		for _, r := range records {
			c.Console.Info(i18n.StageCollect, i18n.ImagePath, r.Path)
		}
	}
	return records, skipped, nil
}

func isPNG(entry imagefs.Entry) bool {
	return !entry.IsDir && filepath.Ext(entry.Name) == pngExtension
}

// load opens, decodes and closes one file. The handle never outlives the call.
func (c *Collector) load(entry imagefs.Entry) (*ImageRecord, error) {
	f, err := c.FS.Open(entry.Path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDecode, StateCollecting.String(), entry.Path, err)
	}
	defer f.Close()

	img, err := c.Codec.Decode(f)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDecode, StateCollecting.String(), entry.Path, err)
	}
	if img == nil {
		return nil, failure.Wrap(failure.ErrDecode, StateCollecting.String(), entry.Path, fmt.Errorf("codec returned no raster"))
	}
	b := img.Bounds()
	return &ImageRecord{
		Path:         entry.Path,
		Name:         filepath.Base(entry.Path),
		Image:        img,
		SourceWidth:  b.Dx(),
		SourceHeight: b.Dy(),
	}, nil
}
