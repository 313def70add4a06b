package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"pngresize/internal/config"
	"pngresize/internal/console"
	"pngresize/internal/failure"
	"pngresize/internal/imagecodec"
	"pngresize/internal/pipeline"
	"pngresize/internal/testsupport"
)

type runEnv struct {
	fs     *testsupport.MemFS
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newRunEnv() *runEnv {
	return &runEnv{fs: testsupport.NewMemFS()}
}

func (e *runEnv) run(t *testing.T, cfg config.Settings, codec imagecodec.Codec, args ...string) (pipeline.Stats, error) {
	t.Helper()
	return pipeline.Run(context.Background(), pipeline.Options{
		Settings: cfg,
		Args:     args,
		FS:       e.fs,
		Codec:    codec,
		Console:  console.New(&e.out, &e.errOut, cfg.Console),
	})
}

func sortedPaths(fs *testsupport.MemFS) []string {
	paths := fs.Paths()
	sort.Strings(paths)
	return paths
}

func TestRunResizesOnlyDirectPNGChildren(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 10, 10))
	env.fs.AddFile("in/b.txt", []byte("not an image"))
	env.fs.AddFile("in/sub/c.png", testsupport.EncodePNG(t, 3, 3))
	env.fs.AddFile("in/UPPER.PNG", testsupport.EncodePNG(t, 3, 3))

	cfg := testsupport.NewSettings(t)
	stats, err := env.run(t, cfg, nil, "in", "out", "4", "4")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.State != pipeline.StateDone {
		t.Fatalf("state = %v, want done", stats.State)
	}

	want := []string{"in/UPPER.PNG", "in/a.png", "in/b.txt", "in/sub/c.png", "out/a.png"}
	if got := sortedPaths(env.fs); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("files = %v, want %v", got, want)
	}
	data, _ := env.fs.File("out/a.png")
	if w, h := testsupport.PNGSizeBytes(t, data); w != 4 || h != 4 {
		t.Fatalf("out/a.png is %dx%d, want 4x4", w, h)
	}
	for _, opened := range env.fs.Opened {
		if opened != "in/a.png" {
			t.Fatalf("unexpected read of %s", opened)
		}
	}
	if len(stats.Written) != 1 || stats.Written[0].SourceWidth != 10 || stats.Written[0].Width != 4 {
		t.Fatalf("unexpected written stats %+v", stats.Written)
	}
	if stats.TotalBytes() != int64(len(data)) {
		t.Fatalf("TotalBytes = %d, want %d", stats.TotalBytes(), len(data))
	}
}

func TestRunPrintsStageMessagesInOrder(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/b.png", testsupport.EncodePNG(t, 5, 5))
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 5, 5))

	cfg := testsupport.NewSettings(t, testsupport.WithLanguage("en"))
	if _, err := env.run(t, cfg, nil, "in", "out", "2", "3"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := strings.Join([]string{
		"Process start.",
		"[collect] Found 2 image(s).",
		"[collect]   in/a.png",
		"[collect]   in/b.png",
		"[resize] Resizing images to 2 x 3.",
		"[resize] Resize complete.",
		"[save] Saving to out.",
		"[save] Save complete.",
		"Process finished.",
	}, "\n") + "\n"
	if env.out.String() != want {
		t.Fatalf("console output:\n%s\nwant:\n%s", env.out.String(), want)
	}
	if env.errOut.Len() != 0 {
		t.Fatalf("unexpected stderr %q", env.errOut.String())
	}
}

func TestRunValidationFailuresTouchNothing(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		marker error
	}{
		{"arity", []string{"in", "out", "4"}, failure.ErrArgumentCount},
		{"missing input", []string{"nowhere", "out", "4", "4"}, failure.ErrInvalidInput},
		{"text width", []string{"in", "out", "abc", "4"}, failure.ErrInvalidSize},
		{"negative height", []string{"in", "out", "4", "-5"}, failure.ErrInvalidSize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newRunEnv()
			env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))

			stats, err := env.run(t, testsupport.NewSettings(t), nil, tc.args...)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			if stats.State != pipeline.StateAborted || stats.Validated {
				t.Fatalf("unexpected stats %+v", stats)
			}
			if env.fs.HasDir("out") {
				t.Fatal("output directory must not be created")
			}
			if len(env.fs.Opened) != 0 {
				t.Fatalf("input files were read: %v", env.fs.Opened)
			}
			if env.out.Len() != 0 {
				t.Fatalf("no progress should be printed, got %q", env.out.String())
			}
		})
	}
}

func TestRunZeroSizeProducesEmptyImages(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 6, 6))

	stats, err := env.run(t, testsupport.NewSettings(t), nil, "in", "out", "0", "0")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, ok := env.fs.File("out/a.png")
	if !ok || !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected a PNG stream, got %q", data)
	}
	if stats.Written[0].Width != 0 || stats.Written[0].Height != 0 {
		t.Fatalf("unexpected size %+v", stats.Written[0])
	}
}

func TestRunSkipsUndecodableByDefault(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 8, 8))
	env.fs.AddFile("in/broken.png", []byte("garbage"))

	cfg := testsupport.NewSettings(t, testsupport.WithLanguage("en"))
	stats, err := env.run(t, cfg, nil, "in", "out", "2", "2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(stats.Skipped) != 1 || stats.Skipped[0].Path != "in/broken.png" {
		t.Fatalf("unexpected skipped %+v", stats.Skipped)
	}
	if _, ok := env.fs.File("out/broken.png"); ok {
		t.Fatal("broken image must not be written")
	}
	if _, ok := env.fs.File("out/a.png"); !ok {
		t.Fatal("good image should be written")
	}
	if !strings.Contains(env.errOut.String(), "Skipping unreadable image: in/broken.png") {
		t.Fatalf("missing skip warning in %q", env.errOut.String())
	}
}

func TestRunAbortPolicyFailsOnUndecodable(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 8, 8))
	env.fs.AddFile("in/broken.png", []byte("garbage"))

	stats, err := env.run(t, testsupport.NewSettings(t, testsupport.WithDecodeAbort()), nil, "in", "out", "2", "2")
	if !errors.Is(err, failure.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if failure.SubjectOf(err) != "in/broken.png" {
		t.Fatalf("subject = %q", failure.SubjectOf(err))
	}
	if stats.State != pipeline.StateAborted {
		t.Fatalf("state = %v", stats.State)
	}
	if env.fs.HasDir("out") {
		t.Fatal("nothing should be written after a fatal decode failure")
	}
}

func TestRunFixedOutputMode(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 8, 8))

	cfg := testsupport.NewSettings(t, testsupport.WithFixedOutput("./result"))
	stats, err := env.run(t, cfg, nil, "in", "3", "5")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Job.OutputDir != "./result" {
		t.Fatalf("output dir = %q", stats.Job.OutputDir)
	}
	data, ok := env.fs.File("result/a.png")
	if !ok {
		t.Fatalf("expected result/a.png in %v", env.fs)
	}
	if w, h := testsupport.PNGSizeBytes(t, data); w != 3 || h != 5 {
		t.Fatalf("got %dx%d, want 3x5", w, h)
	}
}

func TestRunOutputDirectoryCreationIsSingleLevel(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))

	_, err := env.run(t, testsupport.NewSettings(t), nil, "in", "missing/out", "2", "2")
	if !errors.Is(err, failure.ErrDirectoryCreation) {
		t.Fatalf("expected ErrDirectoryCreation, got %v", err)
	}
	if env.fs.HasDir("missing") {
		t.Fatal("parent directories must not be created")
	}
}

func TestRunOutputPathIsAFile(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))
	env.fs.AddFile("out", []byte("file"))

	if _, err := env.run(t, testsupport.NewSettings(t), nil, "in", "out", "2", "2"); !errors.Is(err, failure.ErrDirectoryCreation) {
		t.Fatalf("expected ErrDirectoryCreation, got %v", err)
	}
}

func TestRunWriteFailureKeepsEarlierFiles(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))
	env.fs.AddFile("in/b.png", testsupport.EncodePNG(t, 4, 4))
	env.fs.AddFile("in/c.png", testsupport.EncodePNG(t, 4, 4))
	env.fs.AddDir("out")
	env.fs.FailCreate["out/b.png"] = errors.New("disk full")

	stats, err := env.run(t, testsupport.NewSettings(t), nil, "in", "out", "2", "2")
	if !errors.Is(err, failure.ErrEncodeWrite) {
		t.Fatalf("expected ErrEncodeWrite, got %v", err)
	}
	if _, ok := env.fs.File("out/a.png"); !ok {
		t.Fatal("file written before the failure should remain")
	}
	if _, ok := env.fs.File("out/c.png"); ok {
		t.Fatal("remaining writes should be aborted")
	}
	if len(stats.Written) != 1 {
		t.Fatalf("written = %+v", stats.Written)
	}
}

func TestRunOverwritesExistingOutput(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))
	env.fs.AddFile("out/a.png", []byte("stale"))

	if _, err := env.run(t, testsupport.NewSettings(t), nil, "in", "out", "2", "2"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, _ := env.fs.File("out/a.png")
	if w, h := testsupport.PNGSizeBytes(t, data); w != 2 || h != 2 {
		t.Fatalf("got %dx%d", w, h)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 9, 7))
	cfg := testsupport.NewSettings(t)

	if _, err := env.run(t, cfg, nil, "in", "out", "5", "5"); err != nil {
		t.Fatal(err)
	}
	first, _ := env.fs.File("out/a.png")
	if _, err := env.run(t, cfg, nil, "in", "out", "5", "5"); err != nil {
		t.Fatal(err)
	}
	second, _ := env.fs.File("out/a.png")
	if !bytes.Equal(first, second) {
		t.Fatal("second run produced different bytes")
	}
}

type brokenCodec struct {
	imagecodec.PNG
}

func (brokenCodec) Resize(image.Image, int, int) (image.Image, error) {
	return nil, errors.New("malformed raster")
}

func TestRunResizeFailureIsFatal(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))

	_, err := env.run(t, testsupport.NewSettings(t), brokenCodec{}, "in", "out", "2", "2")
	if !errors.Is(err, failure.ErrResize) {
		t.Fatalf("expected ErrResize, got %v", err)
	}
}

type failingEncoder struct {
	imagecodec.PNG
}

func (failingEncoder) Encode(io.Writer, image.Image) error {
	return errors.New("encoder exploded")
}

func TestRunEncodeFailureIsFatal(t *testing.T) {
	env := newRunEnv()
	env.fs.AddFile("in/a.png", testsupport.EncodePNG(t, 4, 4))

	_, err := env.run(t, testsupport.NewSettings(t), failingEncoder{}, "in", "out", "2", "2")
	if !errors.Is(err, failure.ErrEncodeWrite) {
		t.Fatalf("expected ErrEncodeWrite, got %v", err)
	}
}

func TestRunWithOSAndLock(t *testing.T) {
	base := t.TempDir()
	in := filepath.Join(base, "in")
	out := filepath.Join(base, "out")
	testsupport.WritePNG(t, filepath.Join(in, "a.png"), 10, 10)
	testsupport.WriteFile(t, filepath.Join(in, "b.txt"), []byte("text"))

	cfg := testsupport.NewSettings(t)
	cfg.Lock = true
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stats, err := pipeline.Run(context.Background(), pipeline.Options{
		Settings: cfg,
		Args:     []string{in, out, "4", "4"},
		LockDir:  t.TempDir(),
		Now:      func() time.Time { return clock },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.RunID == "" || !stats.StartedAt.Equal(clock) {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if names := testsupport.DirNames(t, out); len(names) != 1 || names[0] != "a.png" {
		t.Fatalf("output dir contains %v", names)
	}
	if w, h := testsupport.PNGSize(t, filepath.Join(out, "a.png")); w != 4 || h != 4 {
		t.Fatalf("got %dx%d", w, h)
	}
}

func TestStateNames(t *testing.T) {
	if pipeline.StateDone.String() != "done" || !pipeline.StateDone.Terminal() {
		t.Fatal("done should be terminal")
	}
	if pipeline.StateWriting.Terminal() {
		t.Fatal("writing is not terminal")
	}
	text, _ := pipeline.StateAborted.MarshalText()
	if string(text) != "aborted" {
		t.Fatalf("MarshalText = %q", text)
	}
}
