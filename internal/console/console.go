// Package console writes the localized, stage-tagged progress lines of a run.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"pngresize/internal/config"
	"pngresize/internal/failure"
	"pngresize/internal/i18n"
)

type lineKind int

const (
	kindInfo lineKind = iota
	kindOK
	kindWarn
	kindError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Console is the injected output sink. Progress goes to out; warnings and
// the single failure line go to errOut.
type Console struct {
	out      io.Writer
	errOut   io.Writer
	printer  *i18n.Printer
	colorOut bool
	colorErr bool
}

// New builds a Console for the language and colour mode in cfg.
func New(out, errOut io.Writer, cfg config.Console) *Console {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return &Console{
		out:      out,
		errOut:   errOut,
		printer:  i18n.NewPrinter(cfg.Language),
		colorOut: shouldColorize(out, cfg.Color),
		colorErr: shouldColorize(errOut, cfg.Color),
	}
}

// Printer exposes the message printer for callers composing their own text.
func (c *Console) Printer() *i18n.Printer {
	return c.printer
}

// Info writes a progress line tagged with stage. An empty stage writes the
// message untagged (banners).
func (c *Console) Info(stage, key i18n.Key, args ...any) {
	c.write(c.out, c.colorOut, kindInfo, stage, key, args...)
}

// Done writes a stage completion line.
func (c *Console) Done(stage, key i18n.Key, args ...any) {
	c.write(c.out, c.colorOut, kindOK, stage, key, args...)
}

// Warn writes a recoverable problem to the error sink.
func (c *Console) Warn(stage, key i18n.Key, args ...any) {
	c.write(c.errOut, c.colorErr, kindWarn, stage, key, args...)
}

// Failure writes exactly one localized line describing err.
func (c *Console) Failure(err error) {
	if err == nil {
		return
	}
	key, stage := failureKey(err)
	subject := failure.SubjectOf(err)
	if subject == "" {
		subject = err.Error()
	}
	c.write(c.errOut, c.colorErr, kindError, stage, key, subject)
}

// FlagFailure reports a command-line parsing problem that carries no marker.
func (c *Console) FlagFailure(err error) {
	if err == nil {
		return
	}
	c.write(c.errOut, c.colorErr, kindError, i18n.StageValidate, i18n.FlagError, err.Error())
}

func failureKey(err error) (i18n.Key, i18n.Key) {
	switch {
	case errors.Is(err, failure.ErrArgumentCount):
		return i18n.ArgumentCount, i18n.StageValidate
	case errors.Is(err, failure.ErrInvalidInput):
		return i18n.InvalidInput, i18n.StageValidate
	case errors.Is(err, failure.ErrInvalidSize):
		return i18n.InvalidSize, i18n.StageValidate
	case errors.Is(err, failure.ErrDecode):
		return i18n.DecodeError, i18n.StageCollect
	case errors.Is(err, failure.ErrResize):
		return i18n.ResizeError, i18n.StageResize
	case errors.Is(err, failure.ErrDirectoryCreation):
		return i18n.DirectoryError, i18n.StageWrite
	case errors.Is(err, failure.ErrEncodeWrite):
		return i18n.WriteError, i18n.StageWrite
	case errors.Is(err, failure.ErrLocked):
		return i18n.LockedError, i18n.StageWrite
	default:
		return i18n.UnknownError, ""
	}
}

func (c *Console) write(w io.Writer, colorize bool, kind lineKind, stage, key i18n.Key, args ...any) {
	text := c.printer.Sprintf(key, args...)
	if stage != "" {
		text = fmt.Sprintf("[%s] %s", c.printer.Sprintf(stage), text)
	}
	if colorize {
		if color := kindColor(kind); color != "" {
			text = color + text + ansiReset
		}
	}
	fmt.Fprintln(w, text)
}

func kindColor(kind lineKind) string {
	switch kind {
	case kindOK:
		return ansiGreen
	case kindWarn:
		return ansiYellow
	case kindError:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
