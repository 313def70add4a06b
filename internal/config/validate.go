package config

import (
	"errors"
	"fmt"
	"strings"

	"pngresize/internal/imagecodec"
)

// Validate ensures the settings are usable and canonicalizes enum fields.
func (s *Settings) Validate() error {
	if err := s.validateOutput(); err != nil {
		return err
	}
	if err := s.validateResize(); err != nil {
		return err
	}
	if err := s.validateDecode(); err != nil {
		return err
	}
	if err := s.validateConsole(); err != nil {
		return err
	}
	return s.validateLogging()
}

func (s *Settings) validateOutput() error {
	s.Output.Mode = OutputMode(normalizeEnum(string(s.Output.Mode)))
	switch s.Output.Mode {
	case OutputFromArgument:
	case OutputFixed:
		if strings.TrimSpace(s.Output.FixedDir) == "" {
			return errors.New("output.fixed_dir must be set when output.mode is fixed")
		}
	default:
		return fmt.Errorf("invalid output mode %q (use 'argument' or 'fixed')", s.Output.Mode)
	}
	return nil
}

func (s *Settings) validateResize() error {
	filter, err := imagecodec.ParseFilter(s.Resize.Filter)
	if err != nil {
		return err
	}
	compression, err := imagecodec.ParseCompression(s.Resize.Compression)
	if err != nil {
		return err
	}
	s.Resize.Filter = string(filter)
	s.Resize.Compression = string(compression)
	return nil
}

func (s *Settings) validateDecode() error {
	s.Decode.OnError = DecodePolicy(normalizeEnum(string(s.Decode.OnError)))
	switch s.Decode.OnError {
	case DecodeSkip, DecodeAbort:
		return nil
	default:
		return fmt.Errorf("invalid decode error policy %q (use 'skip' or 'abort')", s.Decode.OnError)
	}
}

func (s *Settings) validateConsole() error {
	s.Console.Language = normalizeEnum(s.Console.Language)
	switch s.Console.Language {
	case "ja", "en":
	default:
		return fmt.Errorf("invalid console language %q (use 'ja' or 'en')", s.Console.Language)
	}
	s.Console.Color = ColorMode(normalizeEnum(string(s.Console.Color)))
	switch s.Console.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s.Console.Color)
	}
}

func (s *Settings) validateLogging() error {
	s.Logging.Level = normalizeEnum(s.Logging.Level)
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", s.Logging.Level)
	}
	s.Logging.Format = normalizeEnum(s.Logging.Format)
	switch s.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", s.Logging.Format)
	}
}
