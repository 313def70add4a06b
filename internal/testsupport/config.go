package testsupport

import (
	"testing"

	"pngresize/internal/config"
)

// SettingsOption allows callers to customize the generated test settings.
type SettingsOption func(*config.Settings)

// WithFixedOutput switches to OutputFixed with dir as the fixed directory.
func WithFixedOutput(dir string) SettingsOption {
	return func(s *config.Settings) {
		s.Output.Mode = config.OutputFixed
		s.Output.FixedDir = dir
	}
}

// WithDecodeAbort makes undecodable sources fatal.
func WithDecodeAbort() SettingsOption {
	return func(s *config.Settings) {
		s.Decode.OnError = config.DecodeAbort
	}
}

// WithLanguage selects the console language.
func WithLanguage(lang string) SettingsOption {
	return func(s *config.Settings) {
		s.Console.Language = lang
	}
}

// NewSettings returns validated defaults with colour and the output lock
// disabled, then applies opts.
func NewSettings(t testing.TB, opts ...SettingsOption) config.Settings {
	t.Helper()

	cfg := config.Default()
	cfg.Console.Color = config.ColorNever
	cfg.Lock = false
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test settings: %v", err)
	}
	return cfg
}
