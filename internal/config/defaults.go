package config

const (
	defaultFixedOutputDir = "./result"
	defaultFilter         = "catmullrom"
	defaultCompression    = "default"
	defaultLanguage       = "ja"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// DefaultFixedOutputDir is the output directory used in OutputFixed mode.
const DefaultFixedOutputDir = defaultFixedOutputDir

// Default returns Settings populated with repository defaults.
func Default() Settings {
	return Settings{
		Output: Output{
			Mode:     OutputFromArgument,
			FixedDir: defaultFixedOutputDir,
		},
		Resize: Resize{
			Filter:      defaultFilter,
			Compression: defaultCompression,
		},
		Decode: Decode{
			OnError: DecodeSkip,
		},
		Console: Console{
			Language: defaultLanguage,
			Color:    ColorAuto,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Lock: true,
	}
}
