package config

const (
	defaultTranscriptDir          = "~/Documents/scribe"
	defaultTranscriptionProvider  = "openai"
	defaultTranscriptionWorkers   = 2
	defaultTranslationProvider    = "gemini"
	defaultTranslationBatchSize   = 50
	defaultTranslationConcurrency = 3
	defaultServerBind             = "127.0.0.1:8765"
	defaultLogLevel               = "info"
	defaultLogFormat              = "console"
	defaultConfigPath             = "~/.config/scribe/config.toml"
	projectConfigName             = "scribe.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TranscriptDir: defaultTranscriptDir,
		},
		Transcription: Transcription{
			Provider:    defaultTranscriptionProvider,
			Concurrency: defaultTranscriptionWorkers,
		},
		Translation: Translation{
			Provider:    defaultTranslationProvider,
			BatchSize:   defaultTranslationBatchSize,
			Concurrency: defaultTranslationConcurrency,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
