package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Paths contains directory configuration.
type Paths struct {
	TranscriptDir string `toml:"transcript_dir"`
}

// Transcription selects the speech-to-text backend.
type Transcription struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	Language    string `toml:"language"`
	Concurrency int    `toml:"concurrency"`
}

// Translation selects the model used by the translate command.
type Translation struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	BatchSize   int    `toml:"batch_size"`
	Concurrency int    `toml:"concurrency"`
}

// Server contains HTTP listener settings.
type Server struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// APIKeys holds provider credentials. Empty values fall back to the
// environment.
type APIKeys struct {
	Gemini    string `toml:"gemini"`
	OpenAI    string `toml:"openai"`
	Anthropic string `toml:"anthropic"`
}

// Config encapsulates all configuration values for scribe.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Translation   Translation   `toml:"translation"`
	Server        Server        `toml:"server"`
	Logging       Logging       `toml:"logging"`
	APIKeys       APIKeys       `toml:"api_keys"`
}

// DefaultConfigPath returns the absolute path of the user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved file path, and whether that file exists. A missing file
// is not an error: defaults are used.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	dir, err := expandPath(strings.TrimSpace(c.Paths.TranscriptDir))
	if err != nil {
		return err
	}
	c.Paths.TranscriptDir = dir

	c.Transcription.Provider = strings.ToLower(strings.TrimSpace(c.Transcription.Provider))
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	c.Transcription.Language = strings.TrimSpace(c.Transcription.Language)
	c.Translation.Provider = strings.ToLower(strings.TrimSpace(c.Translation.Provider))
	c.Translation.Model = strings.TrimSpace(c.Translation.Model)
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	c.APIKeys.Gemini = keyOrEnv(c.APIKeys.Gemini, "GEMINI_API_KEY")
	c.APIKeys.OpenAI = keyOrEnv(c.APIKeys.OpenAI, "OPENAI_API_KEY")
	c.APIKeys.Anthropic = keyOrEnv(c.APIKeys.Anthropic, "ANTHROPIC_API_KEY")
	return nil
}

func keyOrEnv(value, envVar string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(envVar))
}

// Validate checks provider names and numeric limits.
func (c *Config) Validate() error {
	switch c.Transcription.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("transcription.provider: unsupported value %q (use openai or gemini)", c.Transcription.Provider)
	}
	switch c.Translation.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("translation.provider: unsupported value %q (use gemini, openai or anthropic)", c.Translation.Provider)
	}
	if c.Transcription.Concurrency <= 0 {
		return fmt.Errorf("transcription.concurrency must be positive, got %d", c.Transcription.Concurrency)
	}
	if c.Translation.Concurrency <= 0 {
		return fmt.Errorf("translation.concurrency must be positive, got %d", c.Translation.Concurrency)
	}
	if c.Translation.BatchSize <= 0 {
		return fmt.Errorf("translation.batch_size must be positive, got %d", c.Translation.BatchSize)
	}
	if c.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// APIKey returns the credential configured for provider, or "".
func (c *Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.APIKeys.Gemini
	case "openai":
		return c.APIKeys.OpenAI
	case "anthropic":
		return c.APIKeys.Anthropic
	default:
		return ""
	}
}

// APIKeyEnv names the environment variable that supplies provider's key.
func APIKeyEnv(provider string) string {
	return strings.ToUpper(provider) + "_API_KEY"
}

// Redacted returns a copy with credentials masked, for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.APIKeys.Gemini = mask(c.APIKeys.Gemini)
	c.APIKeys.OpenAI = mask(c.APIKeys.OpenAI)
	c.APIKeys.Anthropic = mask(c.APIKeys.Anthropic)
	return c
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// CreateSample writes the default configuration to path.
func CreateSample(path string) error {
	data, err := Default().Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LoadEnvFiles loads KEY=value pairs from each existing file into the process
// environment without overriding variables that are already set. With no
// arguments it reads ./.env and ~/.config/scribe/.env.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", "~/.config/scribe/.env"}
	}

	for _, p := range paths {
		expanded, err := expandPath(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(expanded)
		if err != nil || info.IsDir() {
			continue
		}
		if err := godotenv.Load(expanded); err != nil {
			return fmt.Errorf("load env file %q: %w", expanded, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath applies the same tilde and absolute-path rules used for config
// values.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
