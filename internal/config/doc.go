// Package config loads, normalizes, and validates scribe configuration.
//
// Settings come from a TOML file (explicit path, ~/.config/scribe/config.toml,
// or ./scribe.toml), layered over repository defaults. Provider API keys fall
// back to GEMINI_API_KEY, OPENAI_API_KEY and ANTHROPIC_API_KEY, which may be
// supplied through .env files loaded by LoadEnvFiles.
package config
