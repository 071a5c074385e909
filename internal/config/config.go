package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cbout22/skill-sync/internal/manifest"
)

const DefaultSettingsFile = ".skillsync.toml"

const (
	defaultRawBase        = "https://raw.githubusercontent.com"
	defaultAPIBase        = "https://api.github.com"
	defaultTimeoutSeconds = 30
)

// Settings holds tool-level configuration read from .skillsync.toml.
// Every field is optional; zero values fall back to the defaults below.
// Settings are loaded once in the CLI layer and passed down explicitly —
// nothing below the CLI reads ambient state.
type Settings struct {
	// RawBase is the raw-content endpoint base URL.
	RawBase string `toml:"raw_base"`
	// APIBase is the REST API endpoint base URL.
	APIBase string `toml:"api_base"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Manifest is the path to the skills manifest file.
	Manifest string `toml:"manifest"`
}

// Default returns the built-in settings (github.com endpoints, 30s timeout).
func Default() Settings {
	return Settings{
		RawBase:        defaultRawBase,
		APIBase:        defaultAPIBase,
		TimeoutSeconds: defaultTimeoutSeconds,
		Manifest:       manifest.DefaultManifestFile,
	}
}

// Load reads settings from the given path.
// If the file does not exist it returns the defaults (no error).
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}

	// Re-apply defaults for keys set to empty/zero values
	if s.RawBase == "" {
		s.RawBase = defaultRawBase
	}
	if s.APIBase == "" {
		s.APIBase = defaultAPIBase
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = defaultTimeoutSeconds
	}
	if s.Manifest == "" {
		s.Manifest = manifest.DefaultManifestFile
	}

	return s, nil
}

// Timeout returns the per-request timeout as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
