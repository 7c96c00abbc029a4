// Package config loads idea council configuration from
// .council/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"ideacouncil/internal/council"
)

// LLMConfig configures the model call transport.
type LLMConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	CallTimeout string `yaml:"call_timeout"` // Go duration string, e.g. "120s"
	SiteURL     string `yaml:"site_url"`
	SiteName    string `yaml:"site_name"`
}

// CouncilConfig configures the roster and shared generation settings.
type CouncilConfig struct {
	Members       []council.Member `yaml:"members"`
	ChairmanModel string           `yaml:"chairman_model"`
	MaxTokens     int              `yaml:"max_tokens"`
	Temperature   float64          `yaml:"temperature"`
	IdeaCount     int              `yaml:"idea_count"`
}

// LoggingConfig controls the categorized file logger. It is read again by
// the logging package directly to avoid an import cycle; this mirror
// exists so the whole file round-trips through one schema.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// Config is the root configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Council CouncilConfig `yaml:"council"`
	Logging LoggingConfig `yaml:"logging"`
}

// defaultCallTimeout is applied when the caller's context has no deadline,
// so an unresponsive model becomes a per-member error instead of a
// stalled stage.
const defaultCallTimeout = 120 * time.Second

// Default returns the configuration used when no file is present:
// the stock four-member roster with shared token/temperature settings.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			CallTimeout: defaultCallTimeout.String(),
			SiteName:    "ideacouncil",
		},
		Council: CouncilConfig{
			Members:       council.DefaultMembers(),
			ChairmanModel: council.DefaultChairmanModel,
			MaxTokens:     2000,
			Temperature:   0.7,
			IdeaCount:     10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(".council", "config.yaml")
}

// Load reads configuration from path, layered over Default. A missing
// file is not an error; env overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides pulls credentials from the environment. The env var
// wins over the file so keys stay out of checked-in config.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
}

// Validate checks that a session can actually run with this config.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("no API key found; set OPENROUTER_API_KEY or llm.api_key in %s", DefaultPath())
	}
	if len(c.Council.Members) == 0 {
		return fmt.Errorf("council has no members")
	}
	if c.Council.ChairmanModel == "" {
		return fmt.Errorf("no chairman model configured")
	}
	return nil
}

// CallTimeoutDuration parses the configured per-call timeout, falling
// back to the default on an empty or malformed value.
func (c *LLMConfig) CallTimeoutDuration() time.Duration {
	if c.CallTimeout == "" {
		return defaultCallTimeout
	}
	d, err := time.ParseDuration(c.CallTimeout)
	if err != nil || d <= 0 {
		return defaultCallTimeout
	}
	return d
}
