package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Len(t, cfg.Council.Members, 4)
	assert.Equal(t, "Gemini", cfg.Council.Members[0].Name)
	assert.Equal(t, "google/gemini-2.0-flash-exp:free", cfg.Council.ChairmanModel)
	assert.Equal(t, 2000, cfg.Council.MaxTokens)
	assert.Equal(t, 0.7, cfg.Council.Temperature)
	assert.Equal(t, 10, cfg.Council.IdeaCount)
	assert.Equal(t, 120*time.Second, cfg.LLM.CallTimeoutDuration())
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Len(t, cfg.Council.Members, 4)
		assert.Empty(t, cfg.LLM.APIKey)
	})

	t.Run("file overrides roster and settings", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
llm:
  api_key: file-key
  call_timeout: 45s
council:
  members:
    - model_id: openai/gpt-4o-mini
      name: Solo
  chairman_model: anthropic/claude-3.5-sonnet
  max_tokens: 1234
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.LLM.APIKey)
		assert.Equal(t, 45*time.Second, cfg.LLM.CallTimeoutDuration())
		require.Len(t, cfg.Council.Members, 1)
		assert.Equal(t, "Solo", cfg.Council.Members[0].Name)
		assert.Equal(t, "anthropic/claude-3.5-sonnet", cfg.Council.ChairmanModel)
		assert.Equal(t, 1234, cfg.Council.MaxTokens)
	})

	t.Run("env var overrides file key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "env-key")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file-key\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.LLM.APIKey)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm: [broken"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.LLM.APIKey = "k"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "OPENROUTER_API_KEY")
	})

	t.Run("empty roster", func(t *testing.T) {
		cfg := valid()
		cfg.Council.Members = nil
		assert.ErrorContains(t, cfg.Validate(), "no members")
	})

	t.Run("missing chairman", func(t *testing.T) {
		cfg := valid()
		cfg.Council.ChairmanModel = ""
		assert.ErrorContains(t, cfg.Validate(), "chairman")
	})
}

func TestCallTimeoutDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "90s", want: 90 * time.Second},
		{in: "2m", want: 2 * time.Minute},
		{in: "", want: 120 * time.Second},
		{in: "bogus", want: 120 * time.Second},
		{in: "-5s", want: 120 * time.Second},
	}
	for _, tt := range tests {
		llm := LLMConfig{CallTimeout: tt.in}
		assert.Equal(t, tt.want, llm.CallTimeoutDuration(), "input %q", tt.in)
	}
}
