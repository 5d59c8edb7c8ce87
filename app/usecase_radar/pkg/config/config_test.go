package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ProviderCohere, cfg.LLM.Provider)
	assert.Equal(t, "command-xlarge", cfg.LLM.Model)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, "https://www.google.com/search", cfg.Research.Endpoint)
	assert.Equal(t, "Mozilla/5.0", cfg.Research.UserAgent)
	assert.Equal(t, "span", cfg.Research.Selector)
	assert.Equal(t, 5, cfg.Research.MaxSnippets)
	assert.Equal(t, 5, cfg.Datasets.MaxResults)
	assert.Equal(t, []string{"huggingface", "kaggle"}, cfg.Datasets.Order)
	assert.Equal(t, KaggleModeAPI, cfg.Datasets.Kaggle.Mode)
	assert.True(t, cfg.Datasets.HuggingFace.Enabled)
	assert.True(t, cfg.Datasets.Kaggle.Enabled)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Auth.JWTKey)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: openai
  base_url: https://llm.example.com/v1
  model: test-model
datasets:
  kaggle:
    enabled: false
output:
  dir: out
http:
  timeout: 5s
`), 0o644))

	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-token")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "https://llm.example.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, "llm-key", cfg.LLM.APIKey)
	assert.Equal(t, "hf-token", cfg.Datasets.HuggingFace.Token)
	assert.True(t, cfg.Datasets.HuggingFace.Enabled)
	assert.False(t, cfg.Datasets.Kaggle.Enabled)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsLargeCaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
research:
  max_snippets: 8
datasets:
  max_results: 20
`), 0o644))
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("HUGGINGFACE_API_KEY", "hf")
	t.Setenv("KAGGLE_USERNAME", "u")
	t.Setenv("KAGGLE_KEY", "kk")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(cfg.Validate(), &cerr))
	assert.Empty(t, cerr.Missing)
	assert.Equal(t, []string{"research.max_snippets=8 (max 5)", "datasets.max_results=20 (max 5)"}, cerr.Invalid)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.cohere.ai", cfg.LLM.BaseURL)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyEnvPrefersLLMKey(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(envMap(map[string]string{
		"LLM_API_KEY":    "generic",
		"COHERE_API_KEY": "cohere",
		"KAGGLE_KEY":     "  kkey  ",
		"JWT_KEY":        "signing-key",
	}))
	assert.Equal(t, "signing-key", cfg.Auth.JWTKey)
	assert.Equal(t, "generic", cfg.LLM.APIKey)
	assert.Equal(t, "kkey", cfg.Datasets.Kaggle.Key)

	cfg = Default()
	cfg.ApplyEnv(envMap(map[string]string{"LLM_API_KEY": " ", "COHERE_API_KEY": "cohere"}))
	assert.Equal(t, "cohere", cfg.LLM.APIKey)
}

func TestValidate(t *testing.T) {
	full := func() *Config {
		cfg := Default()
		cfg.LLM.APIKey = "k"
		cfg.Datasets.HuggingFace.Token = "hf"
		cfg.Datasets.Kaggle.Username = "u"
		cfg.Datasets.Kaggle.Key = "kk"
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantMissing []string
		wantInvalid []string
	}{
		{name: "complete", mutate: func(*Config) {}},
		{
			name:        "no credentials",
			mutate:      func(c *Config) { *c = *Default() },
			wantMissing: []string{"llm.api_key", "datasets.huggingface.token", "datasets.kaggle.username", "datasets.kaggle.key"},
		},
		{
			name: "disabled sources need no credentials",
			mutate: func(c *Config) {
				c.Datasets.HuggingFace = HuggingFaceConfig{}
				c.Datasets.Kaggle = KaggleConfig{}
			},
		},
		{
			name:        "unknown provider",
			mutate:      func(c *Config) { c.LLM.Provider = "palm" },
			wantInvalid: []string{"llm.provider=palm"},
		},
		{
			name:        "openai needs base url",
			mutate:      func(c *Config) { c.LLM.Provider = ProviderOpenAI; c.LLM.BaseURL = "" },
			wantMissing: []string{"llm.base_url"},
		},
		{
			name:        "bad kaggle mode",
			mutate:      func(c *Config) { c.Datasets.Kaggle.Mode = "ftp" },
			wantInvalid: []string{"datasets.kaggle.mode=ftp"},
		},
		{
			name:        "unknown source in order",
			mutate:      func(c *Config) { c.Datasets.Order = []string{"zenodo"} },
			wantInvalid: []string{"datasets.order=zenodo"},
		},
		{
			name:        "snippet cap above five",
			mutate:      func(c *Config) { c.Research.MaxSnippets = 8 },
			wantInvalid: []string{"research.max_snippets=8 (max 5)"},
		},
		{
			name:        "result cap above five",
			mutate:      func(c *Config) { c.Datasets.MaxResults = 20 },
			wantInvalid: []string{"datasets.max_results=20 (max 5)"},
		},
		{
			name:   "caps at five",
			mutate: func(c *Config) { c.Research.MaxSnippets = 5; c.Datasets.MaxResults = 5 },
		},
		{
			name:        "db driver without source",
			mutate:      func(c *Config) { c.DB.Driver = "sqlite3" },
			wantMissing: []string{"db.source"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantMissing == nil && tt.wantInvalid == nil {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "want *ConfigError, got %v", err)
			assert.Equal(t, tt.wantMissing, cerr.Missing)
			assert.Equal(t, tt.wantInvalid, cerr.Invalid)
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Missing: []string{"llm.api_key"}, Invalid: []string{"db.driver=x"}}
	assert.Equal(t, "config: missing required settings: llm.api_key; invalid settings: db.driver=x", err.Error())
}
