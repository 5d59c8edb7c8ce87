package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Generation providers
const (
	ProviderCohere = "cohere"
	ProviderOpenAI = "openai"
)

// Kaggle access modes
const (
	KaggleModeAPI = "api"
	KaggleModeCLI = "cli"
)

// MaxItems upper bound for research snippets and per-source dataset links
const MaxItems = 5

// Config application configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Research    ResearchConfig    `yaml:"research"`
	Datasets    DatasetsConfig    `yaml:"datasets"`
	Output      OutputConfig      `yaml:"output"`
	HTTP        HTTPConfig        `yaml:"http"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Server      ServerConfig      `yaml:"server"`
	Auth        AuthConfig        `yaml:"auth"`
}

// LLMConfig text-generation backend
type LLMConfig struct {
	Provider  string `yaml:"provider"` // cohere or openai
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// ResearchConfig web search scraping
type ResearchConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UserAgent   string `yaml:"user_agent"`
	QuerySuffix string `yaml:"query_suffix"`
	Selector    string `yaml:"selector"`
	MaxSnippets int    `yaml:"max_snippets"`
}

// DatasetsConfig dataset sources, queried in the order listed in Order
type DatasetsConfig struct {
	Order       []string          `yaml:"order"`
	MaxResults  int               `yaml:"max_results"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	Kaggle      KaggleConfig      `yaml:"kaggle"`
}

// HuggingFaceConfig Hugging Face Hub
type HuggingFaceConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// KaggleConfig Kaggle datasets
type KaggleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Mode     string `yaml:"mode"` // api or cli
	BaseURL  string `yaml:"base_url"`
	Binary   string `yaml:"binary"`
	Username string `yaml:"username"`
	Key      string `yaml:"key"`
}

// OutputConfig markdown artifact location
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// HTTPConfig outbound HTTP settings
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig outbound generation rate limits
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig run history store; empty Driver disables it
type DBConfig struct {
	Driver string `yaml:"driver"` // postgres or sqlite3
	Source string `yaml:"source"`
}

// ServerConfig display server
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// AuthConfig bearer tokens for the JSON API; empty JWTKey leaves the API open
type AuthConfig struct {
	JWTKey   string        `yaml:"jwt_key"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// ConfigError lists settings that must be present before the process starts.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required settings: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid settings: "+strings.Join(e.Invalid, ", "))
	}
	return "config: " + strings.Join(parts, "; ")
}

// Default returns a config with every default applied and both dataset sources enabled.
func Default() *Config {
	cfg := base()
	cfg.ApplyDefaults()
	return cfg
}

func base() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			HuggingFace: HuggingFaceConfig{Enabled: true},
			Kaggle:      KaggleConfig{Enabled: true},
		},
	}
}

// LoadConfig loads the YAML config at path and overlays the environment.
// A missing file is not an error: defaults plus environment are used. A .env
// file in the working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := base()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overlays credentials from the environment. lookup is os.LookupEnv
// in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	set(&c.LLM.APIKey, "LLM_API_KEY", "COHERE_API_KEY")
	set(&c.Datasets.HuggingFace.Token, "HUGGINGFACE_API_KEY")
	set(&c.Datasets.Kaggle.Username, "KAGGLE_USERNAME")
	set(&c.Datasets.Kaggle.Key, "KAGGLE_KEY")
	set(&c.Auth.JWTKey, "JWT_KEY")
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderCohere
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "command-xlarge"
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.BaseURL == "" && c.LLM.Provider == ProviderCohere {
		c.LLM.BaseURL = "https://api.cohere.ai"
	}

	if c.Research.Endpoint == "" {
		c.Research.Endpoint = "https://www.google.com/search"
	}
	if c.Research.UserAgent == "" {
		c.Research.UserAgent = "Mozilla/5.0"
	}
	if c.Research.QuerySuffix == "" {
		c.Research.QuerySuffix = " AI applications"
	}
	if c.Research.Selector == "" {
		c.Research.Selector = "span"
	}
	if c.Research.MaxSnippets <= 0 {
		c.Research.MaxSnippets = MaxItems
	}

	if len(c.Datasets.Order) == 0 {
		c.Datasets.Order = []string{"huggingface", "kaggle"}
	}
	if c.Datasets.MaxResults <= 0 {
		c.Datasets.MaxResults = MaxItems
	}
	if c.Datasets.HuggingFace.BaseURL == "" {
		c.Datasets.HuggingFace.BaseURL = "https://huggingface.co"
	}
	if c.Datasets.Kaggle.Mode == "" {
		c.Datasets.Kaggle.Mode = KaggleModeAPI
	}
	if c.Datasets.Kaggle.BaseURL == "" {
		c.Datasets.Kaggle.BaseURL = "https://www.kaggle.com"
	}
	if c.Datasets.Kaggle.Binary == "" {
		c.Datasets.Kaggle.Binary = "kaggle"
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0:8000"
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = "120s"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
}

// Validate checks that every credential the enabled components need is present.
// It returns a *ConfigError, or nil.
func (c *Config) Validate() error {
	cerr := &ConfigError{}

	if c.LLM.APIKey == "" {
		cerr.Missing = append(cerr.Missing, "llm.api_key")
	}
	switch c.LLM.Provider {
	case ProviderCohere:
	case ProviderOpenAI:
		if c.LLM.BaseURL == "" {
			cerr.Missing = append(cerr.Missing, "llm.base_url")
		}
	default:
		cerr.Invalid = append(cerr.Invalid, "llm.provider="+c.LLM.Provider)
	}

	if c.Datasets.HuggingFace.Enabled && c.Datasets.HuggingFace.Token == "" {
		cerr.Missing = append(cerr.Missing, "datasets.huggingface.token")
	}
	if c.Datasets.Kaggle.Enabled {
		if c.Datasets.Kaggle.Username == "" {
			cerr.Missing = append(cerr.Missing, "datasets.kaggle.username")
		}
		if c.Datasets.Kaggle.Key == "" {
			cerr.Missing = append(cerr.Missing, "datasets.kaggle.key")
		}
		if m := c.Datasets.Kaggle.Mode; m != KaggleModeAPI && m != KaggleModeCLI {
			cerr.Invalid = append(cerr.Invalid, "datasets.kaggle.mode="+m)
		}
	}
	if c.Research.MaxSnippets > MaxItems {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("research.max_snippets=%d (max %d)", c.Research.MaxSnippets, MaxItems))
	}
	if c.Datasets.MaxResults > MaxItems {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("datasets.max_results=%d (max %d)", c.Datasets.MaxResults, MaxItems))
	}
	for _, name := range c.Datasets.Order {
		if name != "huggingface" && name != "kaggle" {
			cerr.Invalid = append(cerr.Invalid, "datasets.order="+name)
		}
	}

	switch c.DB.Driver {
	case "", "postgres", "sqlite3":
	default:
		cerr.Invalid = append(cerr.Invalid, "db.driver="+c.DB.Driver)
	}
	if c.DB.Driver != "" && c.DB.Source == "" {
		cerr.Missing = append(cerr.Missing, "db.source")
	}

	if len(cerr.Missing) > 0 || len(cerr.Invalid) > 0 {
		return cerr
	}
	return nil
}
