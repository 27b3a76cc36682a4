// Package config loads the service configuration: YAML file, then .env, then
// environment overrides, then validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"comboplanner/internal/combo"
	"comboplanner/internal/models"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Menu       MenuConfig       `yaml:"menu"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Playground PlaygroundConfig `yaml:"playground"`
	Engine     EngineConfig     `yaml:"engine"`
}

type ServerConfig struct {
	Port        int             `yaml:"port" validate:"min=1,max=65535"`
	MetricsPort int             `yaml:"metrics_port" validate:"min=0,max=65535"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig allows Requests per Window per client IP. Zero requests
// disables limiting.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" validate:"min=0"`
	Window   time.Duration `yaml:"window" validate:"required_with=Requests"`
}

type LLMConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Provider    string        `yaml:"provider" validate:"oneof=openai azure github_models anthropic ollama"`
	Model       string        `yaml:"model" validate:"required_if=Enabled true"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url" validate:"omitempty,url"`
	APIVersion  string        `yaml:"api_version"`
	Temperature float64       `yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `yaml:"max_tokens" validate:"min=1"`
	Timeout     time.Duration `yaml:"timeout" validate:"min=0"`
}

type MenuConfig struct {
	Source string `yaml:"source" validate:"oneof=file database"`
	Path   string `yaml:"path" validate:"required"`
}

type DatabaseConfig struct {
	Dialect string `yaml:"dialect" validate:"oneof=sqlite3 postgres"`
	URL     string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

type PlaygroundConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port" validate:"min=0,max=65535"`
}

// EngineConfig overrides search tuning. Zero values keep the defaults.
type EngineConfig struct {
	BeamWidth       int  `yaml:"beam_width" validate:"min=0"`
	CandidatePool   int  `yaml:"candidate_pool" validate:"min=0"`
	ResultCount     int  `yaml:"result_count" validate:"min=0"`
	StrictDiversity bool `yaml:"strict_diversity"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
			RateLimit:   RateLimitConfig{Requests: 15, Window: 5 * time.Minute},
		},
		LLM: LLMConfig{
			Enabled:     true,
			Provider:    string(models.OpenAIProvider),
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   600,
			Timeout:     20 * time.Second,
		},
		Menu:       MenuConfig{Source: "file", Path: "configs/menu.json"},
		Database:   DatabaseConfig{Dialect: "sqlite3", URL: "comboplanner.db"},
		Log:        LogConfig{Level: "info", Format: "json"},
		Playground: PlaygroundConfig{Port: 8081},
	}
}

// Load reads the YAML file at path over the defaults, then the .env file in
// the working directory, then environment overrides. A missing file at path
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	str("OPENAI_API_KEY", &c.LLM.APIKey)
	str("OPENAI_MODEL", &c.LLM.Model)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("MENU_SOURCE", &c.Menu.Source)
	str("MENU_PATH", &c.Menu.Path)
	str("DATABASE_DIALECT", &c.Database.Dialect)
	str("DATABASE_URL", &c.Database.URL)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v := os.Getenv("USE_GENERATOR"); v != "" {
		useGenerator, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: USE_GENERATOR: %w", err)
		}
		if useGenerator {
			c.LLM.Enabled = false
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks struct constraints and the engine overrides.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Engine.Tuning(); err != nil {
		return fmt.Errorf("config: engine: %w", err)
	}
	return nil
}

// LLMActive reports whether the LLM tier should run. Only ollama runs
// without an API key.
func (c *Config) LLMActive() bool {
	if !c.LLM.Enabled {
		return false
	}
	return c.LLM.APIKey != "" || c.LLM.Provider == string(models.OllamaProvider)
}

// ModelProvider converts the LLM section for the model registry.
func (l LLMConfig) ModelProvider() models.ModelProvider {
	return models.ModelProvider{
		Name:        l.Model,
		Type:        models.ProviderType(l.Provider),
		Endpoint:    l.BaseURL,
		APIVersion:  l.APIVersion,
		Credentials: models.ModelCredentials{APIKey: l.APIKey},
	}
}

// Tuning applies the overrides to the default tuning.
func (e EngineConfig) Tuning() (combo.Tuning, error) {
	t := combo.DefaultTuning()
	if e.BeamWidth > 0 {
		t.BeamWidth = e.BeamWidth
	}
	if e.CandidatePool > 0 {
		t.CandidatePool = e.CandidatePool
	}
	if e.ResultCount > 0 {
		t.ResultCount = e.ResultCount
	}
	t.StrictDiversity = e.StrictDiversity
	if err := t.Validate(); err != nil {
		return combo.Tuning{}, err
	}
	return t, nil
}
