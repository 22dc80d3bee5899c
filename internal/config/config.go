package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultListen            = "127.0.0.1:8080"
	DefaultAllowedOrigin     = "http://localhost:5173"
	DefaultBaseURL           = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion        = "v1beta"
	DefaultModel             = "gemini-3-flash-preview"
	DefaultTimeout           = 60 * time.Second
	DefaultThinkingLevel     = "minimal"
	DefaultSystemInstruction = "You are a senior Go and React developer. Give concise, technical answers. Use a slightly sarcastic, witty tone."
	DefaultLogLevel          = "info"
)

// ErrMissingAPIKey is returned by Load when no upstream API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")

// Config holds everything the relay needs at startup.
// It is built once and passed down; nothing reads the environment after Load.
type Config struct {
	Server struct {
		Listen        string `yaml:"listen"`
		AllowedOrigin string `yaml:"allowed_origin"`
	} `yaml:"server"`

	Upstream struct {
		// APIKey is never read from the file; it only comes from GEMINI_API_KEY.
		APIKey     string        `yaml:"-"`
		BaseURL    string        `yaml:"base_url"`
		APIVersion string        `yaml:"api_version"`
		Model      string        `yaml:"model"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"upstream"`

	Prompt struct {
		SystemInstruction string `yaml:"system_instruction"`
		ThinkingLevel     string `yaml:"thinking_level"`
	} `yaml:"prompt"`

	Logging struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`
}

// Load reads the optional YAML file at path, applies defaults and environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}
	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateContentURL is the upstream endpoint with the key attached as a query parameter.
func (c *Config) GenerateContentURL() string {
	base := strings.TrimRight(c.Upstream.BaseURL, "/")
	u := fmt.Sprintf("%s/%s/models/%s:generateContent", base, c.Upstream.APIVersion, c.Upstream.Model)
	return u + "?" + url.Values{"key": {c.Upstream.APIKey}}.Encode()
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = DefaultListen
	}
	if strings.TrimSpace(cfg.Server.AllowedOrigin) == "" {
		cfg.Server.AllowedOrigin = DefaultAllowedOrigin
	}
	if strings.TrimSpace(cfg.Upstream.BaseURL) == "" {
		cfg.Upstream.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Upstream.APIVersion) == "" {
		cfg.Upstream.APIVersion = DefaultAPIVersion
	}
	if strings.TrimSpace(cfg.Upstream.Model) == "" {
		cfg.Upstream.Model = DefaultModel
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(cfg.Prompt.SystemInstruction) == "" {
		cfg.Prompt.SystemInstruction = DefaultSystemInstruction
	}
	if strings.TrimSpace(cfg.Prompt.ThinkingLevel) == "" {
		cfg.Prompt.ThinkingLevel = DefaultThinkingLevel
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

func applyEnvOverrides(cfg *Config) error {
	cfg.Upstream.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	if v := strings.TrimSpace(os.Getenv("RELAY_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_ALLOWED_ORIGIN")); v != "" {
		cfg.Server.AllowedOrigin = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_UPSTREAM_BASE_URL")); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_UPSTREAM_API_VERSION")); v != "" {
		cfg.Upstream.APIVersion = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_UPSTREAM_MODEL")); v != "" {
		cfg.Upstream.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_UPSTREAM_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RELAY_UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		cfg.Upstream.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_SYSTEM_INSTRUCTION")); v != "" {
		cfg.Prompt.SystemInstruction = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_THINKING_LEVEL")); v != "" {
		cfg.Prompt.ThinkingLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("RELAY_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Upstream.APIKey == "" {
		return ErrMissingAPIKey
	}
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid upstream base_url %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", cfg.Upstream.Timeout)
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", cfg.Logging.Level)
	}
	return nil
}
