// Package config loads the server configuration from defaults, an optional
// YAML file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/perplexity-mcp/providers/tool/perplexity"
)

// Environment variables read by [Load].
const (
	EnvAPIKey     = "PERPLEXITY_API_KEY"
	EnvBaseURL    = "PERPLEXITY_BASE_URL"
	EnvConfigPath = "PERPLEXITY_MCP_CONFIG"
	EnvTransport  = "PERPLEXITY_MCP_TRANSPORT"
	EnvHTTPAddr   = "PERPLEXITY_MCP_HTTP_ADDR"
	EnvLogLevel   = "LOG_LEVEL"
)

// Transports served by the MCP host.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ErrMissingAPIKey is returned when no API key is configured. The server
// must not start without one.
var ErrMissingAPIKey = fmt.Errorf("%s environment variable is required. Get your API key from https://www.perplexity.ai/settings/api", EnvAPIKey)

// Config is the complete server configuration.
type Config struct {
	// APIKey is only read from the environment, never from the YAML file.
	APIKey    string         `yaml:"-"`
	BaseURL   string         `yaml:"base_url"`
	Models    ModelsConfig   `yaml:"models"`
	Timeouts  TimeoutsConfig `yaml:"timeouts"`
	Transport string         `yaml:"transport"`
	HTTPAddr  string         `yaml:"http_addr"`
	LogLevel  string         `yaml:"log_level"`

	// DisabledTools lists tool names that are not exposed to hosts.
	DisabledTools []string `yaml:"disabled_tools"`
}

// ModelsConfig selects the model used by each answer tier.
type ModelsConfig struct {
	Standard string `yaml:"standard"`
	Deep     string `yaml:"deep"`
}

// TimeoutsConfig bounds each API call. Values are Go duration strings in YAML.
type TimeoutsConfig struct {
	Search time.Duration `yaml:"search"`
	Chat   time.Duration `yaml:"chat"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	models := perplexity.DefaultModels()
	return &Config{
		BaseURL: perplexity.DefaultBaseURL,
		Models: ModelsConfig{
			Standard: models.Standard,
			Deep:     models.Deep,
		},
		Timeouts: TimeoutsConfig{
			Search: perplexity.DefaultSearchTimeout,
			Chat:   perplexity.DefaultChatTimeout,
		},
		Transport: TransportStdio,
		HTTPAddr:  "localhost:8000",
		LogLevel:  "INFO",
	}
}

// Load builds the configuration. Sources are applied in increasing
// precedence: defaults, the YAML file at path (or $PERPLEXITY_MCP_CONFIG when
// path is empty), then environment variables. envFiles (default ".env") are
// loaded into the environment first without overriding variables that are
// already set; missing env files are ignored.
//
// The returned configuration has been validated.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvAPIKey, &c.APIKey},
		{EnvBaseURL, &c.BaseURL},
		{EnvTransport, &c.Transport},
		{EnvHTTPAddr, &c.HTTPAddr},
		{EnvLogLevel, &c.LogLevel},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.target = v
		}
	}
}

// Validate reports the first problem that would prevent the server from
// starting. A missing API key yields [ErrMissingAPIKey].
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q: must be %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required for the %s transport", TransportHTTP)
	}
	if c.Timeouts.Search <= 0 || c.Timeouts.Chat <= 0 {
		return fmt.Errorf("timeouts must be positive (search=%s, chat=%s)", c.Timeouts.Search, c.Timeouts.Chat)
	}
	if c.Models.Standard == "" || c.Models.Deep == "" {
		return fmt.Errorf("both models.standard and models.deep must be set")
	}
	return nil
}

// String renders the configuration for logs with the API key masked.
func (c *Config) String() string {
	return fmt.Sprintf("base_url=%s models=%s/%s timeouts=%s/%s transport=%s http_addr=%s log_level=%s api_key=%s",
		c.BaseURL, c.Models.Standard, c.Models.Deep, c.Timeouts.Search, c.Timeouts.Chat,
		c.Transport, c.HTTPAddr, c.LogLevel, maskKey(c.APIKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
