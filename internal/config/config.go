package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full run configuration.
type Config struct {
	Linkwarden LinkwardenConfig `yaml:"linkwarden"`
	Ollama     OllamaConfig     `yaml:"ollama"`
	Tagging    TaggingConfig    `yaml:"tagging"`
	Log        LogConfig        `yaml:"log"`
}

type LinkwardenConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

type TaggingConfig struct {
	TagsFile   string `yaml:"tags_file"`
	SkipTagged bool   `yaml:"skip_tagged"`
	Policy     string `yaml:"policy"` // replace, merge
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns a Config pointing at local Linkwarden and Ollama instances.
func DefaultConfig() *Config {
	return &Config{
		Linkwarden: LinkwardenConfig{
			BaseURL: "http://localhost:3002/api/v1",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "phi3:mini-4k",
			Timeout: "10s",
		},
		Tagging: TaggingConfig{
			TagsFile: "tags.txt",
			Policy:   "replace",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path, a .env
// file in the working directory and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Linkwarden.BaseURL, "LINKWARDEN_BASE_URL")
	setString(&c.Linkwarden.APIKey, "LINKWARDEN_API_KEY")
	setString(&c.Ollama.BaseURL, "OLLAMA_BASE_URL")
	setString(&c.Ollama.Model, "OLLAMA_MODEL")
	setString(&c.Ollama.Timeout, "OLLAMA_TIMEOUT")
	setString(&c.Tagging.TagsFile, "TAGS_FILE")
	setString(&c.Tagging.Policy, "TAG_POLICY")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v, ok := os.LookupEnv("SKIP_LINKS_WITH_TAGS"); ok && v != "" {
		c.Tagging.SkipTagged = ParseBool(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ParseBool reports whether v is one of true, 1 or yes, ignoring case.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// InferenceTimeout returns the parsed Ollama timeout.
func (c *Config) InferenceTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Ollama.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid ollama timeout %q: %w", c.Ollama.Timeout, err)
	}
	return d, nil
}

// Validate reports configuration that cannot work. A missing API key is not an
// error here; callers warn about it.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"linkwarden base url": c.Linkwarden.BaseURL,
		"ollama base url":     c.Ollama.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q is not an absolute URL", name, raw)
		}
	}

	d, err := c.InferenceTimeout()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("ollama timeout must be positive, got %s", d)
	}

	switch strings.ToLower(c.Tagging.Policy) {
	case "replace", "merge":
	default:
		return fmt.Errorf("unknown tag policy %q (want replace or merge)", c.Tagging.Policy)
	}

	if c.Ollama.Model == "" {
		return fmt.Errorf("ollama model must be set")
	}
	return nil
}
