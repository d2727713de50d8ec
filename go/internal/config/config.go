package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/gridiron/go/clients/fantasy_api_client"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GRIDIRON_"

// Config holds the client settings
type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`

	Session struct {
		TokenFile      string        `yaml:"token_file"`
		ProfileTimeout time.Duration `yaml:"profile_timeout"`
	} `yaml:"session"`

	Leagues struct {
		RequireSearchFilter bool `yaml:"require_search_filter"`
	} `yaml:"leagues"`

	Audit struct {
		// NATSURL enables activity events when set
		NATSURL       string `yaml:"nats_url"`
		Stream        string `yaml:"stream"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"audit"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	var cfg Config
	cfg.API.BaseURL = fantasy_api_client.DefaultBaseURL
	cfg.API.Timeout = 30 * time.Second
	cfg.Session.TokenFile = defaultTokenFile()
	cfg.Session.ProfileTimeout = 15 * time.Second
	cfg.Audit.Stream = "GRIDIRON_CLIENT_EVENTS"
	cfg.Audit.SubjectPrefix = "gridiron.client"
	cfg.Log.Level = "info"
	cfg.Log.Pretty = true
	return &cfg
}

// Load loads .env, the optional yaml file at configPath and GRIDIRON_*
// environment overrides, in that order of increasing precedence
func Load(configPath string) (*Config, error) {
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.API.BaseURL = getEnv("API_URL", c.API.BaseURL)
	c.Session.TokenFile = getEnv("TOKEN_FILE", c.Session.TokenFile)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Audit.NATSURL = getEnv("NATS_URL", c.Audit.NATSURL)
	c.Audit.Stream = getEnv("NATS_STREAM", c.Audit.Stream)
	c.Audit.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", c.Audit.SubjectPrefix)

	var err error
	if c.API.Timeout, err = getEnvAsDuration("API_TIMEOUT", c.API.Timeout); err != nil {
		return err
	}
	if c.Session.ProfileTimeout, err = getEnvAsDuration("PROFILE_TIMEOUT", c.Session.ProfileTimeout); err != nil {
		return err
	}
	if c.Leagues.RequireSearchFilter, err = getEnvAsBool("REQUIRE_SEARCH_FILTER", c.Leagues.RequireSearchFilter); err != nil {
		return err
	}
	if c.Log.Pretty, err = getEnvAsBool("LOG_PRETTY", c.Log.Pretty); err != nil {
		return err
	}
	return nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if c.Session.ProfileTimeout <= 0 {
		return fmt.Errorf("session profile_timeout must be positive")
	}
	if strings.TrimSpace(c.Session.TokenFile) == "" {
		return fmt.Errorf("session token_file is required")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Audit.NATSURL != "" && (c.Audit.Stream == "" || c.Audit.SubjectPrefix == "") {
		return fmt.Errorf("audit stream and subject_prefix are required when nats_url is set")
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".gridiron", "session.json")
	}
	return filepath.Join(dir, "gridiron", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return b, nil
}
