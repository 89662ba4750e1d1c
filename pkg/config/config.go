package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RESUMEPARSER_NER_PRIMARY_URL for ner.primary_url.
const EnvPrefix = "RESUMEPARSER"

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	NER        NERConfig
	Extraction ExtractionConfig
	RabbitMQ   RabbitMQConfig
	Log        LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	// RequestsPerSecond throttles incoming requests; zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	RequestBurst      int     `mapstructure:"request_burst"`
	MaxBodyBytes      int64   `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NERConfig holds the entity-recognition collaborator endpoints.
// The primary endpoint serves a token-classification model, the
// secondary one a general-purpose tagger used for name fallback.
type NERConfig struct {
	PrimaryURL     string        `mapstructure:"primary_url"`
	PrimaryToken   string        `mapstructure:"primary_token"`
	SecondaryURL   string        `mapstructure:"secondary_url"`
	SecondaryModel string        `mapstructure:"secondary_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	// Breaker settings guard the remote model against cascading failures.
	MaxFailures       uint32        `mapstructure:"max_failures"`
	BreakerTimeout    time.Duration `mapstructure:"breaker_timeout"`
	HalfOpenSuccesses uint32        `mapstructure:"half_open_successes"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// Validate checks that the recognizer endpoints are usable for the environment.
func (c *NERConfig) Validate(environment string) error {
	if IsProductionLike(environment) {
		if c.PrimaryURL == "" {
			return errors.New(EnvPrefix + "_NER_PRIMARY_URL required in " + environment)
		}
		if strings.Contains(c.PrimaryURL, "localhost") {
			return errors.New("localhost recognizer not allowed in " + environment + " - set " + EnvPrefix + "_NER_PRIMARY_URL")
		}
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("ner.requests_per_second must not be negative")
	}
	return nil
}

// ExtractionConfig tunes the extractors
type ExtractionConfig struct {
	// TaxonomyFile optionally replaces the built-in skill taxonomy (YAML).
	TaxonomyFile string `mapstructure:"taxonomy_file"`
	// DateWindow is the largest character distance at which a date is
	// still paired with an organization in the education fallback pass.
	DateWindow int `mapstructure:"date_window"`
}

// RabbitMQConfig holds RabbitMQ connection configuration.
// An empty URL disables event publishing.
type RabbitMQConfig struct {
	URL            string        `mapstructure:"url"`
	Exchange       string        `mapstructure:"exchange"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// Enabled reports whether events should be published
func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig holds logging options
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment and config files.
// This function applies development defaults and is suitable for local development.
// For production use, prefer LoadWithValidation which enforces required configuration.
func Load(serviceName string) (*Config, error) {
	return loadConfig(serviceName, "")
}

// LoadFile loads configuration from an explicit YAML file on top of defaults
// and environment overrides.
func LoadFile(serviceName, path string) (*Config, error) {
	return loadConfig(serviceName, path)
}

// LoadWithValidation loads configuration and validates it for the current environment.
// In production/staging environments, this will fail if required configuration is missing.
func LoadWithValidation(serviceName, path string) (*Config, error) {
	cfg, err := loadConfig(serviceName, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.NER.Validate(cfg.Server.Environment); err != nil {
		return nil, fmt.Errorf("ner configuration error: %w", err)
	}

	if IsProductionLike(cfg.Server.Environment) {
		if cfg.RabbitMQ.Enabled() && strings.Contains(cfg.RabbitMQ.URL, "localhost") {
			return nil, errors.New(EnvPrefix + "_RABBITMQ_URL must be a non-localhost value in " + cfg.Server.Environment)
		}
	}

	if cfg.Extraction.DateWindow <= 0 {
		return nil, errors.New("extraction.date_window must be positive")
	}

	return cfg, nil
}

// loadConfig is the internal configuration loader
func loadConfig(serviceName, path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(serviceName)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/resume-parser")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.Environment = strings.ToLower(cfg.Server.Environment)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.requests_per_second", 10.0)
	v.SetDefault("server.request_burst", 20)
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Recognizer defaults point at locally run model services
	v.SetDefault("ner.primary_url", "http://localhost:8501/ner")
	v.SetDefault("ner.primary_token", "")
	v.SetDefault("ner.secondary_url", "http://localhost:8502")
	v.SetDefault("ner.secondary_model", "en")
	v.SetDefault("ner.timeout", 30*time.Second)
	v.SetDefault("ner.max_failures", 3)
	v.SetDefault("ner.breaker_timeout", 30*time.Second)
	v.SetDefault("ner.half_open_successes", 2)
	v.SetDefault("ner.requests_per_second", 0.0)
	v.SetDefault("ner.burst", 1)

	// Extraction defaults
	v.SetDefault("extraction.taxonomy_file", "")
	v.SetDefault("extraction.date_window", 120)

	// RabbitMQ defaults (disabled unless a URL is given)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "resume.events")
	v.SetDefault("rabbitmq.reconnect_delay", 5*time.Second)
	v.SetDefault("rabbitmq.max_retries", 3)

	v.SetDefault("log.level", "info")
}
