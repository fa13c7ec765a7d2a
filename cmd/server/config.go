package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched
// in order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/go-blog/config.yaml",
	"/etc/go-blog/config.yml",
}

// ConfigPathEnvVar overrides the config file path
const ConfigPathEnvVar = "BLOG_CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

// AuthConfig carries the token settings. Expirations are milliseconds,
// the signing key is base64 encoded.
type AuthConfig struct {
	SigningKey          string `koanf:"signing_key"`
	AccessExpirationMs  int64  `koanf:"access_expiration_ms"`
	RefreshExpirationMs int64  `koanf:"refresh_expiration_ms"`
	ContextKey          string `koanf:"context_key"`
	TokenLookup         string `koanf:"token_lookup"`
	AuthScheme          string `koanf:"auth_scheme"`
	Issuer              string `koanf:"issuer"`
}

func (c AuthConfig) GetSigningKeyBase64() string      { return c.SigningKey }
func (c AuthConfig) GetAccessTokenExpiration() int64  { return c.AccessExpirationMs }
func (c AuthConfig) GetRefreshTokenExpiration() int64 { return c.RefreshExpirationMs }
func (c AuthConfig) GetContextKey() string            { return c.ContextKey }
func (c AuthConfig) GetTokenLookup() string           { return c.TokenLookup }
func (c AuthConfig) GetAuthScheme() string            { return c.AuthScheme }
func (c AuthConfig) GetIssuer() string                { return c.Issuer }

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			DSN: "file:blog.db?cache=shared&_pragma=foreign_keys(1)",
		},
		Auth: AuthConfig{
			SigningKey:          "",
			AccessExpirationMs:  3600000,
			RefreshExpirationMs: 86400000,
			ContextKey:          "identity",
			TokenLookup:         "header:Authorization",
			AuthScheme:          "Bearer",
			Issuer:              "go-blog",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig layers defaults, an optional YAML file, and BLOG_
// prefixed environment variables, in that order of precedence.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("BLOG_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signing_key is required (BLOG_AUTH_SIGNING_KEY)")
	}

	if c.Auth.AccessExpirationMs <= 0 {
		return fmt.Errorf("auth.access_expiration_ms must be positive")
	}

	if c.Auth.RefreshExpirationMs <= 0 {
		return fmt.Errorf("auth.refresh_expiration_ms must be positive")
	}

	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps BLOG_ environment variables to config paths.
// Unknown variables are dropped so stray env vars cannot pollute the
// configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "BLOG_"))

	envMappings := map[string]string{
		"server_addr":  "server.addr",
		"database_dsn": "database.dsn",

		"auth_signing_key":           "auth.signing_key",
		"auth_access_expiration_ms":  "auth.access_expiration_ms",
		"auth_refresh_expiration_ms": "auth.refresh_expiration_ms",
		"auth_context_key":           "auth.context_key",
		"auth_token_lookup":          "auth.token_lookup",
		"auth_scheme":                "auth.auth_scheme",
		"auth_issuer":                "auth.issuer",

		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
