package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level configuration for Lumen.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Database DatabaseConfig `koanf:"database"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

// LogConfig selects and tunes the query-log ingestion source.
type LogConfig struct {
	SourceType    string `koanf:"source_type"` // file | postgres
	Path          string `koanf:"path"`
	ProgressEvery int    `koanf:"progress_every"`
}

// DatabaseConfig holds the connection settings for the postgres log source.
type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	Table        string `koanf:"table"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Log.SourceType {
	case "file":
		if strings.TrimSpace(c.Log.Path) == "" {
			return fmt.Errorf("log.path is required for the file source")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres source")
		}
		if strings.TrimSpace(c.Database.Table) == "" {
			return fmt.Errorf("database.table is required for the postgres source")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported log.source_type %q (must be file or postgres)", c.Log.SourceType)
	}

	if c.Log.ProgressEvery <= 0 {
		return fmt.Errorf("log.progress_every must be > 0")
	}

	return nil
}

// Load parses config from file + env and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.mode":             "release",
		"log.source_type":         "file",
		"log.path":                "hn_logs.tsv",
		"log.progress_every":      10000,
		"database.dsn":            "",
		"database.table":          "query_log",
		"database.max_open_conns": 4,
		"database.max_idle_conns": 4,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// LUMEN_SERVER__PORT=9090 overrides server.port
	if err := k.Load(env.Provider("LUMEN_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LUMEN_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
