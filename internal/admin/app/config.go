package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CLINIC_"

type Config struct {
	Env          string             `koanf:"env"` // dev, staging, prod
	Log          LogConfig          `koanf:"log"`
	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Auth         AuthConfig         `koanf:"auth"`
	Seed         SeedConfig         `koanf:"seed"`
	Housekeeping HousekeepingConfig `koanf:"housekeeping"`
	Metrics      MetricsConfig      `koanf:"metrics"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or text
}

type ServerConfig struct {
	Port              int           `koanf:"port"`
	ShutdownGrace     time.Duration `koanf:"shutdowngrace"`
	ReadHeaderTimeout time.Duration `koanf:"readheadertimeout"`
}

type DatabaseConfig struct {
	Driver   string `koanf:"driver"` // sqlite or postgres
	File     string `koanf:"file"`
	URL      string `koanf:"url"`
	MaxConns int    `koanf:"maxconns"`
}

type AuthConfig struct {
	Issuer    string        `koanf:"issuer"`
	Audience  string        `koanf:"audience"`
	AccessTTL time.Duration `koanf:"accessttl"`

	// SigningKeyFile keeps the Ed25519 key across restarts. Empty means a
	// fresh key per start, which invalidates every issued token.
	SigningKeyFile string `koanf:"signingkeyfile"`
	PepperFile     string `koanf:"pepperfile"`
}

type SeedConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"` // empty uses the built-in clinic layout

	// AdminPassword overrides the seed file's admin password. When both are
	// empty a password is generated and logged once.
	AdminPassword string `koanf:"adminpassword"`
}

type HousekeepingConfig struct {
	Interval time.Duration `koanf:"interval"`
	Prune    bool          `koanf:"prune"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

func defaults() map[string]any {
	return map[string]any{
		"env":                      "dev",
		"log.level":                "info",
		"log.format":               "json",
		"server.port":              8080,
		"server.shutdowngrace":     "10s",
		"server.readheadertimeout": "3s",
		"database.driver":          "sqlite",
		"database.file":            "clinic.db",
		"database.maxconns":        10,
		"auth.issuer":              "clinic-admin",
		"auth.audience":            "clinic-admin",
		"auth.accessttl":           "30m",
		"auth.pepperfile":          "pepper",
		"seed.enabled":             true,
		"housekeeping.interval":    "1h",
		"housekeeping.prune":       false,
		"metrics.enabled":          true,
	}
}

// LoadConfig layers the defaults, the YAML files in configPaths plus the
// one named by CLINIC_CONFIG, and CLINIC_* environment variables, in that
// order. CLINIC_SERVER_PORT sets server.port.
func LoadConfig(configPaths ...string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		configPaths = append(configPaths, p)
	}
	for _, path := range configPaths {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"_", ".",
		)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.File == "" {
			return fmt.Errorf("config: database.file is required for sqlite")
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("config: database.url is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Auth.AccessTTL <= 0 {
		return fmt.Errorf("config: auth.accessttl must be positive")
	}
	return nil
}
