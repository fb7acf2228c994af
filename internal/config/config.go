package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 3434
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "smartnotes"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultDevEmail   = "local@smartnotes.dev"
)

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Auth: AuthRuntimeConfig{DevEmail: defaultDevEmail},
	}
}

// Load reads and validates the YAML config file, then applies environment
// variable overrides. A missing config.yml at the default path yields
// defaults plus env overrides so a bare `SMARTNOTES_DSN=... server`
// invocation works; a path pointing anywhere else must exist.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultConfigPath:
		// No config.yml at the default path: run on defaults.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.DSN == "" {
		cfg.DSN = cfg.Database.BuildDSN()
	}
	if cfg.Auth.DevBypass && !cfg.IsDev() {
		return nil, fmt.Errorf("auth.dev_bypass must not be enabled in production")
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("SMARTNOTES_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && cfg.DSN == "" {
		cfg.DSN = v
	}
	if v := os.Getenv("SMARTNOTES_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SMARTNOTES_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("SMARTNOTES_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && len(cfg.AI.Providers) == 0 {
		cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
			ID:           "openai-env",
			Name:         "OpenAI (env)",
			Type:         "OpenAI",
			APIKey:       v,
			Endpoint:     os.Getenv("OPENAI_BASE_URL"),
			DefaultModel: os.Getenv("OPENAI_MODEL"),
			Enabled:      true,
		})
	}
}
