package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	CORS    CORSConfig    `yaml:"cors"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"base_path"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

// StorageConfig selects the document backend. Backend is either "file"
// (flat JSON documents under DataDir) or "postgres" (URL as DSN).
type StorageConfig struct {
	Backend  string        `yaml:"backend"`
	URL      string        `yaml:"url"`
	DataDir  string        `yaml:"data_dir"`
	LockWait time.Duration `yaml:"lock_wait"`
}

type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SweepConfig controls the orphaned-comment sweep job.
type SweepConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     8002,
			BasePath: "/api",
			Env:      "dev",
			LogLevel: "debug",
		},
		Storage: StorageConfig{
			Backend:  "file",
			DataDir:  "./data",
			LockWait: 2 * time.Second,
		},
		Sweep: SweepConfig{
			Enabled:  true,
			Schedule: "0 */6 * * *",
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if basePath := os.Getenv("SERVER_BASE_PATH"); basePath != "" {
		cfg.Server.BasePath = basePath
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Storage.URL = dbURL
	}
	if dataDir := os.Getenv("STORAGE_DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if lockWait := os.Getenv("STORAGE_LOCK_WAIT"); lockWait != "" {
		if d, err := time.ParseDuration(lockWait); err == nil {
			cfg.Storage.LockWait = d
		}
	}
	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.Auth.SecretKey = secretKey
	}
	if schedule := os.Getenv("SWEEP_SCHEDULE"); schedule != "" {
		cfg.Sweep.Schedule = schedule
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the file backend")
		}
	case "postgres":
		if c.Storage.URL == "" {
			return fmt.Errorf("storage.url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("auth.secret_key is required")
	}
	return nil
}
