package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	Environment               string
	Hostname                  string
	ServerHost                string
	ServerPort                int
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"

	envPrefix = "GAMEDEX_"
)

// New builds the config in three layers: per-environment defaults, an
// optional YAML config file (CONFIG_FILE, default ./config.yaml), and
// GAMEDEX_-prefixed environment variables. Later layers win.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Environment:               os.Getenv(environmentENV),
		Hostname:                  hostname,
		ServerPort:                3690,
	}

	switch cfg.Environment {
	case "development", "":
		cfg.Environment = "development"
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "./config.yaml"
	}
	err = k.Load(file.Provider(configFile), yaml.Parser())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
	}

	// GAMEDEX_SERVER_PORT=4000 overrides server.port, etc.
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	applyOverrides(cfg, k)

	return cfg, nil
}

func applyOverrides(cfg *Config, k *koanf.Koanf) {
	if k.Exists("server.host") {
		cfg.ServerHost = k.String("server.host")
	}
	if k.Exists("server.port") {
		cfg.ServerPort = k.Int("server.port")
	}
	if k.Exists("database.file.path") {
		cfg.DatabaseFilePath = k.String("database.file.path")
	}
	if k.Exists("database.debug") {
		cfg.DatabaseDebug = k.Bool("database.debug")
	}
	if k.Exists("database.busy.timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database.busy.timeout")
	}
	if k.Exists("database.max.retries") {
		cfg.DatabaseMaxRetries = k.Int("database.max.retries")
	}
}
