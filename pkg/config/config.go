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
	DatabaseQueryTimeout      time.Duration
	Environment               string
	Hostname                  string
	ServerHost                string
	ServerPort                int
}

const (
	configFileENV = "CONFIG_FILE"
	envPrefix     = "INKWELL_"
)

// New builds the config from three layers: compiled-in defaults, an optional
// YAML file (CONFIG_FILE, defaulting to ./config.yaml when present), and
// INKWELL_-prefixed environment variables. Env keys use a double underscore
// as the section separator, e.g. INKWELL_SERVER__PORT maps to server.port.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseFilePath:          "./tmp/inkwell.sqlite",
		DatabaseQueryTimeout:      10 * time.Second,
		Environment:               "development",
		Hostname:                  hostname,
		ServerHost:                "127.0.0.1",
		ServerPort:                6460,
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		if _, err := os.Stat("./config.yaml"); err == nil {
			path = "./config.yaml"
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrapf(err, "failed to load config file: %s", path)
			}
		}
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if k.Exists("environment") {
		cfg.Environment = k.String("environment")
	}
	if k.Exists("server.host") {
		cfg.ServerHost = k.String("server.host")
	}
	if k.Exists("server.port") {
		cfg.ServerPort = k.Int("server.port")
	}
	if k.Exists("database.path") {
		cfg.DatabaseFilePath = k.String("database.path")
	}
	if k.Exists("database.debug") {
		cfg.DatabaseDebug = k.Bool("database.debug")
	}
	if k.Exists("database.busy_timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database.busy_timeout")
	}
	if k.Exists("database.query_timeout") {
		cfg.DatabaseQueryTimeout = k.Duration("database.query_timeout")
	}

	return cfg, nil
}
