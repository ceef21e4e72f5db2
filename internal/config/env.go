package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvDatabase     = "CLASSKEEPER_DB"
	EnvLogLevel     = "CLASSKEEPER_LOG_LEVEL"
	EnvLogFormat    = "CLASSKEEPER_LOG_FORMAT"
	EnvBusyTimeout  = "CLASSKEEPER_BUSY_TIMEOUT"
	EnvMaxOpenConns = "CLASSKEEPER_MAX_OPEN_CONNS"
)

const defaultEnvFile = ".env"

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays values from the dotenv file and then from the process
// environment, which wins over the file.
func parseEnv(cfg *Config, args []string) error {
	path := flagx.EnvFilePath(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	file, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			file = nil
		} else {
			return fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	return applyEnv(cfg, lookup)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvBusyTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvBusyTimeout, err)
		}
		cfg.BusyTimeout = d
	}
	if v, ok := lookup(EnvMaxOpenConns); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxOpenConns, err)
		}
		cfg.MaxOpenConns = n
	}
	return nil
}
