package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/classkeeper/internal/flagx"
	"github.com/dmitrijs2005/classkeeper/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointer fields tell an
// absent key from an explicit zero.
type JsonConfig struct {
	DatabasePath *string         `json:"database_path"`
	LogLevel     *string         `json:"log_level"`
	LogFormat    *string         `json:"log_format"`
	BusyTimeout  *timex.Duration `json:"busy_timeout"`
	MaxOpenConns *int            `json:"max_open_conns"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
	if jc.MaxOpenConns != nil {
		cfg.MaxOpenConns = *jc.MaxOpenConns
	}
	return nil
}
