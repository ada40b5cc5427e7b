// Package config loads the desencoder settings from an optional INI file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"
	"github.com/nPaBwaYT/desencoder/report"
)

const (
	defaultLogLevel = "info"
	defaultFormat   = report.FormatAll
)

// Config holds all application configuration.
type Config struct {
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off}"`
	Format     string `short:"f" long:"format" description:"Ciphertext output format {binary, base64, hex, all}"`
	Trace      bool   `short:"t" long:"trace" description:"Print the key schedule and every encryption round"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		DebugLevel: defaultLogLevel,
		Format:     defaultFormat,
	}
}

// LoadConfig reads path on top of the defaults. An empty path or a missing
// file leaves the defaults in place; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		err := flags.IniParse(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to parse config file "+
				"%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate makes sure the configuration holds known values.
func (c *Config) Validate() error {
	if _, ok := btclog.LevelFromString(c.DebugLevel); !ok {
		return fmt.Errorf("the specified debug level [%v] is invalid",
			c.DebugLevel)
	}

	if !report.ValidFormat(c.Format) {
		return fmt.Errorf("the specified format [%v] is invalid -- "+
			"supported formats are %v", c.Format, report.Formats)
	}

	return nil
}
