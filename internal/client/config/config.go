// Package config loads runtime configuration for the users CLI.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the users API
//	-t int      request timeout (seconds)
//
// The JSON file uses timex.Duration for the timeout, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "5s"
//	}
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/flagx"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
