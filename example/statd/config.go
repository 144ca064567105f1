// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// config holds the statd configuration loaded from the YAML file passed with
// the -config flag.
type config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// MaxEntries is the cache entry limit, 0 means unlimited.
	MaxEntries int `yaml:"max_entries"`

	// Throttle is the minimum interval between real stats per file.
	Throttle duration `yaml:"throttle"`

	// MaxAge is the age after which unrefreshed entries are swept.
	MaxAge duration `yaml:"max_age"`

	// GCInterval is the interval between sweep runs.
	GCInterval duration `yaml:"gc_interval"`

	// LogLevel is the zerolog level name, e.g. "info" or "debug".
	LogLevel string `yaml:"log_level"`

	// DebugLog enables the cache's own debug messages.
	DebugLog bool `yaml:"debug_log"`
}

// duration decodes Go duration strings such as "2s" or "10m" from YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err //nolint:wrapcheck
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(v)
	return nil
}

// loadConfig reads and parses the configuration file, filling in defaults for
// omitted fields.
func loadConfig(path string) (*config, error) {
	conf := &config{
		Listen:     ":8080",
		MaxEntries: 1024,
		Throttle:   duration(time.Second * 2),
		MaxAge:     duration(time.Minute * 10),
		GCInterval: duration(time.Minute),
		LogLevel:   "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return conf, nil
}
