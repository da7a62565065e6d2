package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Scan    ScanConfig    `yaml:"scan"`
	Jobs    int           `yaml:"jobs"` // concurrent engine runs for create and verify
	Logging LoggingConfig `yaml:"logging"`
}

type EngineConfig struct {
	Path       string `yaml:"path"`       // par2 binary, looked up in PATH when bare
	Redundancy int    `yaml:"redundancy"` // percent, passed as -r<N>
}

type ScanConfig struct {
	FollowSymlinks bool `yaml:"followSymlinks"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text", "json"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Path:       "par2",
			Redundancy: 10,
		},
		Jobs: 1,
		Logging: LoggingConfig{
			Level:  "warning",
			Format: "text",
		},
	}
}

// Validate checks value ranges after file and flags have been applied.
func (c *Config) Validate() error {
	if c.Engine.Path == "" {
		return fmt.Errorf("engine.path must not be empty")
	}
	if c.Engine.Redundancy < 1 || c.Engine.Redundancy > 100 {
		return fmt.Errorf("engine.redundancy must be between 1 and 100, got %d", c.Engine.Redundancy)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
