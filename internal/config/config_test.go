package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
engine:
  redundancy: 25
scan:
  followSymlinks: true
jobs: 4
logging:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "par2", cfg.Engine.Path)
	assert.Equal(t, 25, cfg.Engine.Redundancy)
	assert.True(t, cfg.Scan.FollowSymlinks)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "warning", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("PAR2MIRROR_TEST_ENGINE", "/opt/par2/bin/par2")
	path := writeConfig(t, "engine:\n  path: $(PAR2MIRROR_TEST_ENGINE)\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/par2/bin/par2", cfg.Engine.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeConfig(t, "jobs: [1, 2\n"))
	assert.ErrorContains(t, err, "unmarshalling yaml")
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty engine", func(c *Config) { c.Engine.Path = "" }, false},
		{"zero redundancy", func(c *Config) { c.Engine.Redundancy = 0 }, false},
		{"full redundancy", func(c *Config) { c.Engine.Redundancy = 100 }, true},
		{"too much redundancy", func(c *Config) { c.Engine.Redundancy = 101 }, false},
		{"no jobs", func(c *Config) { c.Jobs = 0 }, false},
		{"debug level", func(c *Config) { c.Logging.Level = "debug" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }, false},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
