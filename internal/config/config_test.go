package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
project_root: site
publish_dir: public
threads: 4
manifest: assets.yaml
stylesheets:
  - source_root: src
    source: css/app.css
    target: app.css
  - source_root: vendor
    source_url: https://cdn.example.com/lib
    pattern: "**/*.css"
    target_dir: vendor
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cssdump.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.ProjectRoot))
	assert.Equal(t, "site", filepath.Base(cfg.ProjectRoot))
	assert.Equal(t, "public", cfg.PublishDir)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, "assets.yaml", cfg.Manifest)
	assert.False(t, cfg.KeepQuery)

	require.Len(t, cfg.Stylesheets, 2)
	assert.Equal(t, Stylesheet{SourceRoot: "src", Source: "css/app.css", Target: "app.css"}, cfg.Stylesheets[0])
	assert.Equal(t, "https://cdn.example.com/lib", cfg.Stylesheets[1].SourceURL)
	assert.Equal(t, "**/*.css", cfg.Stylesheets[1].Pattern)
	assert.Equal(t, "vendor", cfg.Stylesheets[1].TargetDir)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "stylesheets: []\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.PublishDir)
	assert.Equal(t, 3, cfg.Threads)
	assert.False(t, cfg.StopOnError)
	assert.Empty(t, cfg.Stylesheets)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CSSDUMP_THREADS", "7")
	t.Setenv("CSSDUMP_KEEP_QUERY", "true")

	cfg, err := Load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Threads)
	assert.True(t, cfg.KeepQuery)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CSSDUMP_THREADS", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("threads", 3, "")
	flags.String("publish-dir", "web", "")
	require.NoError(t, flags.Parse([]string{"--threads=9"}))

	cfg, err := Load(writeConfig(t, sampleConfig), flags)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Threads)
	assert.Equal(t, "public", cfg.PublishDir, "unset flag keeps the file value")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "threads: 0\n"), nil)
	assert.ErrorContains(t, err, "threads")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero threads", func(c *Config) { c.Threads = 0 }, "threads must be greater than 0"},
		{"empty publish dir", func(c *Config) { c.PublishDir = "" }, "publish_dir"},
		{"pattern without target dir", func(c *Config) {
			c.Stylesheets = []Stylesheet{{Pattern: "*.css"}}
		}, ""},
		{"source and pattern", func(c *Config) {
			c.Stylesheets = []Stylesheet{{Source: "a.css", Target: "a.css", Pattern: "*.css"}}
		}, "mutually exclusive"},
		{"missing target", func(c *Config) {
			c.Stylesheets = []Stylesheet{{Source: "a.css"}}
		}, "stylesheets[0]: source and target are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
