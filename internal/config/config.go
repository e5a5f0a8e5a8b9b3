package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Stylesheet is one entry of the stylesheets list. Either Source/Target name
// a single file or Pattern/TargetDir select many.
type Stylesheet struct {
	// SourceRoot is the local directory stylesheets are read from, relative
	// to the project root unless absolute.
	SourceRoot string `mapstructure:"source_root"`
	// SourceURL, when set, is reported as the source root so root-relative
	// references gain its host.
	SourceURL string `mapstructure:"source_url"`
	Source    string `mapstructure:"source"`
	Target    string `mapstructure:"target"`
	Pattern   string `mapstructure:"pattern"`
	TargetDir string `mapstructure:"target_dir"`
}

// Config holds all runtime configuration for a dump run.
type Config struct {
	ProjectRoot string       `mapstructure:"project_root"`
	PublishDir  string       `mapstructure:"publish_dir"`
	Threads     int          `mapstructure:"threads"`
	StopOnError bool         `mapstructure:"stop_on_error"`
	KeepQuery   bool         `mapstructure:"keep_query"`
	Manifest    string       `mapstructure:"manifest"` // relative to ProjectRoot unless absolute
	Quiet       bool         `mapstructure:"quiet"`
	Stylesheets []Stylesheet `mapstructure:"stylesheets"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		ProjectRoot: ".",
		PublishDir:  "web",
		Threads:     3,
	}
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"project-root":  "project_root",
	"publish-dir":   "publish_dir",
	"threads":       "threads",
	"stop-on-error": "stop_on_error",
	"keep-query":    "keep_query",
	"manifest":      "manifest",
	"quiet":         "quiet",
}

// Load reads configuration from file (or ./cssdump.yaml when file is empty),
// CSSDUMP_* environment variables and any flags present in flags. Flags win
// over the environment, which wins over the file.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := New()
	v.SetDefault("project_root", def.ProjectRoot)
	v.SetDefault("publish_dir", def.PublishDir)
	v.SetDefault("threads", def.Threads)
	v.SetDefault("stop_on_error", def.StopOnError)
	v.SetDefault("keep_query", def.KeepQuery)
	v.SetDefault("manifest", def.Manifest)
	v.SetDefault("quiet", def.Quiet)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("cssdump")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CSSDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	cfg.ProjectRoot = root

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make a run meaningless.
func (c *Config) Validate() error {
	if c.Threads <= 0 {
		return errors.New("threads must be greater than 0")
	}
	if c.PublishDir == "" {
		return errors.New("publish_dir must not be empty")
	}
	for i, s := range c.Stylesheets {
		switch {
		case s.Pattern != "" && s.Source != "":
			return fmt.Errorf("stylesheets[%d]: source and pattern are mutually exclusive", i)
		case s.Pattern != "":
			// target_dir may be empty: matches keep their relative layout
		case s.Source == "" || s.Target == "":
			return fmt.Errorf("stylesheets[%d]: source and target are required", i)
		}
	}
	return nil
}
