// Package config loads vshell settings from a config file, VSHELL_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "VSHELL"

// File is a file seeded into the session's filesystem.
type File struct {
	Path    string `mapstructure:"path"`
	Content string `mapstructure:"content"`
}

// Config holds the settings of a vshell session.
type Config struct {
	// LogLevel is one of debug, info, warn, error or fatal.
	LogLevel string `mapstructure:"log_level"`
	// Root is a host directory exposed read-only as the session's "/".
	// Empty means an in-memory filesystem.
	Root string `mapstructure:"root"`
	// Path is the initial PATH variable.
	Path string `mapstructure:"path"`
	// Env holds NAME=value variables. A list keeps the case of names.
	Env []string `mapstructure:"env"`
	// Files are written into the filesystem before the first command.
	Files []File `mapstructure:"files"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Path:     "/bin:/usr/bin",
	}
}

// Load reads settings. With an explicit path that file must exist;
// otherwise vshell.{yaml,toml,json} is looked up in the working directory
// and in the user config directory, and its absence is not an error.
// Flags that were set on the command line win over everything else.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("root", defaults.Root)
	v.SetDefault("path", defaults.Path)
	v.SetDefault("env", defaults.Env)
	v.SetDefault("files", defaults.Files)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"log_level": "log-level", "root": "root"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vshell")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vshell"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the session cannot use.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	for _, kv := range c.Env {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid env entry %q (expected NAME=value)", kv)
		}
	}
	for i, f := range c.Files {
		if !strings.HasPrefix(f.Path, "/") {
			return fmt.Errorf("files[%d]: path %q must be absolute", i, f.Path)
		}
	}
	return nil
}

// Variables returns Env as a map with PATH filled in.
func (c Config) Variables() map[string]string {
	vars := map[string]string{"PATH": c.Path}
	for _, kv := range c.Env {
		name, value, _ := strings.Cut(kv, "=")
		vars[name] = value
	}
	return vars
}

// FileMap returns Files keyed by path.
func (c Config) FileMap() map[string]string {
	files := make(map[string]string, len(c.Files))
	for _, f := range c.Files {
		files[f.Path] = f.Content
	}
	return files
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
