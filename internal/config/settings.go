// Package config holds operator settings for zpoolctl.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional YAML config file, ZPOOLCTL_* environment variables and command
// line flags. Viper does the merging; this package owns the keys, the
// defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. ZPOOLCTL_TIMEOUT.
const EnvPrefix = "ZPOOLCTL"

// OSFamilyAuto asks for the OS family to be detected from the host.
const OSFamilyAuto = "auto"

// Keys shared by the config file, environment and flags.
const (
	KeyZpool     = "zpool"
	KeyLsblk     = "lsblk"
	KeyTimeout   = "timeout"
	KeyOSFamily  = "os-family"
	KeyStrict    = "strict"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyTextfile  = "textfile"
)

// Settings are the resolved operator settings.
type Settings struct {
	ZpoolPath string        `mapstructure:"zpool"`
	LsblkPath string        `mapstructure:"lsblk"`
	Timeout   time.Duration `mapstructure:"timeout"`
	OSFamily  string        `mapstructure:"os-family"`
	Strict    bool          `mapstructure:"strict"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
	// Textfile is where the inventory command writes metrics for the
	// node_exporter textfile collector. Empty disables writing.
	Textfile string `mapstructure:"textfile"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		ZpoolPath: "zpool",
		LsblkPath: "lsblk",
		Timeout:   60 * time.Second,
		OSFamily:  OSFamilyAuto,
		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// SetDefaults registers Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyZpool, d.ZpoolPath)
	v.SetDefault(KeyLsblk, d.LsblkPath)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyOSFamily, d.OSFamily)
	v.SetDefault(KeyStrict, d.Strict)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyTextfile, d.Textfile)
}

// DefaultConfigDir is where the config file is looked up when none is
// given explicitly.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "zpoolctl")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "zpoolctl")
}

// Load reads settings into v and returns them validated. An explicit
// configFile must exist; otherwise config.yaml in DefaultConfigDir is used
// if present.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Normalize lower-cases enum-like fields and trims paths.
func (s *Settings) Normalize() {
	s.ZpoolPath = strings.TrimSpace(s.ZpoolPath)
	s.LsblkPath = strings.TrimSpace(s.LsblkPath)
	s.OSFamily = strings.ToLower(strings.TrimSpace(s.OSFamily))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	if s.ZpoolPath == "" {
		return fmt.Errorf("%s path is required", KeyZpool)
	}
	if s.LsblkPath == "" {
		return fmt.Errorf("%s path is required", KeyLsblk)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%s must be greater than 0, got %s", KeyTimeout, s.Timeout)
	}
	if s.OSFamily == "" {
		return fmt.Errorf("%s is required (use %q to detect)", KeyOSFamily, OSFamilyAuto)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid %s %q: %w", KeyLogLevel, s.LogLevel, err)
	}
	switch s.LogFormat {
	case "auto", "json", "console":
	default:
		return fmt.Errorf("invalid %s %q (must be auto, json or console)", KeyLogFormat, s.LogFormat)
	}
	if s.Textfile != "" && !strings.HasSuffix(s.Textfile, ".prom") {
		return fmt.Errorf("%s must end in .prom for the node_exporter textfile collector", KeyTextfile)
	}
	return nil
}
