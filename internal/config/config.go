package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "WORKOUT_TOOL"
	DefaultTitle = "Workout Tool Version 0.1.0"
	AppDirName   = ".workout-tool"
)

// Flag names registered by RegisterFlags
const (
	FlagConfig  = "config"
	FlagLogFile = "log-file"
	FlagVersion = "version"
	FlagHelp    = "help"
)

// Config holds application configuration.
type Config struct {
	Log LogConfig `mapstructure:"log"`
	UI  UIConfig  `mapstructure:"ui"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// LogConfig holds the rotating log file settings. An empty File disables logging.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title string `mapstructure:"title"`
	Mouse bool   `mapstructure:"mouse"`
}

// RegisterFlags adds the command line flags understood by Load to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (default ~/.config/workout-tool/config.{yaml,toml})")
	fs.String(FlagLogFile, "", "log file, overrides log.file (default ~/"+AppDirName+"/workout-tool.log)")
	fs.Bool(FlagVersion, false, "print version and exit")
	fs.BoolP(FlagHelp, "h", false, "show this help")
}

// DefaultLogFile returns ~/.workout-tool/workout-tool.log, or "" when there is no home directory.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName, "workout-tool.log")
}

// Load reads configuration from defaults, an optional config file, env and
// flags, in increasing order of precedence. Env var overrides use prefix
// WORKOUT_TOOL_, e.g. WORKOUT_TOOL_LOG_FILE. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("log.file", DefaultLogFile())
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("ui.title", DefaultTitle)
	v.SetDefault("ui.mouse", true)

	explicit := ""
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil {
			explicit = f.Value.String()
		}
		if f := fs.Lookup(FlagLogFile); f != nil {
			if err := v.BindPFlag("log.file", f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", FlagLogFile, err)
			}
		}
	}
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "workout-tool"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A config file is optional unless one was named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings lumberjack or the UI cannot use
func (c Config) Validate() error {
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must not be negative, got %d", c.Log.MaxBackups)
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log.max_age_days must not be negative, got %d", c.Log.MaxAgeDays)
	}
	if strings.TrimSpace(c.UI.Title) == "" {
		return errors.New("ui.title must not be empty")
	}
	return nil
}
