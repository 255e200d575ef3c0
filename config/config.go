// Package config loads host and runtime settings for the simulator and demo.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "PLATFORMER"

var ErrInvalidRate = errors.New("config: rates must be positive")

type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
	Debug   bool          `mapstructure:"debug"`
	Log     LogConfig     `mapstructure:"log"`
}

type SimConfig struct {
	FixedRate     int     `mapstructure:"fixed_rate"`
	FrameRate     int     `mapstructure:"frame_rate"`
	MaxFrameDelta float64 `mapstructure:"max_frame_delta"`
}

type PrefabsConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.fixed_rate", 50)
	v.SetDefault("sim.frame_rate", 60)
	v.SetDefault("sim.max_frame_delta", 0.333)
	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.level", "level.yaml")
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
}

// Load reads settings from path, or from platformer.yaml in the working
// directory when path is empty. A missing default file is not an error.
// PLATFORMER_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("platformer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Sim.FixedRate <= 0 || cfg.Sim.FrameRate <= 0 || cfg.Sim.MaxFrameDelta <= 0 {
		return nil, ErrInvalidRate
	}
	return &cfg, nil
}

// FixedStep is the duration of one physics tick in seconds.
func (c *Config) FixedStep() float64 {
	return 1 / float64(c.Sim.FixedRate)
}

// FrameStep is the nominal duration of one frame tick in seconds.
func (c *Config) FrameStep() float64 {
	return 1 / float64(c.Sim.FrameRate)
}

func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	if c.Debug && level > slog.LevelDebug {
		return slog.LevelDebug
	}
	return level
}
