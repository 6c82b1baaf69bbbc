package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zsiec/timecode/pkg/timecode"
)

// Drop-frame modes accepted in configuration.
const (
	DropFrameAuto = "auto"
	DropFrameOn   = "drop"
	DropFrameOff  = "non_drop"
)

type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Mapper   MapperConfig   `mapstructure:"mapper"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// DefaultsConfig holds the frame rate and drop-frame mode applied to
// timecodes that do not specify their own.
type DefaultsConfig struct {
	FrameRate        string `mapstructure:"frame_rate"` // "29.97" or "30000/1001"
	DropFrame        string `mapstructure:"drop_frame"` // auto, drop or non_drop
	RolloverMaxHours int    `mapstructure:"rollover_max_hours"`
}

type MapperConfig struct {
	StreamID      string        `mapstructure:"stream_id"`
	SSRC          uint32        `mapstructure:"ssrc"`           // 0 accepts any source
	ClockRate     uint32        `mapstructure:"clock_rate"`     // media clock ticks per second
	StartTimecode string        `mapstructure:"start_timecode"` // label assigned to the first timestamp
	TimeZone      string        `mapstructure:"time_zone"`      // zone of sender report wall clocks
	MaxJump       time.Duration `mapstructure:"max_jump"`       // larger gaps count as discontinuities
	WarnInterval  time.Duration `mapstructure:"warn_interval"`  // minimum spacing of discontinuity warnings
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`   // json or text
	Output     string `mapstructure:"output"`   // stdout, stderr, or file path
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads a YAML file, applies TIMECODE_* environment overrides and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	// Environment variable override
	v.SetEnvPrefix("TIMECODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Timecode defaults
	v.SetDefault("defaults.frame_rate", "29.97")
	v.SetDefault("defaults.drop_frame", DropFrameAuto)
	v.SetDefault("defaults.rollover_max_hours", 24)

	// Mapper defaults
	v.SetDefault("mapper.stream_id", "")
	v.SetDefault("mapper.clock_rate", 90000)
	v.SetDefault("mapper.ssrc", 0)
	v.SetDefault("mapper.start_timecode", "")
	v.SetDefault("mapper.time_zone", "UTC")
	v.SetDefault("mapper.max_jump", "10s")
	v.SetDefault("mapper.warn_interval", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

// Rate parses the configured default frame rate.
func (d *DefaultsConfig) Rate() (timecode.FrameRate, error) {
	return timecode.ParseFrameRate(d.FrameRate)
}

// Options converts the defaults into timecode construction options.
func (d *DefaultsConfig) Options() ([]timecode.Option, error) {
	rate, err := d.Rate()
	if err != nil {
		return nil, err
	}

	opts := []timecode.Option{timecode.WithFrameRate(rate)}
	switch d.DropFrame {
	case DropFrameOn:
		opts = append(opts, timecode.WithDropFrame(true))
	case DropFrameOff:
		opts = append(opts, timecode.WithDropFrame(false))
	}
	return opts, nil
}
