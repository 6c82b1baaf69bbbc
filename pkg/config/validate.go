package config

import (
	"fmt"
	"time"

	"github.com/zsiec/timecode/pkg/timecode"
)

func (c *Config) Validate() error {
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults config: %w", err)
	}

	if err := c.Mapper.Validate(); err != nil {
		return fmt.Errorf("mapper config: %w", err)
	}

	if c.Mapper.StartTimecode != "" {
		opts, err := c.Defaults.Options()
		if err != nil {
			return fmt.Errorf("defaults config: %w", err)
		}
		if _, err := timecode.Parse(c.Mapper.StartTimecode, opts...); err != nil {
			return fmt.Errorf("mapper config: start_timecode: %w", err)
		}
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func (d *DefaultsConfig) Validate() error {
	rate, err := d.Rate()
	if err != nil {
		return err
	}

	switch d.DropFrame {
	case DropFrameAuto, DropFrameOff:
	case DropFrameOn:
		if !rate.SupportsDropFrame() {
			return fmt.Errorf("drop-frame is not available at %s fps", rate)
		}
	default:
		return fmt.Errorf("drop_frame must be %q, %q or %q", DropFrameAuto, DropFrameOn, DropFrameOff)
	}

	if d.RolloverMaxHours < 0 || d.RolloverMaxHours > 24 {
		return fmt.Errorf("rollover_max_hours must be between 0 and 24")
	}

	return nil
}

func (m *MapperConfig) Validate() error {
	if m.ClockRate == 0 {
		return fmt.Errorf("clock_rate must be positive")
	}

	if m.MaxJump <= 0 {
		return fmt.Errorf("max_jump must be positive")
	}

	if _, err := time.LoadLocation(m.TimeZone); err != nil {
		return fmt.Errorf("time_zone: %w", err)
	}

	if m.WarnInterval < 0 {
		return fmt.Errorf("warn_interval cannot be negative")
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"panic": true,
		"fatal": true,
		"error": true,
		"warn":  true,
		"info":  true,
		"debug": true,
		"trace": true,
	}

	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("log format must be 'json' or 'text'")
	}

	if l.Output != "stdout" && l.Output != "stderr" {
		if l.MaxSize <= 0 {
			return fmt.Errorf("max_size must be positive for file output")
		}
		if l.MaxBackups < 0 {
			return fmt.Errorf("max_backups cannot be negative")
		}
		if l.MaxAge < 0 {
			return fmt.Errorf("max_age cannot be negative")
		}
	}

	return nil
}
