package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			FrameRate: "29.97",
			DropFrame: DropFrameAuto,
		},
		Mapper: MapperConfig{
			ClockRate:    90000,
			TimeZone:     "UTC",
			MaxJump:      10 * time.Second,
			WarnInterval: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unsupported frame rate",
			modify:  func(c *Config) { c.Defaults.FrameRate = "48" },
			wantErr: true,
			errMsg:  "defaults config",
		},
		{
			name: "drop-frame at 25 fps",
			modify: func(c *Config) {
				c.Defaults.FrameRate = "25"
				c.Defaults.DropFrame = DropFrameOn
			},
			wantErr: true,
			errMsg:  "drop-frame is not available",
		},
		{
			name:    "unknown drop mode",
			modify:  func(c *Config) { c.Defaults.DropFrame = "sometimes" },
			wantErr: true,
			errMsg:  "drop_frame must be",
		},
		{
			name:    "rollover too large",
			modify:  func(c *Config) { c.Defaults.RolloverMaxHours = 25 },
			wantErr: true,
			errMsg:  "rollover_max_hours",
		},
		{
			name:    "zero clock rate",
			modify:  func(c *Config) { c.Mapper.ClockRate = 0 },
			wantErr: true,
			errMsg:  "clock_rate must be positive",
		},
		{
			name:    "unknown time zone",
			modify:  func(c *Config) { c.Mapper.TimeZone = "Mars/Olympus_Mons" },
			wantErr: true,
			errMsg:  "time_zone",
		},
		{
			name:    "zero max jump",
			modify:  func(c *Config) { c.Mapper.MaxJump = 0 },
			wantErr: true,
			errMsg:  "max_jump must be positive",
		},
		{
			name:    "negative warn interval",
			modify:  func(c *Config) { c.Mapper.WarnInterval = -time.Second },
			wantErr: true,
			errMsg:  "warn_interval cannot be negative",
		},
		{
			name:    "phantom start timecode",
			modify:  func(c *Config) { c.Mapper.StartTimecode = "00:01:00;00" },
			wantErr: true,
			errMsg:  "start_timecode",
		},
		{
			name:    "valid start timecode",
			modify:  func(c *Config) { c.Mapper.StartTimecode = "01:00:00;00" },
			wantErr: false,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
			errMsg:  "invalid log level",
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "log format must be",
		},
		{
			name: "file output without size",
			modify: func(c *Config) {
				c.Logging.Output = "/var/log/timecode.log"
				c.Logging.MaxSize = 0
			},
			wantErr: true,
			errMsg:  "max_size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if err != nil {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
