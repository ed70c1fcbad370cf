/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	JSON      bool            `mapstructure:"json"`
	Quiet     bool            `mapstructure:"quiet"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	Clock     ClockConfig     `mapstructure:"clock" validate:"required"`
	Retention RetentionConfig `mapstructure:"retention"`
	Display   DisplayConfig   `mapstructure:"display"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// Dir overrides the resolved data directory when set
	Dir            string `mapstructure:"dir"`
	Backend        string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	File           string `mapstructure:"file" validate:"required"`
	DBFile         string `mapstructure:"dbFile" validate:"required_if=Backend sqlite"`
	Format         string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
	VerifyChecksum bool   `mapstructure:"verifyChecksum"`
}

// ClockConfig controls how "today" is computed
type ClockConfig struct {
	// Offset is "+05:30" style or a Go duration such as "5h30m"
	Offset           string        `mapstructure:"offset" validate:"required"`
	ZoneLabel        string        `mapstructure:"zoneLabel" validate:"omitempty,max=8"`
	RolloverInterval time.Duration `mapstructure:"rolloverInterval" validate:"gte=1s"`
}

// RetentionConfig holds the load-time pruning window. Zero days disables pruning.
type RetentionConfig struct {
	Days int `mapstructure:"days" validate:"gte=0,lte=3650"`
}

// DisplayConfig holds presentation settings
type DisplayConfig struct {
	Locale string `mapstructure:"locale" validate:"omitempty,bcp47_language_tag"`
}

// LogConfig holds structured logging settings
type LogConfig struct {
	Path   string `mapstructure:"path"`
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}
