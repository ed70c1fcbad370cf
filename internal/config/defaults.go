// Package config provides centralized configuration constants for daytrack.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// AppName is used for directory, config and env naming.
const AppName = "daytrack"

// Storage defaults
const (
	// DefaultBackend is the storage backend used when none is configured
	DefaultBackend = "file"

	// DefaultDataFile is the task file name inside the data directory
	DefaultDataFile = "tasks.json"

	// DefaultDBFile is the SQLite database name inside the data directory
	DefaultDBFile = "daytrack.db"

	// DefaultFormat is the serialization format of the task file
	DefaultFormat = "json"
)

// Clock defaults
const (
	DefaultOffset           = "+05:30"
	DefaultZoneLabel        = "IST"
	DefaultRolloverInterval = time.Minute
)

const (
	DefaultRetentionDays = 7
	DefaultLocale        = "en-IN"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogFile       = "daytrack.log"
)

// Defaults returns every default keyed the way viper sees it.
func Defaults() map[string]any {
	return map[string]any{
		"data.backend":           DefaultBackend,
		"data.file":              DefaultDataFile,
		"data.dbFile":            DefaultDBFile,
		"data.format":            DefaultFormat,
		"data.verifyChecksum":    true,
		"clock.offset":           DefaultOffset,
		"clock.zoneLabel":        DefaultZoneLabel,
		"clock.rolloverInterval": DefaultRolloverInterval,
		"retention.days":         DefaultRetentionDays,
		"display.locale":         DefaultLocale,
		"log.level":              DefaultLogLevel,
		"log.format":             DefaultLogFormat,
		"log.path":               DefaultLogFile,
	}
}

// ApplyDefaults registers Defaults on v.
func ApplyDefaults(v *viper.Viper) {
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
}
