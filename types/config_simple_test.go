package types

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validConfig() AppConfig {
	return AppConfig{
		Data: DataConfig{
			Backend:        "file",
			File:           "tasks.json",
			Format:         "json",
			VerifyChecksum: true,
		},
		Clock: ClockConfig{
			Offset:           "+05:30",
			ZoneLabel:        "IST",
			RolloverInterval: time.Minute,
		},
		Retention: RetentionConfig{Days: 7},
		Display:   DisplayConfig{Locale: "en-IN"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func TestAppConfig_Validation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "yaml format", mutate: func(c *AppConfig) { c.Data.Format = "yaml" }},
		{name: "unknown format", mutate: func(c *AppConfig) { c.Data.Format = "xml" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *AppConfig) { c.Data.Backend = "redis" }, wantErr: true},
		{name: "sqlite needs db file", mutate: func(c *AppConfig) { c.Data.Backend = "sqlite" }, wantErr: true},
		{name: "sqlite with db file", mutate: func(c *AppConfig) {
			c.Data.Backend = "sqlite"
			c.Data.DBFile = "daytrack.db"
		}},
		{name: "missing offset", mutate: func(c *AppConfig) { c.Clock.Offset = "" }, wantErr: true},
		{name: "rollover too fast", mutate: func(c *AppConfig) { c.Clock.RolloverInterval = time.Millisecond }, wantErr: true},
		{name: "negative retention", mutate: func(c *AppConfig) { c.Retention.Days = -1 }, wantErr: true},
		{name: "retention disabled", mutate: func(c *AppConfig) { c.Retention.Days = 0 }},
		{name: "bad locale", mutate: func(c *AppConfig) { c.Display.Locale = "not a locale" }, wantErr: true},
		{name: "bad log level", mutate: func(c *AppConfig) { c.Log.Level = "trace" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := v.Struct(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	err := NewErrorResponse(CodeNotFound, "task not found", map[string]interface{}{"id": 42})
	assert.Equal(t, "NOT_FOUND: task not found", err.Error())
	assert.Equal(t, 42, err.Details["id"])
}
