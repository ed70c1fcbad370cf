package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Options configures Setup.
type Options struct {
	// Path is the log file. Empty discards logs unless Verbose is set.
	Path    string
	Level   string
	Format  string
	Verbose bool
	// Stderr receives logs when Verbose is set.
	Stderr io.Writer
}

var (
	sessionOnce sync.Once
	sessionID   string
)

// SessionID identifies this process in logs and crash reports.
func SessionID() string {
	sessionOnce.Do(func() {
		sessionID = uuid.NewString()
	})
	return sessionID
}

// ParseLevel maps a config level name onto slog. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs the default slog logger. The returned closer releases the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		if opts.Path == "" {
			out = stderr
		} else {
			out = io.MultiWriter(out, stderr)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	l := slog.New(handler).With("session", SessionID())
	slog.SetDefault(l)
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
