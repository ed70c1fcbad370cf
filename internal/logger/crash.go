// Package logger sets up structured logging and panic recovery for daytrack.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the crash report directory inside the data directory
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash reports kept
	MaxCrashLogs = 10

	crashPrefix = "crash_"
	crashSuffix = ".log"
)

// crashState is what gets written next to the stack trace.
type crashState struct {
	mu         sync.RWMutex
	basePath   string
	version    string
	command    string
	lastAction string
	summary    string
}

var crash = &crashState{}

// SetBasePath sets the data directory crash reports are written under.
func SetBasePath(path string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.basePath = path
}

// SetVersion records the build version.
func SetVersion(version string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.version = version
}

// SetCommand records the command line being executed.
func SetCommand(cmd string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.command = cmd
}

// SetLastAction records the last user action, e.g. a TUI key or a CLI operation.
func SetLastAction(action string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.lastAction = truncate(strings.TrimSpace(action), 200)
}

// SetSummary records a short description of the session state,
// such as task and running timer counts.
func SetSummary(summary string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.summary = truncate(summary, 500)
}

func truncate(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashReport is the content of one crash file.
type CrashReport struct {
	Timestamp  time.Time `json:"timestamp"`
	Session    string    `json:"session"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	Panic      string    `json:"panic"`
	Stack      string    `json:"stack"`
	LastAction string    `json:"last_action,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	GoVersion  string    `json:"go_version"`
	Platform   string    `json:"platform"`
}

// HandlePanic recovers a panic, writes a crash report and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	report := newCrashReport(r)
	path, err := writeCrashReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, report.Stack)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "╭──────────────────────────────────────────────╮")
	fmt.Fprintln(os.Stderr, "│ daytrack stopped because of an internal error │")
	fmt.Fprintln(os.Stderr, "╰──────────────────────────────────────────────╯")
	if path != "" {
		fmt.Fprintf(os.Stderr, "\nDetails were saved to:\n  %s\n", path)
	}
	fmt.Fprintln(os.Stderr, "\nYour tasks on disk are untouched; unsaved edits and running timers are lost.")
	os.Exit(1)
}

func newCrashReport(panicValue any) CrashReport {
	crash.mu.RLock()
	defer crash.mu.RUnlock()

	return CrashReport{
		Timestamp:  time.Now(),
		Session:    SessionID(),
		Version:    crash.version,
		Command:    crash.command,
		Panic:      fmt.Sprintf("%v", panicValue),
		Stack:      string(debug.Stack()),
		LastAction: crash.lastAction,
		Summary:    crash.summary,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// writeCrashReport rotates old reports and writes the new one. It returns the written path.
func writeCrashReport(report CrashReport) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	// leave room for the report about to be written
	if err := rotateCrashReports(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := crashPath(report.Timestamp)
	if err := os.WriteFile(path, []byte(report.String()), 0644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashDir() string {
	crash.mu.RLock()
	base := crash.basePath
	crash.mu.RUnlock()

	if base == "" {
		base = ".daytrack"
	}
	return filepath.Join(base, CrashLogDir)
}

func crashPath(t time.Time) string {
	return filepath.Join(crashDir(), crashPrefix+t.Format("20060102_150405")+crashSuffix)
}

// String renders the report as plain text.
func (r CrashReport) String() string {
	var sb strings.Builder
	rule := strings.Repeat("-", 72)

	section := func(title, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(&sb, "\n%s\n%s\n%s\n%s\n", rule, title, rule, strings.TrimRight(body, "\n"))
	}

	sb.WriteString("DAYTRACK CRASH REPORT\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Session:   %s\n", r.Session)
	fmt.Fprintf(&sb, "Version:   %s\n", r.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", r.Command)
	fmt.Fprintf(&sb, "Go:        %s (%s)\n", r.GoVersion, r.Platform)

	section("PANIC", r.Panic)
	section("LAST ACTION", r.LastAction)
	section("SESSION STATE", r.Summary)
	section("STACK", r.Stack)
	return sb.String()
}

func isCrashFile(name string) bool {
	return strings.HasPrefix(name, crashPrefix) && strings.HasSuffix(name, crashSuffix)
}

// rotateCrashReports deletes the oldest reports until at most keep remain.
func rotateCrashReports(dir string, keep int) error {
	names, err := listCrashFiles(dir)
	if err != nil || len(names) <= keep {
		return err
	}
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", name, err)
		}
	}
	return nil
}

// listCrashFiles returns report names oldest first. The timestamp in the name sorts chronologically.
func listCrashFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isCrashFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// ListCrashLogs returns the paths of all crash reports, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := crashDir()
	names, err := listCrashFiles(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}
