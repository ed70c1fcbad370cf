package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LongDateLayout renders a date key the way the header shows it.
const LongDateLayout = "Monday, 2 January 2006"

// NoTimeSet is shown for tasks without a scheduled time.
const NoTimeSet = "No time set"

// SplitElapsed returns zero padded hours, minutes and seconds.
func SplitElapsed(sec int64) (hours, minutes, seconds string) {
	if sec < 0 {
		sec = 0
	}
	pad := func(n int64) string { return fmt.Sprintf("%02d", n) }
	return pad(sec / 3600), pad(sec % 3600 / 60), pad(sec % 60)
}

// FormatElapsed renders a stopwatch value as HH:MM:SS.
func FormatElapsed(sec int64) string {
	h, m, s := SplitElapsed(sec)
	return h + ":" + m + ":" + s
}

// FormatTotal renders a per-date aggregate as "1h 5m" or "5m".
func FormatTotal(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	h, m := sec/3600, sec%3600/60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatTime12 converts "HH:MM" to "h:MM AM". Empty input is NoTimeSet and
// anything unparseable comes back unchanged.
func FormatTime12(hhmm string) string {
	if hhmm == "" {
		return NoTimeSet
	}
	hs, ms, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err1 := strconv.Atoi(hs)
	minute, err2 := strconv.Atoi(ms)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return hhmm
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// LongDate renders a date key as "Sunday, 18 October 2026".
func LongDate(key string) string {
	t, err := time.Parse(models.DateLayout, key)
	if err != nil {
		return key
	}
	return t.Format(LongDateLayout)
}

// DateHeader prefixes the long date with Today or Yesterday relative to today.
func DateHeader(key, today string) string {
	long := LongDate(key)
	if key == today {
		return "Today - " + long
	}
	if yesterday, err := clock.ShiftDate(today, -1); err == nil && key == yesterday {
		return "Yesterday - " + long
	}
	return long
}

// NewPrinter returns a message printer for a BCP 47 locale, falling back to English.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Progress renders "2 of 5 done" with locale-aware numbers.
func Progress(p *message.Printer, done, total int) string {
	return p.Sprintf("%d of %d done", done, total)
}

// CountTasks renders "1 task" or "1,234 tasks".
func CountTasks(p *message.Printer, n int) string {
	if n == 1 {
		return p.Sprintf("%d task", n)
	}
	return p.Sprintf("%d tasks", n)
}
