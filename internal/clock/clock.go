// Package clock derives the "current date" used to file tasks.
//
// The date is computed by shifting UTC wall-clock time by a fixed offset and
// truncating to the date. This approximates one timezone without any regional
// rules (no daylight saving), which is what the date buckets are keyed on.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/josephgoksu/daytrack/models"
)

// DefaultOffset is UTC+5:30 (Indian Standard Time).
const DefaultOffset = 5*time.Hour + 30*time.Minute

var hhmmOffset = regexp.MustCompile(`^([+-])?(\d{1,2}):(\d{2})$`)

// Clock produces offset-shifted date keys. Now is injectable for tests.
type Clock struct {
	Offset time.Duration
	Now    func() time.Time
}

// New returns a Clock reading the device wall clock.
func New(offset time.Duration) *Clock {
	return &Clock{Offset: offset, Now: time.Now}
}

// Shifted returns the current instant moved by the offset, expressed in UTC.
func (c *Clock) Shifted() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UTC().Add(c.Offset)
}

// Today returns the current date key.
func (c *Clock) Today() string {
	return c.Shifted().Format(models.DateLayout)
}

// DateOf returns the date key for t under this clock's offset.
func (c *Clock) DateOf(t time.Time) string {
	return t.UTC().Add(c.Offset).Format(models.DateLayout)
}

// ShiftDate moves a date key by whole days.
func ShiftDate(key string, days int) (string, error) {
	d, err := time.Parse(models.DateLayout, key)
	if err != nil {
		return "", fmt.Errorf("parse date key %q: %w", key, err)
	}
	return d.AddDate(0, 0, days).Format(models.DateLayout), nil
}

// ParseOffset accepts "+05:30", "-03:00", "5:30" or any Go duration string ("5h30m").
func ParseOffset(s string) (time.Duration, error) {
	if m := hhmmOffset.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins, _ := strconv.Atoi(m[3])
		if mins >= 60 {
			return 0, fmt.Errorf("invalid offset %q: minutes out of range", s)
		}
		d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute
		if m[1] == "-" {
			d = -d
		}
		return checkRange(s, d)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return checkRange(s, d)
}

func checkRange(s string, d time.Duration) (time.Duration, error) {
	if d < -14*time.Hour || d > 14*time.Hour {
		return 0, fmt.Errorf("invalid offset %q: must be within ±14h", s)
	}
	return d, nil
}

// FormatOffset renders an offset as "+HH:MM".
func FormatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d.Hours()), int(d.Minutes())%60)
}

// Rollover tracks the active date and reports when the offset-adjusted
// midnight has passed. The comparison always uses the latest stored value.
type Rollover struct {
	clock   *Clock
	current string
}

// NewRollover starts tracking from the clock's current date.
func NewRollover(c *Clock) *Rollover {
	return &Rollover{clock: c, current: c.Today()}
}

// Current returns the active date key.
func (r *Rollover) Current() string {
	return r.current
}

// Check recomputes today's key. It returns the new key and true when the date changed.
func (r *Rollover) Check() (string, bool) {
	today := r.clock.Today()
	if today == r.current {
		return r.current, false
	}
	r.current = today
	return today, true
}
