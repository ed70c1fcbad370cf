package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// DateLayout is the layout of date bucket keys ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Task is a single to-do entry. It belongs to the date bucket it was created under.
type Task struct {
	ID        int64  `json:"id" yaml:"id" toml:"id" validate:"required,gt=0"`
	Text      string `json:"text" yaml:"text" toml:"text" validate:"notblank"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
	Time      string `json:"time" yaml:"time" toml:"time"` // "HH:MM" or empty, not validated
	Important bool   `json:"important" yaml:"important" toml:"important"`
}

// TasksByDate maps a date key to the tasks filed under it, in insertion order.
type TasksByDate map[string][]Task

// SortedDates returns the date keys newest first. Keys are ISO dates, so
// reverse lexical order is reverse chronological order.
func (m TasksByDate) SortedDates() []string {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	slices.Reverse(dates)
	return dates
}

// Find locates a task by id across all buckets.
func (m TasksByDate) Find(id int64) (date string, index int, ok bool) {
	for d, tasks := range m {
		for i, t := range tasks {
			if t.ID == id {
				return d, i, true
			}
		}
	}
	return "", -1, false
}

// IndexOf returns the position of id inside the bucket for date, or -1.
func (m TasksByDate) IndexOf(date string, id int64) int {
	for i, t := range m[date] {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest task id in the map, or 0 when empty.
func (m TasksByDate) MaxID() int64 {
	var maxID int64
	for _, tasks := range m {
		for _, t := range tasks {
			if t.ID > maxID {
				maxID = t.ID
			}
		}
	}
	return maxID
}

// Count returns the number of tasks across all buckets.
func (m TasksByDate) Count() int {
	n := 0
	for _, tasks := range m {
		n += len(tasks)
	}
	return n
}

// Clone returns a deep copy. Tasks are plain values, so copying the slices is enough.
func (m TasksByDate) Clone() TasksByDate {
	out := make(TasksByDate, len(m))
	for d, tasks := range m {
		out[d] = slices.Clone(tasks)
	}
	return out
}

// Prune removes every bucket whose key sorts before cutoff and returns the
// removed keys in ascending order.
func (m TasksByDate) Prune(cutoff string) []string {
	var removed []string
	for d := range m {
		if d < cutoff {
			removed = append(removed, d)
		}
	}
	slices.Sort(removed)
	for _, d := range removed {
		delete(m, d)
	}
	return removed
}

// Compact drops empty buckets.
func (m TasksByDate) Compact() {
	for d, tasks := range m {
		if len(tasks) == 0 {
			delete(m, d)
		}
	}
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = newValidator()
}

// newValidator returns a validator with the non-standard tags the models use.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validator: %v", err))
	}
	return v
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = newValidator()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// Validate checks every task in every bucket and that every key is a date key.
func (m TasksByDate) Validate() error {
	for d, tasks := range m {
		if err := validate.Var(d, "datetime="+DateLayout); err != nil {
			return fmt.Errorf("invalid date key %q", d)
		}
		for _, t := range tasks {
			if err := ValidateStruct(t); err != nil {
				return fmt.Errorf("date %s, task %d: %w", d, t.ID, err)
			}
		}
	}
	return nil
}

// IsBlank reports whether text is empty after trimming whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
