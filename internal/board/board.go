// Package board holds the to-do session: date-bucketed tasks, their
// stopwatches, the active date and the single inline edit.
//
// Board methods mutate memory only. Every mutation bumps a generation; callers
// persist with Save, or take a Snapshot and hand it to the Writer from another
// goroutine. Board itself is not safe for concurrent use.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/internal/timer"
	"github.com/josephgoksu/daytrack/models"
	"github.com/josephgoksu/daytrack/store"
)

// DefaultRetentionDays is how many days of buckets survive a load.
const DefaultRetentionDays = 7

// NewTask is the input row for Add.
type NewTask struct {
	Text      string
	Time      string
	Important bool
}

// EditSession is the scratch state of an inline edit.
type EditSession struct {
	Date string
	ID   int64
	Text string
}

// Option configures a Board.
type Option func(*Board)

// WithRetentionDays sets the load-time retention window. Zero keeps everything.
func WithRetentionDays(days int) Option {
	return func(b *Board) { b.retentionDays = days }
}

// WithoutLoadPrune keeps expired buckets in memory after Open so an explicit
// Prune can report and persist them.
func WithoutLoadPrune() Option {
	return func(b *Board) { b.skipLoadPrune = true }
}

// WithIDSource replaces the millisecond clock used for new task ids.
func WithIDSource(next func() int64) Option {
	return func(b *Board) { b.nextID = next }
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// Board is the session view-model.
type Board struct {
	clock         *clock.Clock
	rollover      *clock.Rollover
	writer        *Writer
	tasks         models.TasksByDate
	timers        *timer.Set
	edit          *EditSession
	retentionDays int
	skipLoadPrune bool
	nextID        func() int64
	gen           uint64
	log           *slog.Logger
}

// Open loads the store, drops buckets outside the retention window and starts
// the session on the clock's current date.
func Open(ctx context.Context, st store.Store, clk *clock.Clock, opts ...Option) (*Board, error) {
	b := &Board{
		clock:         clk,
		writer:        NewWriter(st),
		timers:        timer.NewSet(),
		retentionDays: DefaultRetentionDays,
		nextID:        func() int64 { return time.Now().UnixMilli() },
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	data, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if err := data.Validate(); err != nil {
		b.log.Warn("stored tasks failed validation", "error", err)
	}
	data.Compact()
	b.tasks = data
	b.rollover = clock.NewRollover(clk)

	if b.skipLoadPrune {
		return b, nil
	}
	removed, err := b.prune()
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		b.log.Info("pruned expired date buckets", "dates", removed, "retention_days", b.retentionDays)
	}
	return b, nil
}

// prune drops buckets older than today minus the retention window.
func (b *Board) prune() ([]string, error) {
	if b.retentionDays <= 0 {
		return nil, nil
	}
	cutoff, err := clock.ShiftDate(b.clock.Today(), -b.retentionDays)
	if err != nil {
		return nil, err
	}
	removed := b.tasks.Prune(cutoff)
	for _, d := range removed {
		b.log.Debug("bucket expired", "date", d, "cutoff", cutoff)
	}
	return removed, nil
}

// Prune applies the retention window now and returns the removed dates.
func (b *Board) Prune() ([]string, error) {
	removed, err := b.prune()
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		b.touch("prune", "dates", removed)
	}
	return removed, nil
}

func (b *Board) touch(op string, args ...any) {
	b.gen++
	b.log.Debug("board "+op, append(args, "generation", b.gen)...)
}

// Today returns the session's active date key.
func (b *Board) Today() string {
	return b.rollover.Current()
}

// CheckRollover refreshes the active date and reports whether it changed.
func (b *Board) CheckRollover() (string, bool) {
	date, changed := b.rollover.Check()
	if changed {
		b.log.Info("date rolled over", "date", date)
	}
	return date, changed
}

// SetOffset changes the clock offset. The active date follows on the next rollover check.
func (b *Board) SetOffset(d time.Duration) {
	b.clock.Offset = d
}

// Offset returns the clock offset in use.
func (b *Board) Offset() time.Duration {
	return b.clock.Offset
}

// Add files a new task under the active date. Blank text leaves the board unchanged.
func (b *Board) Add(in NewTask) (models.Task, error) {
	if models.IsBlank(in.Text) {
		return models.Task{}, ErrBlankText
	}

	id := b.nextID()
	if maxID := b.tasks.MaxID(); id <= maxID {
		id = maxID + 1
	}
	task := models.Task{
		ID:        id,
		Text:      in.Text,
		Time:      in.Time,
		Important: in.Important,
	}
	date := b.Today()
	b.tasks[date] = append(b.tasks[date], task)
	b.touch("add", "date", date, "id", id)
	return task, nil
}

func (b *Board) lookup(date string, id int64) (int, error) {
	i := b.tasks.IndexOf(date, id)
	if i < 0 {
		return -1, fmt.Errorf("%w: id %d on %s", ErrTaskNotFound, id, date)
	}
	return i, nil
}

// Toggle flips the completed flag of the task identified by (date, id).
func (b *Board) Toggle(date string, id int64) (models.Task, error) {
	i, err := b.lookup(date, id)
	if err != nil {
		return models.Task{}, err
	}
	b.tasks[date][i].Completed = !b.tasks[date][i].Completed
	b.touch("toggle", "date", date, "id", id, "completed", b.tasks[date][i].Completed)
	return b.tasks[date][i], nil
}

// Delete removes the task and its timer. An emptied bucket is removed.
func (b *Board) Delete(date string, id int64) error {
	i, err := b.lookup(date, id)
	if err != nil {
		return err
	}
	b.tasks[date] = slices.Delete(b.tasks[date], i, i+1)
	if len(b.tasks[date]) == 0 {
		delete(b.tasks, date)
	}
	b.timers.Remove(id)
	if b.edit != nil && b.edit.ID == id {
		b.edit = nil
	}
	b.touch("delete", "date", date, "id", id)
	return nil
}

// BeginEdit copies the task text into the edit scratch field. Any other
// unsaved edit is discarded.
func (b *Board) BeginEdit(date string, id int64) (EditSession, error) {
	i, err := b.lookup(date, id)
	if err != nil {
		return EditSession{}, err
	}
	t := b.tasks[date][i]
	if t.Completed {
		return EditSession{}, ErrTaskCompleted
	}
	b.edit = &EditSession{Date: date, ID: id, Text: t.Text}
	return *b.edit, nil
}

// SetEditText replaces the scratch text of the active edit.
func (b *Board) SetEditText(text string) error {
	if b.edit == nil {
		return ErrNoEdit
	}
	b.edit.Text = text
	return nil
}

// Editing returns the active edit, if any.
func (b *Board) Editing() (EditSession, bool) {
	if b.edit == nil {
		return EditSession{}, false
	}
	return *b.edit, true
}

// CommitEdit ends the edit and writes the scratch text back when it is not
// blank. It reports whether the task changed.
func (b *Board) CommitEdit() (bool, error) {
	if b.edit == nil {
		return false, ErrNoEdit
	}
	e := *b.edit
	b.edit = nil

	if models.IsBlank(e.Text) {
		b.log.Debug("blank edit discarded", "date", e.Date, "id", e.ID)
		return false, nil
	}
	i, err := b.lookup(e.Date, e.ID)
	if err != nil {
		return false, err
	}
	b.tasks[e.Date][i].Text = e.Text
	b.touch("edit", "date", e.Date, "id", e.ID)
	return true, nil
}

// CancelEdit ends the edit without saving.
func (b *Board) CancelEdit() {
	b.edit = nil
}

// UpdateText is BeginEdit, SetEditText and CommitEdit in one call.
func (b *Board) UpdateText(date string, id int64, text string) (bool, error) {
	if _, err := b.BeginEdit(date, id); err != nil {
		return false, err
	}
	_ = b.SetEditText(text)
	return b.CommitEdit()
}

func (b *Board) requireTask(id int64) error {
	if _, _, ok := b.tasks.Find(id); !ok {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	return nil
}

// StartTimer starts or resumes the stopwatch for a task.
func (b *Board) StartTimer(id int64) error {
	if err := b.requireTask(id); err != nil {
		return err
	}
	b.timers.Start(id)
	return nil
}

// PauseTimer freezes the stopwatch for a task.
func (b *Board) PauseTimer(id int64) error {
	if err := b.requireTask(id); err != nil {
		return err
	}
	b.timers.Pause(id)
	return nil
}

// ToggleTimer starts a stopped or paused stopwatch and pauses a running one.
func (b *Board) ToggleTimer(id int64) (bool, error) {
	if err := b.requireTask(id); err != nil {
		return false, err
	}
	return b.timers.Toggle(id), nil
}

// StopTimer discards the stopwatch for a task.
func (b *Board) StopTimer(id int64) {
	b.timers.Stop(id)
}

// Tick advances every running stopwatch by one second.
func (b *Board) Tick() int {
	return b.timers.Tick()
}

// Timer returns the stopwatch state for a task.
func (b *Board) Timer(id int64) (timer.State, bool) {
	return b.timers.Get(id)
}

// AnyRunning reports whether any stopwatch is running.
func (b *Board) AnyRunning() bool {
	return b.timers.AnyRunning()
}

// TotalFor sums elapsed seconds over the tasks currently filed under date.
func (b *Board) TotalFor(date string) int64 {
	tasks := b.tasks[date]
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return b.timers.Sum(ids)
}

// Dates returns the date keys newest first.
func (b *Board) Dates() []string {
	return b.tasks.SortedDates()
}

// Tasks returns a copy of the bucket for date.
func (b *Board) Tasks(date string) []models.Task {
	return slices.Clone(b.tasks[date])
}

// Task returns the task identified by (date, id).
func (b *Board) Task(date string, id int64) (models.Task, bool) {
	i := b.tasks.IndexOf(date, id)
	if i < 0 {
		return models.Task{}, false
	}
	return b.tasks[date][i], true
}

// Find locates a task by id alone.
func (b *Board) Find(id int64) (string, models.Task, bool) {
	date, i, ok := b.tasks.Find(id)
	if !ok {
		return "", models.Task{}, false
	}
	return date, b.tasks[date][i], true
}

// Count returns the number of tasks on the board.
func (b *Board) Count() int {
	return b.tasks.Count()
}

// Generation returns the mutation counter.
func (b *Board) Generation() uint64 {
	return b.gen
}

// Snapshot returns the current generation and a deep copy of the tasks.
func (b *Board) Snapshot() (uint64, models.TasksByDate) {
	return b.gen, b.tasks.Clone()
}

// Writer returns the generation-ordered writer for asynchronous saves.
func (b *Board) Writer() *Writer {
	return b.writer
}

// Dirty reports whether there are mutations not yet persisted.
func (b *Board) Dirty() bool {
	return b.gen > b.writer.Written()
}

// Save persists the current state if it changed since the last write.
func (b *Board) Save(ctx context.Context) error {
	gen, data := b.Snapshot()
	if _, err := b.writer.Write(ctx, gen, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
