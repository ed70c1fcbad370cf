package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/internal/config"
	"github.com/josephgoksu/daytrack/internal/ui"
	"github.com/josephgoksu/daytrack/models"
	"github.com/josephgoksu/daytrack/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// storeOptions describes the configured backend in the resolved data directory.
func storeOptions() store.Options {
	cfg := GetConfig()
	return store.Options{
		Backend:        cfg.Data.Backend,
		Dir:            config.GetDataDir(),
		File:           cfg.Data.File,
		DBFile:         cfg.Data.DBFile,
		Format:         cfg.Data.Format,
		VerifyChecksum: cfg.Data.VerifyChecksum,
	}
}

// openBoard opens the configured store and loads the board from it.
// The caller closes the returned store.
func openBoard(ctx context.Context, extra ...board.Option) (*board.Board, store.Store, error) {
	cfg := GetConfig()
	opts := storeOptions()

	st, err := store.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open store at %s: %w", opts.Path(), err)
	}

	offset, err := clock.ParseOffset(cfg.Clock.Offset)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	boardOpts := append([]board.Option{
		board.WithRetentionDays(cfg.Retention.Days),
		board.WithLogger(slog.Default()),
	}, extra...)
	b, err := board.Open(ctx, st, clock.New(offset), boardOpts...)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	slog.Debug("loaded tasks", "count", b.Count(), "path", opts.Path())
	return b, st, nil
}

// taskRef is a task together with the date bucket it lives in.
type taskRef struct {
	Date string      `json:"date"`
	Task models.Task `json:"task"`
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// resolveTask finds a task by id, narrowed to date when set. Without an id it
// prompts for one when attached to a terminal.
func resolveTask(b *board.Board, idArg, date string, filter func(taskRef) bool, label string) (taskRef, error) {
	if idArg == "" {
		if !ui.IsInteractive() || isJSON() {
			return taskRef{}, ErrIDRequired
		}
		return selectTaskInteractive(b, date, filter, label)
	}

	id, err := parseID(idArg)
	if err != nil {
		return taskRef{}, err
	}
	if date != "" {
		t, ok := b.Task(date, id)
		if !ok {
			return taskRef{}, fmt.Errorf("%w: id %d on %s", board.ErrTaskNotFound, id, date)
		}
		return taskRef{Date: date, Task: t}, nil
	}
	d, t, ok := b.Find(id)
	if !ok {
		return taskRef{}, fmt.Errorf("%w: id %d", board.ErrTaskNotFound, id)
	}
	return taskRef{Date: d, Task: t}, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
func selectTaskInteractive(b *board.Board, date string, filter func(taskRef) bool, label string) (taskRef, error) {
	var items []taskRef
	for _, d := range b.Dates() {
		if date != "" && d != date {
			continue
		}
		for _, t := range b.Tasks(d) {
			ref := taskRef{Date: d, Task: t}
			if filter == nil || filter(ref) {
				items = append(items, ref)
			}
		}
	}
	if len(items) == 0 {
		return taskRef{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Task.Text | cyan }} ({{ .Date }}, ID: {{ .Task.ID }})`,
		Inactive: `  {{ .Task.Text | faint }} ({{ .Date }}, ID: {{ .Task.ID }})`,
		Selected: `{{ "✔" | green }} {{ .Task.Text | faint }} (ID: {{ .Task.ID }})`,
		Details: `
--------- Task Details ----------
{{ "Date:\t" | faint }} {{ .Date }}
{{ "Time:\t" | faint }} {{ .Task.Time }}
{{ "Done:\t" | faint }} {{ .Task.Completed }}
{{ "Important:\t" | faint }} {{ .Task.Important }}`,
	}

	searcher := func(input string, index int) bool {
		item := items[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(item.Task.Text), input) ||
			strings.Contains(strconv.FormatInt(item.Task.ID, 10), input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return taskRef{}, err
	}
	return items[i], nil
}

// confirmOrAbort asks a yes/no question. Non-interactive runs and --json count as yes.
func confirmOrAbort(label string) bool {
	if isJSON() || !ui.IsInteractive() {
		return true
	}
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		fmt.Println("Cancelled.")
		return false
	}
	return true
}
