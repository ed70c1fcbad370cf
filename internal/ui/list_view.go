package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/models"
)

// ListOptions controls RenderBoard.
type ListOptions struct {
	// Date limits output to one bucket when set.
	Date      string
	ZoneLabel string
	Locale    string
}

// RenderBoard prints the board grouped by date, newest first, for non-interactive output.
func RenderBoard(w io.Writer, b *board.Board, opts ListOptions) {
	dates := b.Dates()
	if opts.Date != "" {
		dates = nil
		if len(b.Tasks(opts.Date)) > 0 {
			dates = []string{opts.Date}
		}
	}

	p := NewPrinter(opts.Locale)
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf(" 📅 %s · %s", CountTasks(p, b.Count()), DateHeader(b.Today(), b.Today()))))
	fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("─", 50)))

	if len(dates) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No tasks yet. Add some!"))
		return
	}

	for _, d := range dates {
		tasks := b.Tasks(d)
		fmt.Fprintln(w, StyleHeader.Render(DateHeader(d, b.Today())))
		table := &Table{
			Headers:  []string{"ID", "✓", "!", "Task", "Time"},
			Rows:     taskRows(tasks, opts.ZoneLabel),
			MaxWidth: 60,
		}
		fmt.Fprint(w, table.Render())
		fmt.Fprintln(w)
	}
}

func taskRows(tasks []models.Task, zoneLabel string) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done, important := " ", " "
		if t.Completed {
			done = "✓"
		}
		if t.Important {
			important = "★"
		}
		when := FormatTime12(t.Time)
		if t.Time != "" && zoneLabel != "" {
			when += " " + zoneLabel
		}
		rows = append(rows, []string{strconv.FormatInt(t.ID, 10), done, important, t.Text, when})
	}
	return rows
}
