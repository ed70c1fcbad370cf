package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/josephgoksu/daytrack/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addTime      string
	addImportant bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <text...>",
	Aliases: []string{"a", "new"},
	Short:   "Add a task to today's list",
	Long:    `Add a task under today's date. Today is computed from the configured clock offset, not the machine's time zone.`,
	Example: `  daytrack add Write report
  daytrack add "Revise chapter 3" --time 18:30 --important`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, st, err := openBoard(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		task, err := b.Add(board.NewTask{
			Text:      strings.Join(args, " "),
			Time:      strings.TrimSpace(addTime),
			Important: addImportant,
		})
		if err != nil {
			return err
		}
		if err := b.Save(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, taskRef{Date: b.Today(), Task: task})
		}
		if isQuiet() {
			fmt.Fprintln(out, task.ID)
			return nil
		}
		fmt.Fprintf(out, "✅ Added '%s' (ID: %d) to %s\n", task.Text, task.ID, ui.DateHeader(b.Today(), b.Today()))
		if task.Time != "" {
			fmt.Fprintf(out, "   ⏰ %s %s\n", ui.FormatTime12(task.Time), GetConfig().Clock.ZoneLabel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTime, "time", "t", "", "scheduled time as HH:MM")
	addCmd.Flags().BoolVarP(&addImportant, "important", "i", false, "mark the task as important")
}
