package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneDate string

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"toggle", "complete"},
	Short:   "Toggle a task between done and not done",
	Long:    `Toggle the completed flag of a task. Without an id, an interactive list is shown.`,
	Example: `  # Interactive mode
  daytrack done

  # Toggle a specific task
  daytrack done 1760758200000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, st, err := openBoard(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ref, err := resolveTask(b, argOrEmpty(args, 0), doneDate, nil, "Select task to toggle")
		if err != nil {
			return err
		}

		task, err := b.Toggle(ref.Date, ref.Task.ID)
		if err != nil {
			return err
		}
		if err := b.Save(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, taskRef{Date: ref.Date, Task: task})
		}
		if isQuiet() {
			return nil
		}
		if task.Completed {
			fmt.Fprintf(out, "🎉 '%s' (ID: %d) marked as done.\n", task.Text, task.ID)
		} else {
			fmt.Fprintf(out, "↩️  '%s' (ID: %d) marked as not done.\n", task.Text, task.ID)
		}
		return nil
	},
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().StringVar(&doneDate, "date", "", "date bucket of the task (YYYY-MM-DD)")
}
