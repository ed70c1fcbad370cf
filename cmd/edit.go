package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editDate string

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task_id> <text...>",
	Short: "Replace the text of a task",
	Long: `Replace the text of a task that is not completed.
Blank text leaves the task unchanged.`,
	Example: `  daytrack edit 1760758200000 Write the final report`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, st, err := openBoard(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ref, err := resolveTask(b, args[0], editDate, nil, "")
		if err != nil {
			return err
		}

		changed, err := b.UpdateText(ref.Date, ref.Task.ID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if changed {
			if err := b.Save(ctx); err != nil {
				return err
			}
		}

		task, _ := b.Task(ref.Date, ref.Task.ID)
		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, struct {
				taskRef
				Changed bool `json:"changed"`
			}{taskRef{Date: ref.Date, Task: task}, changed})
		}
		if isQuiet() {
			return nil
		}
		if !changed {
			fmt.Fprintln(out, "Text was blank; task left unchanged.")
			return nil
		}
		fmt.Fprintf(out, "✏️  Task %d is now '%s'.\n", task.ID, task.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editDate, "date", "", "date bucket of the task (YYYY-MM-DD)")
}
