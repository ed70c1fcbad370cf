package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteDate string
	deleteYes  bool
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a task",
	Long:    `Delete a task. Without an id, an interactive list is shown.`,
	Example: `  daytrack delete
  daytrack delete 1760758200000 --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, st, err := openBoard(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ref, err := resolveTask(b, argOrEmpty(args, 0), deleteDate, nil, "Select task to delete")
		if err != nil {
			return err
		}

		if !deleteYes && !confirmOrAbort(fmt.Sprintf("Delete '%s'", ref.Task.Text)) {
			return nil
		}

		if err := b.Delete(ref.Date, ref.Task.ID); err != nil {
			return err
		}
		if err := b.Save(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, map[string]any{"deleted": ref})
		}
		if !isQuiet() {
			fmt.Fprintf(out, "🗑️  Deleted '%s' (ID: %d).\n", ref.Task.Text, ref.Task.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVar(&deleteDate, "date", "", "date bucket of the task (YYYY-MM-DD)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
