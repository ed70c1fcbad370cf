package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/daytrack/internal/board"
	"github.com/spf13/cobra"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop days older than the retention window and save",
	Long: `Loading already hides days older than retention.days; prune also writes
the trimmed list back so the data file stops carrying them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, st, err := openBoard(ctx, board.WithoutLoadPrune())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		removed, err := b.Prune()
		if err != nil {
			return err
		}
		if err := b.Save(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			if removed == nil {
				removed = []string{}
			}
			return printJSON(out, map[string]any{"removed": removed, "retentionDays": GetConfig().Retention.Days})
		}
		if isQuiet() {
			return nil
		}
		if len(removed) == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
			return nil
		}
		fmt.Fprintf(out, "🧹 Removed %d day(s): %s\n", len(removed), strings.Join(removed, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
