package cmd

import (
	"fmt"

	"github.com/josephgoksu/daytrack/internal/ui"
	"github.com/josephgoksu/daytrack/models"
	"github.com/spf13/cobra"
)

var listDate string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks grouped by date",
	Long:    `List the tasks of the retention window grouped by date, newest first.`,
	Example: `  daytrack list
  daytrack list --date 2026-10-17
  daytrack list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, listDate)
	},
}

type listOutput struct {
	Today       string             `json:"today"`
	Count       int                `json:"count"`
	TasksByDate models.TasksByDate `json:"tasksByDate"`
}

func runList(cmd *cobra.Command, date string) error {
	b, st, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	out := cmd.OutOrStdout()
	if isJSON() {
		_, data := b.Snapshot()
		if date != "" {
			filtered := models.TasksByDate{}
			if tasks, ok := data[date]; ok {
				filtered[date] = tasks
			}
			data = filtered
		}
		return printJSON(out, listOutput{Today: b.Today(), Count: data.Count(), TasksByDate: data})
	}

	cfg := GetConfig()
	ui.RenderBoard(out, b, ui.ListOptions{
		Date:      date,
		ZoneLabel: cfg.Clock.ZoneLabel,
		Locale:    cfg.Display.Locale,
	})
	if isVerbose() {
		fmt.Fprintf(out, "data: %s\n", storeOptions().Path())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDate, "date", "", "only show this date (YYYY-MM-DD)")
}
