package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// uiCmd represents the ui command
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long: `Open the interactive board: add tasks, tick them off and run a
stopwatch per task. Timers live for the session only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd)
	},
}

func runUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	b, st, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	cfg := GetConfig()
	m := ui.NewBoardModel(ctx, b, ui.BoardOptions{
		ZoneLabel:        cfg.Clock.ZoneLabel,
		RolloverInterval: cfg.Clock.RolloverInterval,
		Locale:           cfg.Display.Locale,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	watchConfig(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	// flush anything a pending asynchronous save did not cover
	return b.Save(ctx)
}

// watchConfig pushes clock settings into the running program when the config file changes.
func watchConfig(p *tea.Program) {
	if viper.ConfigFileUsed() == "" {
		LogError("no config file in use; live reload disabled", nil)
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config file changed", "file", e.Name, "op", e.Op.String())
		offset, err := clock.ParseOffset(viper.GetString("clock.offset"))
		if err != nil {
			slog.Warn("ignoring invalid clock.offset", "error", err)
			return
		}
		p.Send(ui.ConfigChangedMsg{
			Offset:    offset,
			ZoneLabel: viper.GetString("clock.zoneLabel"),
		})
	})
	viper.WatchConfig()
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
