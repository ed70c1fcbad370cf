/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/josephgoksu/daytrack/internal/config"
	"github.com/josephgoksu/daytrack/internal/logger"
	"github.com/josephgoksu/daytrack/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.3.0"
	// logCloser releases the log file opened for this run.
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daytrack",
	Short: "daytrack - daily to-do list with study timers",
	Long: `daytrack keeps a to-do list per day, with a stopwatch on every task.

Tasks are filed under the day they were added on, computed from a fixed
UTC offset (IST, +05:30, by default). The last 7 days are kept; older
days are dropped when the list is loaded.

Run without a subcommand to open the interactive board, or pipe the
output to get a plain listing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if ui.IsInteractive() && !isJSON() {
			return runUI(cmd)
		}
		return runList(cmd, "")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(rootCmd.OutOrStdout(), err)
		os.Exit(1)
	}
}

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// setupRuntime points logging and crash reports at the data directory.
func setupRuntime(cmd *cobra.Command) error {
	cfg := GetConfig()
	dataDir := config.GetDataDir()

	logger.SetBasePath(dataDir)
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())

	_, closer, err := logger.Setup(logger.Options{
		Path:    config.ResolvePath(dataDir, cfg.Log.Path),
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.daytrack/.daytrack.yaml or $HOME/.daytrack.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only print essential output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}
