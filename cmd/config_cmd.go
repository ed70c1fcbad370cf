/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/daytrack/internal/config"
	"github.com/josephgoksu/daytrack/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	configInitForce  bool
	configInitGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create configuration",
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		settings := viper.AllSettings()
		if isJSON() {
			return printJSON(out, settings)
		}
		body, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = out.Write(body)
		return err
	},
}

type configPaths struct {
	ConfigFile string   `json:"configFile"`
	DataDir    string   `json:"dataDir"`
	DataFile   string   `json:"dataFile"`
	LogFile    string   `json:"logFile"`
	CrashLogs  []string `json:"crashLogs"`
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where config, tasks and logs live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := config.GetDataDir()
		paths := configPaths{
			ConfigFile: viper.ConfigFileUsed(),
			DataDir:    dataDir,
			DataFile:   storeOptions().Path(),
			LogFile:    config.ResolvePath(dataDir, GetConfig().Log.Path),
		}
		crashes, err := logger.ListCrashLogs()
		if err != nil {
			LogError("failed to list crash logs", err)
		}
		paths.CrashLogs = crashes

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, paths)
		}
		if isQuiet() {
			fmt.Fprintln(out, paths.DataFile)
			return nil
		}
		cfgFile := paths.ConfigFile
		if cfgFile == "" {
			cfgFile = "(none, using defaults)"
		}
		fmt.Fprintf(out, "config: %s\n", cfgFile)
		fmt.Fprintf(out, "data:   %s\n", paths.DataFile)
		fmt.Fprintf(out, "logs:   %s\n", paths.LogFile)
		for _, c := range paths.CrashLogs {
			fmt.Fprintf(out, "crash:  %s\n", c)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with every default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath()
		if configInitGlobal {
			p, err := globalConfigPath()
			if err != nil {
				return err
			}
			path = p
		}

		err := config.WriteDefaultConfig(path, configInitForce)
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write $HOME/.daytrack.yaml instead of ./.daytrack/.daytrack.yaml")
}
