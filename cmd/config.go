package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/daytrack/internal/clock"
	"github.com/josephgoksu/daytrack/internal/config"
	"github.com/josephgoksu/daytrack/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "." + config.AppName
	envPrefix  = "DAYTRACK"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig checks struct tags and that the clock offset parses.
func validateAppConfig(cfg *types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if _, err := clock.ParseOffset(cfg.Clock.Offset); err != nil {
		return fmt.Errorf("clock.offset: %w", err)
	}
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	// Env handling is set up before the config file is located.
	viper.SetEnvPrefix(envPrefix)                          // e.g., DAYTRACK_CLOCK_OFFSET
	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores in env var names

	cfgFileFlag := viper.GetString("config")

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else if info, err := os.Stat(config.LocalDir); err == nil && info.IsDir() {
		// Project-specific config directory exists. Prioritize it.
		viper.AddConfigPath(config.LocalDir) // ./.daytrack/.daytrack.yaml
		viper.SetConfigName(configName)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home) // $HOME/.daytrack.yaml
		viper.AddConfigPath(".")  // ./.daytrack.yaml
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else if cfgFileFlag != "" && os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	config.ApplyDefaults(viper.GetViper())

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// localConfigPath is where `config init` writes unless --global is set.
func localConfigPath() string {
	return filepath.Join(config.LocalDir, configName+".yaml")
}

// globalConfigPath is $HOME/.daytrack.yaml.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+".yaml"), nil
}
