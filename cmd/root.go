package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "colorhymn",
	Short: "A structural log colorizer",
	Long: `Colorhymn recovers layered structure from arbitrary log text — typed
tokens per line, semantic regions per line, and multi-line groups such as
stack traces and tables — and renders the result colorized.

Examples:
  colorhymn view /var/log/app.log
  colorhymn colorize /var/log/app.log > app.json
  colorhymn stats /var/log/app.log
  colorhymn tail --follow /var/log/app.log`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.colorhymn.yaml)")
	rootCmd.PersistentFlags().StringP("theme", "t", "dark", "color theme (dark, light)")
	rootCmd.PersistentFlags().String("color", "auto", "when to color output (auto, always, never)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".colorhymn")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("COLORHYMN")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("theme", "dark")
	viper.SetDefault("color", "auto")
	viper.SetDefault("verbose", false)
	viper.SetDefault("tail.lines", 10)
	viper.SetDefault("tail.follow_rotate", false)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// readLines loads a file and splits it into lines on "\n". A trailing
// newline does not produce a final empty line; any "\r" stays attached to
// the line it ended.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
