package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/colorhymn/colorhymn/internal/output"
	"github.com/colorhymn/colorhymn/internal/palette"
)

var colorizeCmd = &cobra.Command{
	Use:   "colorize [flags] <file>",
	Short: "Emit the colorize document as JSON",
	Long: `Run the structural pipeline over a log file and emit the resulting
colorize document as JSON: file metadata (line count, temperature, mood)
plus one [kind, value, color] span list per line.

Examples:
  colorhymn colorize /var/log/app.log
  colorhymn colorize --theme light app.log > app.json`,
	Args: cobra.ExactArgs(1),
	RunE: runColorize,
}

func init() {
	colorizeCmd.Flags().Bool("compact", false, "emit compact JSON instead of indented")

	rootCmd.AddCommand(colorizeCmd)
}

func runColorize(cmd *cobra.Command, args []string) error {
	lines, err := readLines(args[0])
	if err != nil {
		return err
	}

	theme := palette.ByName(viper.GetString("theme"))
	doc := output.Colorize(filepath.Base(args[0]), lines, theme)

	enc := json.NewEncoder(os.Stdout)
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
