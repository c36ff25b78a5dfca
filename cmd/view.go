package cmd

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/colorhymn/colorhymn/internal/output"
	"github.com/colorhymn/colorhymn/internal/palette"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] <file>",
	Short: "Render a log file colorized in the terminal",
	Long: `Colorize a log file and render it with ANSI truecolor escapes, with a
header carrying the filename, line count, temperature, and mood.

Examples:
  colorhymn view /var/log/app.log
  colorhymn view --color always app.log | less -R`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolP("line-numbers", "n", false, "show line numbers")
	viewCmd.Flags().Bool("no-header", false, "suppress the summary header")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	lines, err := readLines(args[0])
	if err != nil {
		return err
	}

	theme := palette.ByName(viper.GetString("theme"))
	doc := output.Colorize(filepath.Base(args[0]), lines, theme)

	mode := output.ParseColorMode(viper.GetString("color"))
	lineNumbers, _ := cmd.Flags().GetBool("line-numbers")
	noHeader, _ := cmd.Flags().GetBool("no-header")

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return output.Render(w, doc, output.RenderOptions{
		Color:       output.ShouldColorize(mode, os.Stdout),
		LineNumbers: lineNumbers,
		Header:      !noHeader,
	})
}
