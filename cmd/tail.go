package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/output"
	"github.com/colorhymn/colorhymn/internal/palette"
	"github.com/colorhymn/colorhymn/internal/tail"
)

var tailCmd = &cobra.Command{
	Use:   "tail [flags] <file>",
	Short: "Follow a log file, colorizing new lines",
	Long: `Follow a log file like tail -f, running every appended line through the
structural pipeline and rendering it colorized.

Examples:
  colorhymn tail --follow /var/log/app.log
  colorhymn tail -f --level error --pattern "timeout" app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	tailCmd.Flags().IntP("lines", "n", 10, "number of initial lines to show")
	tailCmd.Flags().BoolP("follow", "f", false, "follow the file for new content")
	tailCmd.Flags().Bool("follow-rotate", false, "keep following through log rotation")
	tailCmd.Flags().String("pattern", "", "only show lines matching this regex")
	tailCmd.Flags().String("level", "", "minimum severity to show (trace, debug, info, warn, error, critical, fatal)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	lines, _ := cmd.Flags().GetInt("lines")
	follow, _ := cmd.Flags().GetBool("follow")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")

	var pattern *regexp.Regexp
	if p, _ := cmd.Flags().GetString("pattern"); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		pattern = re
	}

	minSeverity := config.SeverityTrace
	if level, _ := cmd.Flags().GetString("level"); level != "" {
		minSeverity = config.ParseSeverity(level)
		if minSeverity == config.SeverityUnknown {
			return fmt.Errorf("unknown severity level %q", level)
		}
	}

	mode := output.ParseColorMode(viper.GetString("color"))
	color := output.ShouldColorize(mode, os.Stdout)
	theme := palette.ByName(viper.GetString("theme"))

	tailer := tail.New(tail.Options{
		FilePath:     args[0],
		Lines:        lines,
		Follow:       follow,
		FollowRotate: followRotate,
		Pattern:      pattern,
		MinSeverity:  minSeverity,
		Theme:        theme,
		OutputFunc: func(spans []output.Span) error {
			return output.Render(os.Stdout, &output.Document{Lines: [][]output.Span{spans}}, output.RenderOptions{Color: color})
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return tailer.Run(ctx)
}
