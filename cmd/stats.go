package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/colorhymn/colorhymn/internal/analyzer"
	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/group"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file>",
	Short: "Show structural statistics for a log file",
	Long: `Display a structural summary of a log file: group shapes, severity
distribution, stack trace frames, table rows, top components, and the
blended temperature.

Examples:
  colorhymn stats /var/log/app.log
  colorhymn stats --format json app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("format", "text", "output format (text, json)")
	statsCmd.Flags().Int("top", 5, "number of top components to show")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	lines, err := readLines(args[0])
	if err != nil {
		return err
	}

	topN, _ := cmd.Flags().GetInt("top")
	groups := group.Detect(lines)
	stats := analyzer.New().ComputeStats(groups, topN)

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	return writeStatsText(stats)
}

func writeStatsText(stats analyzer.Stats) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Lines:\t%d\n", stats.TotalLines)
	fmt.Fprintf(w, "Groups:\t%d\n", stats.TotalGroups)
	for _, kind := range []group.Kind{group.Single, group.Continuation, group.Table, group.StackTrace} {
		if n := stats.GroupCounts[kind]; n > 0 {
			fmt.Fprintf(w, "  %s:\t%d\n", kind, n)
		}
	}
	if stats.FrameTotal > 0 {
		fmt.Fprintf(w, "Stack frames:\t%d\n", stats.FrameTotal)
	}
	if stats.TableRowTotal > 0 {
		fmt.Fprintf(w, "Table rows:\t%d\n", stats.TableRowTotal)
	}

	if len(stats.SeverityCounts) > 0 {
		fmt.Fprintf(w, "Severity:\n")
		sevs := make([]config.Severity, 0, len(stats.SeverityCounts))
		for sev := range stats.SeverityCounts {
			sevs = append(sevs, sev)
		}
		sort.Slice(sevs, func(i, j int) bool { return sevs[i] > sevs[j] })
		for _, sev := range sevs {
			fmt.Fprintf(w, "  %s:\t%d\n", sev, stats.SeverityCounts[sev])
		}
		fmt.Fprintf(w, "Error rate:\t%.1f%%\n", stats.ErrorRate*100)
	}

	if len(stats.TopComponents) > 0 {
		fmt.Fprintf(w, "Top components:\n")
		for _, c := range stats.TopComponents {
			fmt.Fprintf(w, "  %s:\t%d\n", c.Name, c.Count)
		}
	}

	fmt.Fprintf(w, "Temperature:\t%s\n", stats.Temperature)
	fmt.Fprintf(w, "Mood:\t%s\n", stats.Mood)
	return w.Flush()
}
