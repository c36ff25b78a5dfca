// Package analyzer computes aggregate statistics over structural analysis
// results: group shapes, severity distribution, and component frequency.
package analyzer

import (
	"sort"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/group"
	"github.com/colorhymn/colorhymn/internal/region"
	"github.com/colorhymn/colorhymn/internal/temperature"
)

// Stats holds aggregate statistics for one analyzed file.
type Stats struct {
	TotalLines     int                     `json:"total_lines"`
	TotalGroups    int                     `json:"total_groups"`
	GroupCounts    map[group.Kind]int      `json:"group_counts"`
	SeverityCounts map[config.Severity]int `json:"severity_counts"`
	FrameTotal     int                     `json:"frame_total"`
	TableRowTotal  int                     `json:"table_row_total"`
	TopComponents  []ComponentCount        `json:"top_components,omitempty"`
	ErrorRate      float64                 `json:"error_rate"`
	Temperature    temperature.Level       `json:"temperature"`
	Mood           temperature.Level       `json:"mood"`
}

// ComponentCount tracks a component name and how often it appears.
type ComponentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Analyzer computes statistics from group partitions.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// ComputeStats aggregates one file's group partition. topN limits the
// component frequency list.
func (a *Analyzer) ComputeStats(groups []group.Group, topN int) Stats {
	stats := Stats{
		GroupCounts:    make(map[group.Kind]int),
		SeverityCounts: make(map[config.Severity]int),
	}

	componentCounts := make(map[string]int)
	leveled := 0
	hot := 0

	for _, g := range groups {
		stats.TotalGroups++
		stats.GroupCounts[g.Kind]++
		stats.TotalLines += g.Len()
		stats.FrameTotal += g.FrameCount
		stats.TableRowTotal += g.RowCount

		for _, regions := range g.Regions {
			for _, r := range regions {
				switch r.Kind {
				case region.LogLevel:
					sev := r.Severity()
					stats.SeverityCounts[sev]++
					leveled++
					if sev >= config.SeverityError && sev != config.SeverityUnknown {
						hot++
					}
				case region.Component:
					componentCounts[r.Metadata["name"]]++
				}
			}
		}
	}

	if leveled > 0 {
		stats.ErrorRate = float64(hot) / float64(leveled)
	}

	temp := temperature.Score(groups)
	stats.Temperature = temp.Temperature
	stats.Mood = temp.Mood

	stats.TopComponents = topComponents(componentCounts, topN)
	return stats
}

// topComponents returns the topN most frequent component names,
// breaking count ties by name for determinism.
func topComponents(counts map[string]int, topN int) []ComponentCount {
	if len(counts) == 0 || topN <= 0 {
		return nil
	}
	all := make([]ComponentCount, 0, len(counts))
	for name, count := range counts {
		all = append(all, ComponentCount{Name: name, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Name < all[j].Name
	})
	if len(all) > topN {
		all = all[:topN]
	}
	return all
}
