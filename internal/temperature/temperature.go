// Package temperature derives a heat score for structural analysis
// results: a score per region, blended per line, then blended across the
// whole file with group-aware adjustments. The file-level score maps to a
// temperature atom, and the hottest sustained run of lines maps to a mood.
package temperature

import (
	"encoding/json"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/group"
	"github.com/colorhymn/colorhymn/internal/region"
)

// Level is a coarse temperature reading.
type Level int

const (
	Cool Level = iota
	Neutral
	Elevated
	Uneasy
	Troubled
	Warm
	Critical
)

var levelNames = map[Level]string{
	Cool:     "cool",
	Neutral:  "neutral",
	Elevated: "elevated",
	Uneasy:   "uneasy",
	Troubled: "troubled",
	Warm:     "warm",
	Critical: "critical",
}

// String returns the atom for a Level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "neutral"
}

// MarshalJSON implements json.Marshaler for Level.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// Result holds the blended temperature of one analyzed file.
type Result struct {
	Temperature Level     `json:"temperature"`
	Mood        Level     `json:"mood"`
	Score       float64   `json:"score"`
	LineScores  []float64 `json:"-"`
}

// neutralScore is the heat of a line with no structured signal at all.
const neutralScore = 0.15

// moodWindow is the run length used when looking for the hottest
// sustained stretch of lines.
const moodWindow = 5

// severityScores maps normalized severities to heat.
var severityScores = map[config.Severity]float64{
	config.SeverityFatal:    1.0,
	config.SeverityCritical: 0.95,
	config.SeverityError:    0.9,
	config.SeverityWarn:     0.6,
	config.SeverityUnknown:  0.35,
	config.SeverityInfo:     0.2,
	config.SeverityDebug:    0.1,
	config.SeverityTrace:    0.05,
}

// RegionScore returns the heat contributed by a single region.
func RegionScore(r region.Region) float64 {
	switch r.Kind {
	case region.LogLevel:
		return severityScores[r.Severity()]
	case region.KeyValue:
		return 0.25
	case region.Bracket:
		return 0.2
	case region.Component:
		return 0.15
	case region.Message:
		return 0.1
	case region.Timestamp:
		return 0.05
	}
	return neutralScore
}

// LineScore blends a line's region scores. The hottest region dominates;
// a line with no regions reads neutral.
func LineScore(regions []region.Region) float64 {
	score := neutralScore
	if len(regions) > 0 {
		score = 0
	}
	for _, r := range regions {
		if s := RegionScore(r); s > score {
			score = s
		}
	}
	return score
}

// Score blends the per-line scores of an entire group partition.
// Stack trace lines score collectively hot regardless of their individual
// regions; table rows read cooler than their raw field content suggests.
func Score(groups []group.Group) Result {
	var scores []float64
	for _, g := range groups {
		for _, regions := range g.Regions {
			s := LineScore(regions)
			switch g.Kind {
			case group.StackTrace:
				if s < 0.85 {
					s = 0.85
				}
			case group.Table:
				s *= 0.5
			}
			scores = append(scores, s)
		}
	}

	result := Result{LineScores: scores}
	if len(scores) == 0 {
		result.Temperature = Neutral
		result.Mood = Neutral
		return result
	}

	result.Score = mean(scores)
	result.Temperature = FromScore(result.Score)
	result.Mood = FromScore(hottestRun(scores, moodWindow))
	return result
}

// FromScore maps a blended score in [0, 1] to its Level.
func FromScore(score float64) Level {
	switch {
	case score < 0.15:
		return Cool
	case score < 0.30:
		return Neutral
	case score < 0.45:
		return Elevated
	case score < 0.55:
		return Uneasy
	case score < 0.70:
		return Troubled
	case score < 0.85:
		return Warm
	default:
		return Critical
	}
}

func mean(scores []float64) float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// hottestRun returns the highest mean over any window-sized run of scores.
// Shorter inputs use a single run covering everything.
func hottestRun(scores []float64, window int) float64 {
	if len(scores) <= window {
		return mean(scores)
	}
	hottest := 0.0
	for i := 0; i+window <= len(scores); i++ {
		if m := mean(scores[i : i+window]); m > hottest {
			hottest = m
		}
	}
	return hottest
}
