package temperature

import (
	"testing"

	"github.com/colorhymn/colorhymn/internal/group"
	"github.com/colorhymn/colorhymn/internal/region"
)

func TestFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.0, Cool},
		{0.14, Cool},
		{0.15, Neutral},
		{0.29, Neutral},
		{0.30, Elevated},
		{0.44, Elevated},
		{0.45, Uneasy},
		{0.54, Uneasy},
		{0.55, Troubled},
		{0.69, Troubled},
		{0.70, Warm},
		{0.84, Warm},
		{0.85, Critical},
		{1.0, Critical},
	}

	for _, tt := range tests {
		if got := FromScore(tt.score); got != tt.want {
			t.Errorf("FromScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if Cool.String() != "cool" || Critical.String() != "critical" {
		t.Error("level atoms wrong")
	}
	if Level(99).String() != "neutral" {
		t.Error("unknown level should read neutral")
	}
}

func TestLineScore(t *testing.T) {
	t.Run("no regions is neutral", func(t *testing.T) {
		if got := LineScore(nil); got != neutralScore {
			t.Errorf("LineScore(nil) = %v, want %v", got, neutralScore)
		}
	})

	t.Run("hottest region dominates", func(t *testing.T) {
		regions := region.Detect("2024-01-15T10:30:45Z ERROR boom", nil)
		if got := LineScore(regions); got != 0.9 {
			t.Errorf("LineScore = %v, want 0.9 from the error level", got)
		}
	})

	t.Run("message only reads cool", func(t *testing.T) {
		regions := region.Detect("just plain words here", nil)
		if got := LineScore(regions); got != 0.1 {
			t.Errorf("LineScore = %v, want 0.1", got)
		}
	})
}

func TestScore_StackTraceBoost(t *testing.T) {
	groups := group.Detect([]string{
		"Exception: boom",
		"  at foo.bar(1)",
		"  at baz.qux(2)",
	})

	result := Score(groups)
	if result.Temperature != Critical {
		t.Errorf("temperature = %v, want critical", result.Temperature)
	}
	for i, s := range result.LineScores {
		if s < 0.85 {
			t.Errorf("stack trace line %d scored %v, want >= 0.85", i, s)
		}
	}
}

func TestScore_TableDampening(t *testing.T) {
	table := group.Detect([]string{
		"node-1  10.0.0.1  active   42",
		"node-2  10.0.0.2  active   17",
	})
	plain := group.Detect([]string{
		"node-1  10.0.0.1  active   42",
	})

	tableResult := Score(table)
	plainResult := Score(plain)
	if tableResult.Score >= plainResult.Score {
		t.Errorf("table lines (%v) should read cooler than the same line alone (%v)",
			tableResult.Score, plainResult.Score)
	}
}

func TestScore_QuietFile(t *testing.T) {
	groups := group.Detect([]string{
		"2024-01-15T10:30:45Z DEBUG cache warm",
		"2024-01-15T10:30:46Z INFO ready",
	})

	result := Score(groups)
	if result.Temperature > Elevated {
		t.Errorf("quiet file reads %v", result.Temperature)
	}
	if result.Mood > Elevated {
		t.Errorf("quiet file mood reads %v", result.Mood)
	}
}

func TestScore_MoodFindsHotWindow(t *testing.T) {
	lines := []string{
		"INFO one", "INFO two", "INFO three", "INFO four", "INFO five",
		"INFO six", "INFO seven", "INFO eight", "INFO nine", "INFO ten",
		"FATAL alpha", "FATAL beta", "FATAL gamma", "FATAL delta", "FATAL omega",
	}
	result := Score(group.Detect(lines))

	if result.Mood != Critical {
		t.Errorf("mood = %v, want critical from the fatal run", result.Mood)
	}
	if result.Temperature >= result.Mood {
		t.Errorf("temperature %v should read cooler than mood %v on this input",
			result.Temperature, result.Mood)
	}
}

func TestScore_Empty(t *testing.T) {
	result := Score(nil)
	if result.Temperature != Neutral || result.Mood != Neutral {
		t.Errorf("empty input = %v/%v, want neutral/neutral", result.Temperature, result.Mood)
	}
	if result.Score != 0 {
		t.Errorf("empty input score = %v", result.Score)
	}
}
