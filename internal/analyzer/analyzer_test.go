package analyzer

import (
	"reflect"
	"testing"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/group"
)

func TestComputeStats(t *testing.T) {
	lines := []string{
		"2024-01-15T10:30:45Z INFO [auth] login ok",
		"2024-01-15T10:30:46Z ERROR [auth] login failed",
		"2024-01-15T10:30:47Z ERROR [db] query timeout",
		"2024-01-15T10:30:48Z INFO [db] reconnected",
		"Exception: boom",
		"  at foo.bar(1)",
		"  at baz.qux(2)",
	}
	groups := group.Detect(lines)
	stats := New().ComputeStats(groups, 5)

	if stats.TotalLines != len(lines) {
		t.Errorf("total lines = %d, want %d", stats.TotalLines, len(lines))
	}
	if stats.GroupCounts[group.StackTrace] != 1 {
		t.Errorf("stack trace count = %d, want 1", stats.GroupCounts[group.StackTrace])
	}
	if stats.FrameTotal != 2 {
		t.Errorf("frame total = %d, want 2", stats.FrameTotal)
	}
	if stats.SeverityCounts[config.SeverityError] != 2 {
		t.Errorf("error count = %d, want 2", stats.SeverityCounts[config.SeverityError])
	}
	if stats.SeverityCounts[config.SeverityInfo] != 2 {
		t.Errorf("info count = %d, want 2", stats.SeverityCounts[config.SeverityInfo])
	}
	if stats.ErrorRate != 0.5 {
		t.Errorf("error rate = %v, want 0.5", stats.ErrorRate)
	}

	want := []ComponentCount{
		{Name: "auth", Count: 2},
		{Name: "db", Count: 2},
	}
	if !reflect.DeepEqual(stats.TopComponents, want) {
		t.Errorf("top components = %+v, want %+v", stats.TopComponents, want)
	}
}

func TestComputeStats_TopNLimit(t *testing.T) {
	lines := []string{
		"INFO [alpha] one",
		"INFO [alpha] two",
		"INFO [beta] three",
		"INFO [gamma] four",
	}
	stats := New().ComputeStats(group.Detect(lines), 2)

	if len(stats.TopComponents) != 2 {
		t.Fatalf("got %d components, want 2", len(stats.TopComponents))
	}
	if stats.TopComponents[0].Name != "alpha" || stats.TopComponents[0].Count != 2 {
		t.Errorf("first component = %+v", stats.TopComponents[0])
	}
	// Tied counts break by name.
	if stats.TopComponents[1].Name != "beta" {
		t.Errorf("second component = %+v, want beta before gamma", stats.TopComponents[1])
	}
}

func TestComputeStats_NoLevels(t *testing.T) {
	stats := New().ComputeStats(group.Detect([]string{"plain line", "another one"}), 5)

	if stats.ErrorRate != 0 {
		t.Errorf("error rate = %v, want 0 with no leveled lines", stats.ErrorRate)
	}
	if len(stats.SeverityCounts) != 0 {
		t.Errorf("severity counts = %v, want empty", stats.SeverityCounts)
	}
	if stats.TopComponents != nil {
		t.Errorf("top components = %v, want none", stats.TopComponents)
	}
}

func TestComputeStats_TableRows(t *testing.T) {
	lines := []string{
		"node-1  10.0.0.1  active   42",
		"node-2  10.0.0.2  standby  17",
	}
	stats := New().ComputeStats(group.Detect(lines), 5)

	if stats.GroupCounts[group.Table] != 1 {
		t.Errorf("table count = %d, want 1", stats.GroupCounts[group.Table])
	}
	if stats.TableRowTotal != 2 {
		t.Errorf("table row total = %d, want 2", stats.TableRowTotal)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := New().ComputeStats(nil, 5)
	if stats.TotalLines != 0 || stats.TotalGroups != 0 {
		t.Errorf("empty input produced %+v", stats)
	}
}
