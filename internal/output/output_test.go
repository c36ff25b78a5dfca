package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/palette"
	"github.com/colorhymn/colorhymn/internal/token"
)

func TestSpanJSON(t *testing.T) {
	span := Span{Kind: token.LogLevel, Value: "ERROR", Color: "#e06c75"}

	data, err := json.Marshal(span)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `["log_level","ERROR","#e06c75"]`; got != want {
		t.Errorf("marshaled span = %s, want %s", got, want)
	}

	var back Span
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != span {
		t.Errorf("round trip = %+v, want %+v", back, span)
	}
}

func TestColorize(t *testing.T) {
	lines := []string{
		"2024-01-15T10:30:45Z ERROR [auth] login failed",
		"plain follow-up line",
	}
	doc := Colorize("app.log", lines, palette.Default())

	if doc.Metadata.Filename != "app.log" {
		t.Errorf("filename = %q", doc.Metadata.Filename)
	}
	if doc.Metadata.LineCount != 2 {
		t.Errorf("line count = %d, want 2", doc.Metadata.LineCount)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("got %d span lines, want 2", len(doc.Lines))
	}

	// Spans concatenate back to the original line.
	for i, spans := range doc.Lines {
		var sb strings.Builder
		for _, s := range spans {
			sb.WriteString(s.Value)
		}
		if sb.String() != lines[i] {
			t.Errorf("line %d spans = %q, want %q", i, sb.String(), lines[i])
		}
	}
}

func TestColorize_SeverityColorOverridesKind(t *testing.T) {
	theme := palette.Default()
	doc := Colorize("x", []string{"ERROR disk full"}, theme)

	spans := doc.Lines[0]
	if spans[0].Kind != token.LogLevel {
		t.Fatalf("first span = %+v", spans[0])
	}
	if want := theme.SeverityColor(config.SeverityError); spans[0].Color != want {
		t.Errorf("level span color = %q, want the severity color %q", spans[0].Color, want)
	}
}

func TestColorize_JSONShape(t *testing.T) {
	doc := Colorize("x", []string{"ERROR boom"}, palette.Default())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Metadata struct {
			Filename    string `json:"filename"`
			LineCount   int    `json:"line_count"`
			Temperature string `json:"temperature"`
			Mood        string `json:"mood"`
		} `json:"metadata"`
		Lines [][][3]interface{} `json:"lines"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("document shape: %v\n%s", err, data)
	}
	if decoded.Metadata.Temperature == "" || decoded.Metadata.Mood == "" {
		t.Error("temperature atoms missing from metadata")
	}
	if len(decoded.Lines) != 1 || len(decoded.Lines[0]) == 0 {
		t.Fatalf("lines shape wrong: %s", data)
	}
	first := decoded.Lines[0][0]
	if _, ok := first[0].(string); !ok {
		t.Errorf("span kind should be a string atom, got %T", first[0])
	}
}

func TestColorizeLine(t *testing.T) {
	spans := ColorizeLine("WARN low disk", palette.Default())
	if len(spans) == 0 {
		t.Fatal("no spans")
	}

	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Value)
	}
	if sb.String() != "WARN low disk" {
		t.Errorf("spans = %q", sb.String())
	}
	if spans[0].Kind != token.LogLevel {
		t.Errorf("first span kind = %v, want log_level", spans[0].Kind)
	}
}

func TestRender_NoColor(t *testing.T) {
	doc := Colorize("app.log", []string{"ERROR boom", "ok line"}, palette.Default())

	var sb strings.Builder
	if err := Render(&sb, doc, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "ERROR boom\nok line\n"; got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRender_Color(t *testing.T) {
	doc := Colorize("app.log", []string{"ERROR boom"}, palette.Default())

	var sb strings.Builder
	if err := Render(&sb, doc, RenderOptions{Color: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "\033[38;2;") {
		t.Error("no truecolor escapes in colored output")
	}
	if !strings.Contains(out, ansiReset) {
		t.Error("no reset escape in colored output")
	}
}

func TestRender_HeaderAndLineNumbers(t *testing.T) {
	doc := Colorize("app.log", []string{"one", "two"}, palette.Default())

	var sb strings.Builder
	opts := RenderOptions{Header: true, LineNumbers: true}
	if err := Render(&sb, doc, opts); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "app.log") || !strings.Contains(out, "2 lines") {
		t.Errorf("header missing from %q", out)
	}
	if !strings.Contains(out, "    1 one") || !strings.Contains(out, "    2 two") {
		t.Errorf("line numbers missing from %q", out)
	}
}
