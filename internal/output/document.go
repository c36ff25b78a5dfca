// Package output assembles colorize documents and renders them as JSON or
// ANSI truecolor text.
package output

import (
	"encoding/json"

	"github.com/colorhymn/colorhymn/internal/group"
	"github.com/colorhymn/colorhymn/internal/palette"
	"github.com/colorhymn/colorhymn/internal/region"
	"github.com/colorhymn/colorhymn/internal/temperature"
	"github.com/colorhymn/colorhymn/internal/token"
)

// Span is one colored run of text within a line. It serializes as the
// three-element array [kind, value, color] consumed by viewers.
type Span struct {
	Kind  token.Kind
	Value string
	Color string
}

// MarshalJSON implements json.Marshaler for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{s.Kind.String(), s.Value, s.Color})
}

// UnmarshalJSON implements json.Unmarshaler for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var parts [3]string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	s.Kind, s.Value, s.Color = kindByName(parts[0]), parts[1], parts[2]
	return nil
}

// Metadata summarizes an analyzed file.
type Metadata struct {
	Filename    string            `json:"filename"`
	LineCount   int               `json:"line_count"`
	Temperature temperature.Level `json:"temperature"`
	Mood        temperature.Level `json:"mood"`
}

// Document is the full colorize result for one file.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Lines    [][]Span `json:"lines"`
}

// Colorize runs the structural pipeline over the given lines and colors
// every token under the theme. Groups influence line temperature, which in
// turn tints message text; log level tokens take their severity color.
func Colorize(filename string, lines []string, theme *palette.Theme) *Document {
	groups := group.Detect(lines)
	temp := temperature.Score(groups)

	// Flatten per-group regions back into line order; the group partition
	// is exact, so the flattened list is parallel to lines.
	regions := make([][]region.Region, 0, len(lines))
	for _, g := range groups {
		regions = append(regions, g.Regions...)
	}

	doc := &Document{
		Metadata: Metadata{
			Filename:    filename,
			LineCount:   len(lines),
			Temperature: temp.Temperature,
			Mood:        temp.Mood,
		},
		Lines: make([][]Span, len(lines)),
	}
	for i, line := range lines {
		doc.Lines[i] = colorizeLine(line, regions[i], temp.LineScores[i], theme)
	}
	return doc
}

// ColorizeLine colors one line in isolation, without group context. Used
// when lines arrive one at a time, as in tailing.
func ColorizeLine(line string, theme *palette.Theme) []Span {
	regions := region.Detect(line, nil)
	return colorizeLine(line, regions, temperature.LineScore(regions), theme)
}

// colorizeLine assigns a color to every token of one line.
func colorizeLine(line string, regions []region.Region, score float64, theme *palette.Theme) []Span {
	tokens := token.Tokenize(line)
	spans := make([]Span, 0, len(tokens))
	for _, t := range tokens {
		spans = append(spans, Span{
			Kind:  t.Kind,
			Value: t.Value,
			Color: tokenColor(t, regions, score, theme),
		})
	}
	return spans
}

// tokenColor picks a token's color, letting the enclosing region override
// the kind's palette entry: severity colors inside log_level regions,
// temperature-tinted text inside the message region.
func tokenColor(t token.Token, regions []region.Region, score float64, theme *palette.Theme) string {
	for _, r := range regions {
		if t.Start < r.Start || t.End() > r.End() {
			continue
		}
		switch r.Kind {
		case region.LogLevel:
			return theme.SeverityColor(r.Severity())
		case region.Message:
			if t.Kind == token.Text || t.Kind == token.Identifier {
				return theme.MessageColor(score)
			}
		}
		break
	}
	return theme.TokenColor(t.Kind)
}

var namedKinds = func() map[string]token.Kind {
	kinds := make(map[string]token.Kind)
	for k := token.Text; k <= token.Identifier; k++ {
		kinds[k.String()] = k
	}
	return kinds
}()

func kindByName(name string) token.Kind {
	return namedKinds[name]
}
