// Package group partitions an ordered list of log lines into multi-line
// structural units: stack traces, tables, header-plus-continuation runs,
// and single-line fallbacks.
//
// The partition is exact: every input line belongs to exactly one group,
// and concatenating the groups' lines in order reproduces the input.
package group

import (
	"encoding/json"

	"github.com/colorhymn/colorhymn/internal/region"
)

// Kind identifies the structural shape of a group.
type Kind int

const (
	Single Kind = iota
	Continuation
	Table
	StackTrace
)

var kindNames = map[Kind]string{
	Single:       "single",
	Continuation: "continuation",
	Table:        "table",
	StackTrace:   "stack_trace",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "single"
}

// MarshalJSON implements json.Marshaler for Kind.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// MarshalText implements encoding.TextMarshaler so Kind can key a JSON map.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Group is a run of one or more whole lines treated as a single structural
// unit. Lines and Regions are parallel: Regions[i] is the region detector's
// output for Lines[i]. StartLine and EndLine are inclusive indices into the
// original line list.
type Group struct {
	Kind      Kind              `json:"kind"`
	StartLine int               `json:"start_line"`
	EndLine   int               `json:"end_line"`
	Lines     []string          `json:"lines"`
	Regions   [][]region.Region `json:"regions"`

	// FrameCount is the number of frame lines in a stack_trace group.
	FrameCount int `json:"frame_count,omitempty"`

	// RowCount and HasBorder describe a table group.
	RowCount  int  `json:"row_count,omitempty"`
	HasBorder bool `json:"has_border,omitempty"`

	// BodyCount and Header describe a continuation group.
	BodyCount int    `json:"body_count,omitempty"`
	Header    string `json:"header,omitempty"`
}

// Len returns the number of lines in the group.
func (g Group) Len() int {
	return g.EndLine - g.StartLine + 1
}
