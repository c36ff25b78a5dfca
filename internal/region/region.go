// Package region groups a line's tokens into semantically meaningful spans:
// the timestamp, the severity marker, bracketed component names, key=value
// pairs, remaining bracket pairs, and the trailing free-text message.
//
// Unlike tokens, regions are sparse: whitespace and punctuation between
// regions belongs to no region at all. Regions are sorted by start offset
// and never overlap.
package region

import (
	"encoding/json"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/token"
)

// Kind identifies the semantic role of a region.
type Kind int

const (
	Timestamp Kind = iota
	LogLevel
	Component
	KeyValue
	Bracket
	Message
)

var kindNames = map[Kind]string{
	Timestamp: "timestamp",
	LogLevel:  "log_level",
	Component: "component",
	KeyValue:  "key_value",
	Bracket:   "bracket",
	Message:   "message",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "message"
}

// MarshalJSON implements json.Marshaler for Kind.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Metadata keys set by the detector, by region kind:
//
//	log_level  "level"                      normalized severity atom
//	component  "name"                       text between the brackets
//	key_value  "key", "separator", "value"  the three raw strings
//	bracket    "delimiter"                  the opening delimiter
type Region struct {
	Kind     Kind              `json:"kind"`
	Start    int               `json:"start"`
	Length   int               `json:"length"`
	Value    string            `json:"value"`
	Tokens   []token.Token     `json:"-"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// End returns the byte offset one past the last byte of the region.
func (r Region) End() int {
	return r.Start + r.Length
}

// Severity returns the normalized severity of a log_level region.
// Regions of any other kind report SeverityUnknown.
func (r Region) Severity() config.Severity {
	if r.Kind != LogLevel {
		return config.SeverityUnknown
	}
	return config.ParseSeverity(r.Metadata["level"])
}
