// Package config provides configuration types and shared enums for colorhymn.
package config

import (
	"encoding/json"
	"strings"
)

// Config holds the application-wide configuration.
type Config struct {
	Theme   string     `mapstructure:"theme"`
	Color   string     `mapstructure:"color"` // auto, always, never
	Verbose bool       `mapstructure:"verbose"`
	Tail    TailConfig `mapstructure:"tail"`
}

// TailConfig holds configuration for the tail command.
type TailConfig struct {
	// Lines is the number of initial lines to show before following.
	Lines int `mapstructure:"lines"`

	// FollowRotate controls whether tailing survives log rotation.
	FollowRotate bool `mapstructure:"follow_rotate"`
}

// Severity represents a normalized log severity level.
type Severity int

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityCritical
	SeverityFatal
	SeverityUnknown
)

// String returns the lowercase atom for a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "trace"
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalText implements encoding.TextMarshaler so Severity can key a
// JSON map.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseSeverity(str)
	return nil
}

// ParseSeverity normalizes a severity word by uppercasing it and matching
// exactly against the known level spellings. Anything else is unknown.
func ParseSeverity(word string) Severity {
	switch strings.ToUpper(word) {
	case "FATAL":
		return SeverityFatal
	case "CRITICAL", "CRIT":
		return SeverityCritical
	case "ERROR", "ERR":
		return SeverityError
	case "WARN", "WARNING":
		return SeverityWarn
	case "INFO":
		return SeverityInfo
	case "DEBUG":
		return SeverityDebug
	case "TRACE":
		return SeverityTrace
	default:
		return SeverityUnknown
	}
}
