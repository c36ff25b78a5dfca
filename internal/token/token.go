// Package token splits a single log line into a flat sequence of typed,
// byte-addressed spans.
//
// Tokenize is a total function: every byte of the input line ends up in
// exactly one token, with unrecognized stretches covered by synthetic
// Text tokens. The result is sorted by start offset, non-overlapping, and
// tiles the line exactly.
package token

import "encoding/json"

// Kind identifies the pattern category that produced a token.
type Kind int

const (
	Text Kind = iota
	Timestamp
	LogLevel
	UUID
	URL
	Email
	MACAddress
	IPv6Address
	IPAddress
	CIDR
	Path
	Domain
	Port
	Protocol
	Interface
	HTTPMethod
	HTTPStatus
	HexNumber
	String
	Key
	VPNKeyword
	EventID
	SPI
	SID
	RegistryKey
	HResult
	Keyword
	Number
	Bracket
	Operator
	Identifier
)

var kindNames = map[Kind]string{
	Text:        "text",
	Timestamp:   "timestamp",
	LogLevel:    "log_level",
	UUID:        "uuid",
	URL:         "url",
	Email:       "email",
	MACAddress:  "mac_address",
	IPv6Address: "ipv6_address",
	IPAddress:   "ip_address",
	CIDR:        "cidr",
	Path:        "path",
	Domain:      "domain",
	Port:        "port",
	Protocol:    "protocol",
	Interface:   "interface",
	HTTPMethod:  "http_method",
	HTTPStatus:  "http_status",
	HexNumber:   "hex_number",
	String:      "string",
	Key:         "key",
	VPNKeyword:  "vpn_keyword",
	EventID:     "event_id",
	SPI:         "spi",
	SID:         "sid",
	RegistryKey: "registry_key",
	HResult:     "hresult",
	Keyword:     "keyword",
	Number:      "number",
	Bracket:     "bracket",
	Operator:    "operator",
	Identifier:  "identifier",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "text"
}

// MarshalJSON implements json.Marshaler for Kind.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Token is a typed span within one line. Offsets are byte offsets into the
// original line, so Value == line[Start:Start+Length] always holds.
type Token struct {
	Kind   Kind   `json:"kind"`
	Value  string `json:"value"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

// End returns the byte offset one past the last byte of the token.
func (t Token) End() int {
	return t.Start + t.Length
}
