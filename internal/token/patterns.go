package token

import (
	"regexp"
	"strconv"
)

// pattern couples a token kind with its matcher.
//
// group, when non-zero, selects a capture group as the emitted span instead
// of the whole match (the key pattern claims the identifier but not the
// following "="). valid, when set, can veto a match after the fact (ports
// outside [1, 65535] are rejected so a lower-priority pattern can claim the
// digits instead).
type pattern struct {
	kind  Kind
	re    *regexp.Regexp
	group int
	valid func(string) bool
}

var (
	// Timestamp sub-patterns, tried in their own fixed order:
	// ISO-8601 > syslog > US date > unix epoch > bare time of day.
	isoTimestampRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,9})?(?:Z|[+-]\d{2}:?\d{2})?`)

	syslogTimestampRegex = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) {1,2}\d{1,2} \d{2}:\d{2}:\d{2}\b`)

	usTimestampRegex = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}(?: ?[AP]M)?\b`)

	epochTimestampRegex = regexp.MustCompile(`\b\d{10,13}\b`)

	bareTimeRegex = regexp.MustCompile(`\b\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?\b`)

	// Log severity words, matched case-insensitively; normalization to the
	// severity atom happens in the region detector.
	logLevelRegex = regexp.MustCompile(`(?i)\b(?:FATAL|CRITICAL|CRIT|ERROR|ERR|WARNING|WARN|INFO|DEBUG|TRACE)\b`)

	// UUIDs: 550e8400-e29b-41d4-a716-446655440000
	uuidRegex = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	// URLs with an explicit scheme.
	urlRegex = regexp.MustCompile(`\b(?:https?|ftp|wss?)://[^\s<>"']+`)

	// Email addresses: user@example.com
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// MAC addresses: 00:1B:44:11:3A:B7 or 00-1B-44-11-3A-B7
	macAddressRegex = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{2}[:-]){5}(?:[0-9A-Fa-f]{2})\b`)

	// IPv6 addresses: 2001:db8::1, ::ffff:192.0.2.1
	ipv6Regex = regexp.MustCompile(`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,7}:|(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,5}(?::[0-9a-fA-F]{1,4}){1,2}|(?:[0-9a-fA-F]{1,4}:){1,4}(?::[0-9a-fA-F]{1,4}){1,3}|(?:[0-9a-fA-F]{1,4}:){1,3}(?::[0-9a-fA-F]{1,4}){1,4}|(?:[0-9a-fA-F]{1,4}:){1,2}(?::[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:(?::[0-9a-fA-F]{1,4}){1,6}|::(?:[fF]{4}(?::0{1,4}){0,1}:){0,1}(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)|(?:[0-9a-fA-F]{1,4}:){1,4}:(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`)

	// CIDR blocks. Checked ahead of bare IPv4 so the subnet form is not
	// shadowed by an address match at the same start offset.
	cidrRegex = regexp.MustCompile(`\b(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(?:\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)){3}/\d{1,2}\b`)

	// IPv4 addresses: 192.168.1.1
	ipv4Regex = regexp.MustCompile(`\b(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)

	// Filesystem paths: unix paths with at least two segments, Windows
	// drive or UNC paths, and home-relative paths.
	pathRegex = regexp.MustCompile(`(?:[A-Za-z]:\\|\\\\)[^\s"',;|]+|~?(?:/[\w.@+~-]+){2,}/?`)

	// Host names with a recognized top-level suffix.
	domainRegex = regexp.MustCompile(`(?i)\b(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+(?:com|net|org|io|dev|gov|edu|mil|info|local|internal|lan|corp|cloud|co|uk|de|fr|jp|us)\b`)

	// Digits following a colon; numeric range enforced by validPort.
	portRegex = regexp.MustCompile(`:(\d{1,5})\b`)

	protocolRegex = regexp.MustCompile(`\b(?:HTTPS|HTTP/2|HTTP/1\.[01]|HTTP|TCP|UDP|ICMP|SSH|TLSv1\.[0-3]|TLS|SSL|SFTP|FTP|SMTP|IMAP|POP3|DNS|DHCP|ARP|GRE|ESP|AH|IKEv2|IKE|L2TP|PPTP|SCTP|QUIC|RDP|SNMP|NTP|LDAP|SMB|NFS)\b`)

	interfaceRegex = regexp.MustCompile(`\b(?:GigabitEthernet|FastEthernet|TenGigabitEthernet|Ethernet|Serial|Tunnel|Loopback|Vlan|Port-channel)\d+(?:/\d+)*|\b(?:eth|ens|enp|eno|em|wlan|wlp|tun|tap|ppp|br|bond|veth|docker|virbr)\d+(?:\.\d+)?\b|\blo\b`)

	httpMethodRegex = regexp.MustCompile(`\b(?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS|CONNECT|TRACE)\b`)

	httpStatusRegex = regexp.MustCompile(`\b(?:100|101|200|201|202|204|206|301|302|303|304|307|308|400|401|403|404|405|408|409|410|412|413|415|418|422|425|429|500|501|502|503|504|505)\b`)

	// HRESULT codes. Checked ahead of generic hex so the Windows error form
	// keeps its own kind.
	hresultRegex = regexp.MustCompile(`\b0x[08][0-9A-Fa-f]{7}\b`)

	hexNumberRegex = regexp.MustCompile(`\b0[xX][0-9A-Fa-f]+\b`)

	stringRegex = regexp.MustCompile(`"[^"]*"|'[^']*'`)

	// Identifier immediately before "="; only the identifier is claimed.
	keyRegex = regexp.MustCompile(`([A-Za-z_][\w.-]*)=`)

	vpnKeywordRegex = regexp.MustCompile(`(?i)\b(?:ipsec|isakmp|xauth|rekey(?:ing)?|vpn|phase ?[12]|tunnel-group|transform-set)\b`)

	eventIDRegex = regexp.MustCompile(`(?i)\bEvent ?ID[:= ]+\d+\b`)

	spiRegex = regexp.MustCompile(`(?i)\bSPI[:= ]+(?:0x)?[0-9a-f]+\b`)

	sidRegex = regexp.MustCompile(`\bS-1-\d+(?:-\d+)+\b`)

	registryKeyRegex = regexp.MustCompile(`\b(?:HKEY_LOCAL_MACHINE|HKEY_CURRENT_USER|HKEY_CLASSES_ROOT|HKEY_USERS|HKEY_CURRENT_CONFIG|HKLM|HKCU|HKCR|HKU)(?:\\[^\\\s"']+)*`)

	// Generic log vocabulary; alternatives are ordered longest-spelling
	// first so \b anchoring stays unambiguous.
	keywordRegex = regexp.MustCompile(`(?i)\b(?:successfully|successful|success|disconnected|connected|connecting|established|authenticated|authorized|unauthorized|unreachable|listening|accepted|rejected|refused|denied|blocked|allowed|dropped|deleted|created|updated|received|started|starting|stopped|stopping|restarted|retrying|retry|timeout|timed out|expired|exception|panic|failed|failure|login|logout|opened|closed|sent|up|down)\b`)

	numberRegex = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

	bracketRegex = regexp.MustCompile(`[\[\](){}]`)

	operatorRegex = regexp.MustCompile(`[=+\-*/<>!&|:;,.%@#?~^]`)

	identifierRegex = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// validPort accepts port numbers in [1, 65535].
func validPort(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 65535
}

// priority is the immutable pattern table, most specific category first.
// When candidate spans from different categories start at the same offset,
// the category listed earlier wins.
var priority = []pattern{
	{kind: Timestamp, re: isoTimestampRegex},
	{kind: Timestamp, re: syslogTimestampRegex},
	{kind: Timestamp, re: usTimestampRegex},
	{kind: Timestamp, re: epochTimestampRegex},
	{kind: Timestamp, re: bareTimeRegex},
	{kind: LogLevel, re: logLevelRegex},
	{kind: UUID, re: uuidRegex},
	{kind: URL, re: urlRegex},
	{kind: Email, re: emailRegex},
	{kind: MACAddress, re: macAddressRegex},
	{kind: IPv6Address, re: ipv6Regex},
	{kind: CIDR, re: cidrRegex},
	{kind: IPAddress, re: ipv4Regex},
	{kind: Path, re: pathRegex},
	{kind: Domain, re: domainRegex},
	{kind: Port, re: portRegex, group: 1, valid: validPort},
	{kind: Protocol, re: protocolRegex},
	{kind: Interface, re: interfaceRegex},
	{kind: HTTPMethod, re: httpMethodRegex},
	{kind: HTTPStatus, re: httpStatusRegex},
	{kind: HResult, re: hresultRegex},
	{kind: HexNumber, re: hexNumberRegex},
	{kind: String, re: stringRegex},
	{kind: Key, re: keyRegex, group: 1},
	{kind: VPNKeyword, re: vpnKeywordRegex},
	{kind: EventID, re: eventIDRegex},
	{kind: SPI, re: spiRegex},
	{kind: SID, re: sidRegex},
	{kind: RegistryKey, re: registryKeyRegex},
	{kind: Keyword, re: keywordRegex},
	{kind: Number, re: numberRegex},
	{kind: Bracket, re: bracketRegex},
	{kind: Operator, re: operatorRegex},
	{kind: Identifier, re: identifierRegex},
}
