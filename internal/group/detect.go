package group

import (
	"regexp"
	"strings"

	"github.com/colorhymn/colorhymn/internal/region"
)

// Detect partitions lines into groups. At each cursor position the
// detectors run in fixed priority order — stack trace, table,
// continuation — and the first that matches consumes one or more lines;
// otherwise the line becomes a single group. The process is a pure
// function of the line list.
func Detect(lines []string) []Group {
	regions := make([][]region.Region, len(lines))
	for i, line := range lines {
		regions[i] = region.Detect(line, nil)
	}

	var groups []Group
	for cursor := 0; cursor < len(lines); {
		g, n, ok := detectStackTrace(lines, cursor)
		if !ok {
			g, n, ok = detectTable(lines, cursor)
		}
		if !ok {
			g, n, ok = detectContinuation(lines, cursor)
		}
		if !ok {
			g, n = Group{Kind: Single}, 1
		}

		g.StartLine = cursor
		g.EndLine = cursor + n - 1
		g.Lines = lines[cursor : cursor+n]
		g.Regions = regions[cursor : cursor+n]
		groups = append(groups, g)
		cursor += n
	}
	return groups
}

// Stack trace shapes.
var (
	stackHeaderRegexes = []*regexp.Regexp{
		regexp.MustCompile(`^Traceback \(most recent call last\):`),
		regexp.MustCompile(`^panic: `),
		regexp.MustCompile(`^fatal error: `),
		regexp.MustCompile(`(?i)^unhandled exception`),
		regexp.MustCompile(`^[\w$.]*(?:Exception|Error|Throwable)(?::.*)?$`),
	}

	stackFrameRegexes = []*regexp.Regexp{
		regexp.MustCompile(`^\s+at \S`),
		regexp.MustCompile(`^\s+from \S`),
		regexp.MustCompile(`^\s+File "`),
		regexp.MustCompile(`^\s*#\d+\s`),
		regexp.MustCompile(`^\s+\S+\.\w+:\d+`),
		regexp.MustCompile(`^\s*[-=_]{3,}\s*$`),
	}

	causedByRegex = regexp.MustCompile(`^Caused by:`)
	elisionRegex  = regexp.MustCompile(`^\s*\.\.\. \d+ more\b`)
	indentRegex   = regexp.MustCompile(`^(?:\t| {2,})\S`)
)

func isStackHeader(line string) bool {
	return matchesAny(stackHeaderRegexes, line)
}

func isStackFrame(line string) bool {
	return matchesAny(stackFrameRegexes, line)
}

// isStackContinuation matches the non-frame lines a trace may carry:
// chained-cause headers, frame elisions, and indented detail lines.
func isStackContinuation(line string) bool {
	return causedByRegex.MatchString(line) ||
		elisionRegex.MatchString(line) ||
		indentRegex.MatchString(line)
}

// detectStackTrace consumes a recognized exception header plus the frame
// and continuation lines under it. The header alone is not a trace: at
// least one frame must follow, otherwise the detector reports no match.
func detectStackTrace(lines []string, cursor int) (Group, int, bool) {
	if !isStackHeader(lines[cursor]) {
		return Group{}, 0, false
	}

	frames := 0
	next := cursor + 1
	for next < len(lines) {
		switch {
		case isStackFrame(lines[next]):
			frames++
		case isStackContinuation(lines[next]):
		default:
			return emitStackTrace(frames, next-cursor)
		}
		next++
	}
	return emitStackTrace(frames, next-cursor)
}

func emitStackTrace(frames, consumed int) (Group, int, bool) {
	if frames == 0 {
		return Group{}, 0, false
	}
	return Group{Kind: StackTrace, FrameCount: frames}, consumed, true
}

// Table shapes.
var (
	tableBorderRegex = regexp.MustCompile(`^\s*[+|][-=+|]{2,}[+|]?\s*$`)
	pipeRowRegex     = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	capsHeaderRegex  = regexp.MustCompile(`^\s*[A-Z][A-Z0-9_%()-]*(?:\s+[A-Z][A-Z0-9_%()-]*)+\s*$`)
	tableIPv4Regex   = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	fieldGapRegex    = regexp.MustCompile(`\s{2,}`)
)

// isTableRow reports whether a line looks like it belongs to a table: an
// explicit border, a pipe-delimited row, two IPv4-shaped fields, an
// ALLCAPS header row, or at least three wide-gap fields in a long line.
func isTableRow(line string) bool {
	switch {
	case tableBorderRegex.MatchString(line):
		return true
	case pipeRowRegex.MatchString(line):
		return true
	case len(tableIPv4Regex.FindAllString(line, 2)) >= 2:
		return true
	case capsHeaderRegex.MatchString(line):
		return true
	case len(line) > 20 && columnCount(line) >= 3:
		return true
	}
	return false
}

// columnCount counts the fields of a row, splitting on pipes when present
// and on runs of two or more spaces otherwise.
func columnCount(line string) int {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return 0
	}
	if strings.Contains(trimmed, "|") {
		count := 0
		for _, f := range strings.Split(trimmed, "|") {
			if strings.TrimSpace(f) != "" {
				count++
			}
		}
		return count
	}
	return len(fieldGapRegex.Split(trimmed, -1))
}

// detectTable consumes consecutive table rows. Rows after the first must be
// borders, column-count-compatible (within one) with the first row, or —
// once a border has been seen — contain a pipe. A blank line ends the
// table; fewer than two rows is no table at all.
func detectTable(lines []string, cursor int) (Group, int, bool) {
	if !isTableRow(lines[cursor]) {
		return Group{}, 0, false
	}

	cols := columnCount(lines[cursor])
	border := tableBorderRegex.MatchString(lines[cursor])
	next := cursor + 1
collect:
	for next < len(lines) {
		line := lines[next]
		if strings.TrimSpace(line) == "" {
			break
		}
		switch {
		case tableBorderRegex.MatchString(line):
			border = true
		case compatibleColumns(columnCount(line), cols):
		case border && strings.Contains(line, "|"):
		default:
			break collect
		}
		next++
	}
	rows := next - cursor
	if rows < 2 {
		return Group{}, 0, false
	}
	return Group{Kind: Table, RowCount: rows, HasBorder: border}, rows, true
}

func compatibleColumns(got, want int) bool {
	diff := got - want
	return diff >= -1 && diff <= 1
}

// Continuation shapes.
var continuationRegexes = []*regexp.Regexp{
	indentRegex,
	regexp.MustCompile(`^\s*[-*•]\s+\S`),
	regexp.MustCompile(`^\s*\d+[.)]\s+\S`),
	regexp.MustCompile(`^\s*>\s?\S`),
	regexp.MustCompile(`^\s*\|`),
	regexp.MustCompile(`^\s*\.\.\.`),
}

func isContinuation(line string) bool {
	return matchesAny(continuationRegexes, line)
}

// detectContinuation treats a non-continuation line followed by one or more
// continuation-shaped lines as a header with its body.
func detectContinuation(lines []string, cursor int) (Group, int, bool) {
	if cursor+1 >= len(lines) || isContinuation(lines[cursor]) || !isContinuation(lines[cursor+1]) {
		return Group{}, 0, false
	}

	next := cursor + 1
	for next < len(lines) && isContinuation(lines[next]) {
		next++
	}
	return Group{
		Kind:      Continuation,
		BodyCount: next - cursor - 1,
		Header:    lines[cursor],
	}, next - cursor, true
}

func matchesAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
