package region

import (
	"sort"
	"strings"

	"github.com/colorhymn/colorhymn/internal/config"
	"github.com/colorhymn/colorhymn/internal/token"
)

// Detect finds the semantic regions of one line. tokens may be passed in
// pre-computed; when nil the line is tokenized internally. The result is
// sorted by start offset and mutually non-overlapping, but does not tile
// the line. A line with no structured signal yields at most one message
// region; Detect never fails.
func Detect(line string, tokens []token.Token) []Region {
	if tokens == nil {
		tokens = token.Tokenize(line)
	}

	var cands []Region
	cands = appendTimestamp(cands, tokens)
	cands = appendLogLevel(cands, line, tokens)

	pairs := pairBrackets(tokens)
	cands = appendComponents(cands, line, tokens, pairs)
	cands = appendKeyValues(cands, line, tokens)
	cands = appendBrackets(cands, line, tokens, pairs)
	cands = appendMessage(cands, line, tokens)

	return resolve(cands)
}

// appendTimestamp promotes the first timestamp token to a region verbatim.
func appendTimestamp(cands []Region, tokens []token.Token) []Region {
	for _, t := range tokens {
		if t.Kind == token.Timestamp {
			return append(cands, Region{
				Kind:   Timestamp,
				Start:  t.Start,
				Length: t.Length,
				Value:  t.Value,
				Tokens: []token.Token{t},
			})
		}
	}
	return cands
}

// appendLogLevel promotes the first log_level token. When the token sits
// byte-adjacent between an opening bracket and its matching closer, the
// region absorbs both brackets, so "[ERROR]" becomes one region.
func appendLogLevel(cands []Region, line string, tokens []token.Token) []Region {
	for i, t := range tokens {
		if t.Kind != token.LogLevel {
			continue
		}

		start, end := t.Start, t.End()
		toks := []token.Token{t}
		if i > 0 && i < len(tokens)-1 {
			prev, next := tokens[i-1], tokens[i+1]
			if prev.Kind == token.Bracket && next.Kind == token.Bracket &&
				closerFor(prev.Value) == next.Value &&
				prev.End() == t.Start && t.End() == next.Start {
				start, end = prev.Start, next.End()
				toks = []token.Token{prev, t, next}
			}
		}

		return append(cands, Region{
			Kind:   LogLevel,
			Start:  start,
			Length: end - start,
			Value:  line[start:end],
			Tokens: toks,
			Metadata: map[string]string{
				"level": config.ParseSeverity(t.Value).String(),
			},
		})
	}
	return cands
}

// componentOperators are the only operator values allowed inside a
// component bracket pair.
var componentOperators = map[string]bool{"-": true, "_": true, ".": true}

// isComponentPair reports whether a bracket pair qualifies as a component:
// a "[" opener, at most five inner tokens, and every inner token one of
// identifier, text, keyword, or a permitted operator.
func isComponentPair(tokens []token.Token, p pair) bool {
	if tokens[p.open].Value != "[" {
		return false
	}
	inner := tokens[p.open+1 : p.close]
	if len(inner) == 0 || len(inner) > 5 {
		return false
	}
	for _, t := range inner {
		switch t.Kind {
		case token.Identifier, token.Text, token.Keyword:
		case token.Operator:
			if !componentOperators[t.Value] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func appendComponents(cands []Region, line string, tokens []token.Token, pairs []pair) []Region {
	for _, p := range pairs {
		if !isComponentPair(tokens, p) {
			continue
		}
		opener, closer := tokens[p.open], tokens[p.close]
		cands = append(cands, Region{
			Kind:   Component,
			Start:  opener.Start,
			Length: closer.End() - opener.Start,
			Value:  line[opener.Start:closer.End()],
			Tokens: tokens[p.open : p.close+1],
			Metadata: map[string]string{
				"name": line[opener.End():closer.Start],
			},
		})
	}
	return cands
}

// appendKeyValues slides a width-3 window over the tokens looking for
// key=value and key:value shapes. All three tokens must be byte-adjacent;
// "level = error" does not qualify.
func appendKeyValues(cands []Region, line string, tokens []token.Token) []Region {
	for i := 0; i+2 < len(tokens); i++ {
		k, sep, v := tokens[i], tokens[i+1], tokens[i+2]

		switch k.Kind {
		case token.Key, token.Identifier, token.Keyword:
		default:
			continue
		}
		if sep.Kind != token.Operator && sep.Kind != token.Text {
			continue
		}
		if sep.Value != "=" && sep.Value != ":" {
			continue
		}
		if v.Kind == token.Text || v.Kind == token.Bracket {
			continue
		}
		if k.End() != sep.Start || sep.End() != v.Start {
			continue
		}

		cands = append(cands, Region{
			Kind:   KeyValue,
			Start:  k.Start,
			Length: v.End() - k.Start,
			Value:  line[k.Start:v.End()],
			Tokens: tokens[i : i+3],
			Metadata: map[string]string{
				"key":       k.Value,
				"separator": sep.Value,
				"value":     v.Value,
			},
		})
	}
	return cands
}

// appendBrackets emits the bracket pairs not claimed as components.
func appendBrackets(cands []Region, line string, tokens []token.Token, pairs []pair) []Region {
	for _, p := range pairs {
		if isComponentPair(tokens, p) {
			continue
		}
		opener, closer := tokens[p.open], tokens[p.close]
		cands = append(cands, Region{
			Kind:   Bracket,
			Start:  opener.Start,
			Length: closer.End() - opener.Start,
			Value:  line[opener.Start:closer.End()],
			Tokens: tokens[p.open : p.close+1],
			Metadata: map[string]string{
				"delimiter": opener.Value,
			},
		})
	}
	return cands
}

// appendMessage claims whatever follows the rightmost structured candidate,
// once leading spaces and tabs are skipped. A whitespace-only remainder
// yields no message.
func appendMessage(cands []Region, line string, tokens []token.Token) []Region {
	start := 0
	for _, c := range cands {
		if c.End() > start {
			start = c.End()
		}
	}
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	if start >= len(line) || strings.TrimSpace(line[start:]) == "" {
		return cands
	}

	var toks []token.Token
	for _, t := range tokens {
		if t.Start >= start {
			toks = append(toks, t)
		}
	}
	return append(cands, Region{
		Kind:   Message,
		Start:  start,
		Length: len(line) - start,
		Value:  line[start:],
		Tokens: toks,
	})
}

// resolve sorts candidates by start ascending, length descending, and keeps
// a candidate only if it begins at or after the end of the last kept one.
// At any given start the longest candidate wins regardless of kind.
func resolve(cands []Region) []Region {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Start != cands[j].Start {
			return cands[i].Start < cands[j].Start
		}
		return cands[i].Length > cands[j].Length
	})

	var kept []Region
	end := 0
	for _, c := range cands {
		if c.Start < end {
			continue
		}
		kept = append(kept, c)
		end = c.End()
	}
	return kept
}

// pair holds the token indices of a matched bracket pair.
type pair struct {
	open  int
	close int
}

// closerFor returns the closing delimiter for an opener, or "".
func closerFor(open string) string {
	switch open {
	case "[":
		return "]"
	case "(":
		return ")"
	case "{":
		return "}"
	}
	return ""
}

// pairBrackets matches bracket tokens in a single left-to-right pass with
// an explicit stack of unmatched openers. A closer pops the stack and pairs
// only when the kinds agree; on a kind mismatch the popped opener is
// discarded and not restored, so a single stray closer desynchronizes
// pairing for the rest of the line.
func pairBrackets(tokens []token.Token) []pair {
	var stack []int
	var pairs []pair
	for i, t := range tokens {
		if t.Kind != token.Bracket {
			continue
		}
		switch t.Value {
		case "[", "(", "{":
			stack = append(stack, i)
		case "]", ")", "}":
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closerFor(tokens[top].Value) == t.Value {
				pairs = append(pairs, pair{open: top, close: i})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].open < pairs[j].open })
	return pairs
}
