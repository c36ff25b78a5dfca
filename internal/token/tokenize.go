package token

import "sort"

// candidate is a span proposed by one pattern before overlap resolution.
type candidate struct {
	kind  Kind
	start int
	end   int
}

// Tokenize splits one line into a sorted, non-overlapping token sequence
// that tiles the line exactly. It never fails: bytes claimed by no pattern
// become Text tokens.
func Tokenize(line string) []Token {
	accepted := resolve(collect(line))

	// Gap-fill with synthetic text tokens so the result tiles the line.
	tokens := make([]Token, 0, len(accepted)+2)
	pos := 0
	for _, c := range accepted {
		if c.start > pos {
			tokens = append(tokens, textToken(line, pos, c.start))
		}
		tokens = append(tokens, Token{
			Kind:   c.kind,
			Value:  line[c.start:c.end],
			Start:  c.start,
			Length: c.end - c.start,
		})
		pos = c.end
	}
	if pos < len(line) {
		tokens = append(tokens, textToken(line, pos, len(line)))
	}
	return tokens
}

// collect runs every pattern over the line and gathers all matches,
// overlapping or not, in priority order.
func collect(line string) []candidate {
	var cands []candidate
	for _, p := range priority {
		matches := p.re.FindAllStringSubmatchIndex(line, -1)
		for _, m := range matches {
			lo, hi := m[0], m[1]
			if p.group > 0 {
				lo, hi = m[2*p.group], m[2*p.group+1]
			}
			if lo < 0 || hi <= lo {
				continue
			}
			if p.valid != nil && !p.valid(line[lo:hi]) {
				continue
			}
			cands = append(cands, candidate{kind: p.kind, start: lo, end: hi})
		}
	}
	return cands
}

// resolve realizes first-match-wins: candidates are stable-sorted by start
// (ties keep priority order) and folded left to right, keeping a candidate
// only if it does not intersect anything already kept. Rejected candidates
// are dropped whole, never trimmed.
func resolve(cands []candidate) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].start < cands[j].start
	})

	kept := cands[:0]
	end := 0
	for _, c := range cands {
		if c.start < end {
			continue
		}
		kept = append(kept, c)
		end = c.end
	}
	return kept
}

func textToken(line string, start, end int) Token {
	return Token{
		Kind:   Text,
		Value:  line[start:end],
		Start:  start,
		Length: end - start,
	}
}
