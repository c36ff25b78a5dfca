package output

import (
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI escape fragments for truecolor rendering.
const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
)

// RenderOptions configures ANSI rendering of a Document.
type RenderOptions struct {
	Color       bool // emit truecolor escapes
	LineNumbers bool // prefix each line with its 1-based number
	Header      bool // emit the filename/temperature header line
}

// Render writes a Document as terminal text.
func Render(w io.Writer, doc *Document, opts RenderOptions) error {
	if opts.Header {
		if err := renderHeader(w, doc, opts.Color); err != nil {
			return err
		}
	}

	for i, spans := range doc.Lines {
		if opts.LineNumbers {
			if err := writeDim(w, fmt.Sprintf("%5d ", i+1), opts.Color); err != nil {
				return err
			}
		}
		for _, s := range spans {
			if err := writeSpan(w, s, opts.Color); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// renderHeader writes the summary line the viewers show above the log.
func renderHeader(w io.Writer, doc *Document, color bool) error {
	meta := doc.Metadata
	line := fmt.Sprintf("━━━ %s │ %d lines │ temp: %s │ mood: %s ━━━",
		meta.Filename, meta.LineCount, meta.Temperature, meta.Mood)
	return writeDim(w, line+"\n", color)
}

// writeSpan writes one colored run, converting the hex color to a
// truecolor foreground escape.
func writeSpan(w io.Writer, s Span, color bool) error {
	if !color || s.Color == "" {
		_, err := io.WriteString(w, s.Value)
		return err
	}
	c, err := colorful.Hex(s.Color)
	if err != nil {
		_, werr := io.WriteString(w, s.Value)
		return werr
	}
	r, g, b := c.RGB255()
	_, err = fmt.Fprintf(w, "\033[38;2;%d;%d;%dm%s%s", r, g, b, s.Value, ansiReset)
	return err
}

func writeDim(w io.Writer, text string, color bool) error {
	if !color {
		_, err := io.WriteString(w, text)
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s%s", ansiDim, text, ansiReset)
	return err
}
