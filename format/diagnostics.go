package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/saijs/js/parser"
)

// DiagnosticEncoder renders diagnostics for a terminal:
//
//	a.js:1:5: error: expected an expression but instead found ';'
//	  let x = ;
//	          ^
//	a.js:1:1: note: ...
type DiagnosticEncoder struct {
	w io.Writer
}

func NewDiagnosticEncoder(w io.Writer) *DiagnosticEncoder {
	return &DiagnosticEncoder{w: w}
}

func (e *DiagnosticEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DiagnosticEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	var sb strings.Builder
	for _, d := range tree.Diagnostics {
		e.writeDiagnostic(&sb, tree, d)
	}
	return []byte(sb.String()), nil
}

func (e *DiagnosticEncoder) writeDiagnostic(sb *strings.Builder, tree *parser.Tree, d parser.Diagnostic) {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	if d.Primary == nil {
		fmt.Fprintf(sb, "%s: %s: %s\n", file, d.Severity, d.Message)
		return
	}
	pos := tree.Span(d.Primary.Range).Start
	fmt.Fprintf(sb, "%s:%s: %s: %s\n", file, pos, d.Severity, d.Message)
	writeSnippet(sb, tree, d.Primary.Range, d.Primary.Message)
	for _, l := range d.Secondary {
		fmt.Fprintf(sb, "%s:%s: note: %s\n", file, tree.Span(l.Range).Start, l.Message)
		writeSnippet(sb, tree, l.Range, "")
	}
}

// writeSnippet prints the source line holding r.Start with a caret run
// under the range, clipped to that line.
func writeSnippet(sb *strings.Builder, tree *parser.Tree, r parser.TextRange, label string) {
	src := tree.Source
	start := clampOffset(r.Start, len(src))
	lineStart := start
	for lineStart > 0 && src[lineStart-1] != '\n' && src[lineStart-1] != '\r' {
		lineStart--
	}
	lineEnd := start
	for lineEnd < len(src) && src[lineEnd] != '\n' && src[lineEnd] != '\r' {
		lineEnd++
	}
	end := clampOffset(r.End, lineEnd)
	width := end - start
	if width < 1 {
		width = 1
	}

	sb.WriteString("  ")
	sb.Write(src[lineStart:lineEnd])
	sb.WriteString("\n  ")
	for _, c := range src[lineStart:start] {
		if c == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(strings.Repeat("^", width))
	if label != "" {
		sb.WriteByte(' ')
		sb.WriteString(label)
	}
	sb.WriteByte('\n')
}

func clampOffset(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
