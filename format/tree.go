package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/saijs/js/parser"
)

// TextEncoder prints a syntax tree as an indented outline, one node per
// line, optionally with line:column spans.
type TextEncoder struct {
	w         io.Writer
	positions bool
}

func NewTextEncoder(w io.Writer, positions bool) *TextEncoder {
	return &TextEncoder{w: w, positions: positions}
}

func (e *TextEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, tree, tree.Root, 0)
	return []byte(sb.String()), nil
}

func (e *TextEncoder) writeNode(sb *strings.Builder, tree *parser.Tree, n *parser.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if e.positions && !n.IsMissing() {
		span := tree.Span(n.Range)
		fmt.Fprintf(sb, "@%s-%s", span.Start, span.End)
	}
	if n.Token != nil {
		fmt.Fprintf(sb, " %s %s", n.Token.Kind, strconv.Quote(n.Token.Text))
	}
	for _, d := range n.Diagnostics {
		fmt.Fprintf(sb, " (%s: %s)", d.Severity, d.Message)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		e.writeNode(sb, tree, child, depth+1)
	}
}
