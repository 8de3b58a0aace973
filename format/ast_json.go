package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/saijs/js/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(tree, tree.Root), "", "  ")
}

type astJSONNode struct {
	Kind        string              `json:"kind"`
	Span        *astJSONSpan        `json:"span,omitempty"`
	Token       string              `json:"token,omitempty"`
	Text        string              `json:"text,omitempty"`
	Diagnostics []astJSONDiagnostic `json:"diagnostics,omitempty"`
	Children    []*astJSONNode      `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONDiagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func spanToJSON(span parser.Span) *astJSONSpan {
	return &astJSONSpan{
		Start: astJSONPosition{Line: span.Start.Line, Column: span.Start.Column},
		End:   astJSONPosition{Line: span.End.Line, Column: span.End.Column},
	}
}

func nodeToJSON(tree *parser.Tree, n *parser.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind: n.Kind.String(),
	}

	// Missing slots have no extent of their own.
	if !n.IsMissing() {
		jn.Span = spanToJSON(tree.Span(n.Range))
	}

	if n.Token != nil {
		jn.Token = n.Token.Kind.String()
		jn.Text = n.Token.Text
	}

	for _, d := range n.Diagnostics {
		jn.Diagnostics = append(jn.Diagnostics, astJSONDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(tree, child)
		}
	}

	return jn
}
