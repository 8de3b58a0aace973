package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/saijs/js/parser"
)

// Encoder writes a parsed tree, or some view of it, to an output.
type Encoder interface {
	Encode(tree *parser.Tree) error
}

// TreeEncoder returns the encoder for a syntax tree output format.
func TreeEncoder(name string, w io.Writer, positions bool) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "text":
		return NewTextEncoder(w, positions), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// DiagnosticsEncoder returns the encoder for a diagnostics output format.
func DiagnosticsEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text":
		return NewDiagnosticEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
