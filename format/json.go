package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/saijs/js/parser"
)

// JSONEncoder writes the diagnostics of a tree as a JSON array.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	return json.MarshalIndent(e.buildDiagnostics(tree), "", "  ")
}

type jsonDiagnostic struct {
	File     string       `json:"file,omitempty"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Span     *astJSONSpan `json:"span,omitempty"`
	Label    string       `json:"label,omitempty"`
	Related  []jsonLabel  `json:"related,omitempty"`
}

type jsonLabel struct {
	Span    *astJSONSpan `json:"span"`
	Message string       `json:"message"`
}

func (e *JSONEncoder) buildDiagnostics(tree *parser.Tree) []jsonDiagnostic {
	result := make([]jsonDiagnostic, len(tree.Diagnostics))
	for i, d := range tree.Diagnostics {
		jd := jsonDiagnostic{
			File:     d.File,
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if d.Primary != nil {
			jd.Span = spanToJSON(tree.Span(d.Primary.Range))
			jd.Label = d.Primary.Message
		}
		for _, l := range d.Secondary {
			jd.Related = append(jd.Related, jsonLabel{
				Span:    spanToJSON(tree.Span(l.Range)),
				Message: l.Message,
			})
		}
		result[i] = jd
	}
	return result
}
