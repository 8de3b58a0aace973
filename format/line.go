package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/saijs/js/parser"
)

// LineEncoder writes the token stream of a tree, one token per line:
//
//	line:column	kind	text	flags
//
// where flags is "nl" when the token follows a line break and "-" otherwise.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	return e.marshalTokens(tree.Lines, tree.Tokens), nil
}

// EncodeTokens writes tokens that were produced without a parse.
func (e *LineEncoder) EncodeTokens(file string, src []byte, tokens []parser.Token) error {
	_, err := e.w.Write(e.marshalTokens(parser.NewLineIndex(file, src), tokens))
	return err
}

func (e *LineEncoder) marshalTokens(lines *parser.LineIndex, tokens []parser.Token) []byte {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
			lines.Position(tok.Range.Start),
			tok.Kind,
			strconv.Quote(tok.Text),
			tokenFlags(tok),
		)
	}
	return []byte(sb.String())
}

func tokenFlags(tok parser.Token) string {
	if tok.NewlineBefore {
		return "nl"
	}
	return "-"
}
