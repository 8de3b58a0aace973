package parser

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// Tokenize splits src into significant tokens. Whitespace and comments are
// folded into the Leading trivia of the following token; the final EOF token
// carries whatever trails the last significant token, so concatenating
// Leading+Text over all tokens reproduces src exactly.
//
// A lexer failure does not stop the parse: the unlexable remainder becomes a
// single TokenError token and a diagnostic is returned for it.
func Tokenize(file string, src []byte) ([]Token, []Diagnostic) {
	l := js.NewLexer(parse.NewInputBytes(src))

	var (
		tokens  []Token
		diags   []Diagnostic
		trivia  strings.Builder
		newline bool
		offset  int
	)

	for {
		tt, data := l.Next()
		if tt == js.ErrorToken {
			break
		}
		start := offset
		if (tt == js.DivToken || tt == js.DivEqToken) && regexAllowed(tokens) {
			tt, data = l.RegExp()
			if tt == js.ErrorToken {
				break
			}
		}
		text := string(data)
		offset += len(data)

		switch tt {
		case js.WhitespaceToken, js.CommentToken:
			trivia.WriteString(text)
			continue
		case js.LineTerminatorToken, js.CommentLineTerminatorToken:
			trivia.WriteString(text)
			newline = true
			continue
		}

		tokens = append(tokens, Token{
			Kind:          classify(tt, text),
			Range:         TextRange{Start: start, End: offset},
			Text:          text,
			Leading:       trivia.String(),
			NewlineBefore: newline,
		})
		trivia.Reset()
		newline = false
	}

	if offset < len(src) {
		rest := TextRange{Start: offset, End: len(src)}
		tokens = append(tokens, Token{
			Kind:          TokenError,
			Range:         rest,
			Text:          string(src[offset:]),
			Leading:       trivia.String(),
			NewlineBefore: newline,
		})
		trivia.Reset()
		newline = false
		diags = append(diags, NewDiagnostic(SeverityError, "unexpected character: "+lexerMessage(l.Err())).
			File(file).
			Primary(TextRange{Start: offset, End: offset + 1}, "").
			Build())
		offset = len(src)
	}

	tokens = append(tokens, Token{
		Kind:          TokenEOF,
		Range:         TextRange{Start: offset, End: offset},
		Leading:       trivia.String(),
		NewlineBefore: newline,
	})
	return tokens, diags
}

func lexerMessage(err error) string {
	if err == nil || err == io.EOF {
		return "unterminated token"
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func classify(tt js.TokenType, text string) TokenKind {
	switch tt {
	case js.StringToken:
		return TokenString
	case js.TemplateToken:
		return TokenTemplate
	case js.TemplateStartToken:
		return TokenTemplateHead
	case js.TemplateMiddleToken:
		return TokenTemplateMiddle
	case js.TemplateEndToken:
		return TokenTemplateTail
	case js.RegExpToken:
		return TokenRegex
	}
	if text == "" {
		return TokenPunct
	}

	c := text[0]
	switch {
	case c == '#' && len(text) > 1:
		return TokenPrivateName
	case isIdentStart(c):
		return LookupKeyword(text)
	case isDigit(c) || (c == '.' && len(text) > 1 && isDigit(text[1])):
		return TokenNumber
	case c == '"' || c == '\'':
		return TokenString
	}
	return LookupPunctuator(text)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c == '\\' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// regexAllowed decides whether a slash starts a regular expression from the
// previous significant token, the usual approximation of the goal symbol.
func regexAllowed(tokens []Token) bool {
	if len(tokens) == 0 {
		return true
	}
	switch prev := tokens[len(tokens)-1].Kind; prev {
	case TokenIdent, TokenPrivateName, TokenNumber, TokenString, TokenRegex,
		TokenTemplate, TokenTemplateTail, TokenThis, TokenSuper, TokenNull,
		TokenTrue, TokenFalse, TokenRParen, TokenRBracket, TokenRBrace,
		TokenIncrement, TokenDecrement:
		return false
	default:
		return true
	}
}
