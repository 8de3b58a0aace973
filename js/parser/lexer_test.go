package parser

import (
	"strings"
	"testing"
)

func tokenKinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func joinTokens(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Leading)
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"   \n\t", []TokenKind{TokenEOF}},
		{"let x = 1;", []TokenKind{TokenIdent, TokenIdent, TokenAssign, TokenNumber, TokenSemicolon, TokenEOF}},
		{"function f() {}", []TokenKind{TokenFunction, TokenIdent, TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenEOF}},
		{"a /* c */ b", []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"x // c\ny", []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"'a' \"b\"", []TokenKind{TokenString, TokenString, TokenEOF}},
		{".5 42 0x1f", []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenEOF}},
		{"a => b", []TokenKind{TokenIdent, TokenArrow, TokenIdent, TokenEOF}},
		{"a?.b ?? c", []TokenKind{TokenIdent, TokenQuestionDot, TokenIdent, TokenQuestionQuestion, TokenIdent, TokenEOF}},
		{"x === y !== z", []TokenKind{TokenIdent, TokenStrictEQ, TokenIdent, TokenStrictNE, TokenIdent, TokenEOF}},
		{"a **= 2", []TokenKind{TokenIdent, TokenStarStarAssign, TokenNumber, TokenEOF}},
		{"#priv", []TokenKind{TokenPrivateName, TokenEOF}},
		{"`plain`", []TokenKind{TokenTemplate, TokenEOF}},
		{"`a${b}c${d}e`", []TokenKind{TokenTemplateHead, TokenIdent, TokenTemplateMiddle, TokenIdent, TokenTemplateTail, TokenEOF}},
		{"x = /ab+c/g", []TokenKind{TokenIdent, TokenAssign, TokenRegex, TokenEOF}},
		{"a / b / c", []TokenKind{TokenIdent, TokenSlash, TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
		{"yield await", []TokenKind{TokenYield, TokenAwait, TokenEOF}},
		{"declare type", []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, diags := Tokenize("test.js", []byte(tt.input))
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			got := tokenKinds(tokens)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
			if joined := joinTokens(tokens); joined != tt.input {
				t.Errorf("tokens do not reproduce the input: got %q", joined)
			}
		})
	}
}

func TestTokenizeTrivia(t *testing.T) {
	src := "a /* one */\n// two\nb  "
	tokens, _ := Tokenize("test.js", []byte(src))
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].NewlineBefore {
		t.Errorf("first token should not follow a newline")
	}
	if got, want := tokens[1].Leading, " /* one */\n// two\n"; got != want {
		t.Errorf("leading trivia: got %q, want %q", got, want)
	}
	if !tokens[1].NewlineBefore {
		t.Errorf("second token should follow a newline")
	}
	if got := tokens[2].Leading; got != "  " {
		t.Errorf("EOF should carry trailing trivia, got %q", got)
	}
	if r := tokens[1].Range; r.Start != 19 || r.End != 20 {
		t.Errorf("range of b: got %v", r)
	}
}

func TestTokenizeError(t *testing.T) {
	src := "a = 1 ¤ b"
	tokens, diags := Tokenize("test.js", []byte(src))
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].File != "test.js" || diags[0].Severity != SeverityError {
		t.Errorf("unexpected diagnostic %v", diags[0])
	}
	if n := len(tokens); n < 2 || tokens[n-2].Kind != TokenError || tokens[n-1].Kind != TokenEOF {
		t.Fatalf("expected an error token before EOF, got %v", tokenKinds(tokens))
	}
	if joined := joinTokens(tokens); joined != src {
		t.Errorf("tokens do not reproduce the input: got %q", joined)
	}
}

func TestKeywordLookup(t *testing.T) {
	tests := []struct {
		text string
		kind TokenKind
	}{
		{"if", TokenIf},
		{"yield", TokenYield},
		{"let", TokenIdent},
		{"declare", TokenIdent},
		{"foo", TokenIdent},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.text); got != tt.kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.text, got, tt.kind)
		}
	}
	if !TokenLet.IsKeyword() || TokenIdent.IsKeyword() {
		t.Errorf("IsKeyword disagrees with the contextual keyword range")
	}
	if LookupPunctuator(">>>=") != TokenUShrAssign || LookupPunctuator("<>") != TokenPunct {
		t.Errorf("LookupPunctuator mismatch")
	}
}
